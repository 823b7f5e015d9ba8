package investortool

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/iamfaham/investor-data-mcp/internal/investor"
	"github.com/iamfaham/investor-data-mcp/internal/observe"
	"github.com/iamfaham/investor-data-mcp/internal/tablestore"
)

// Service executes the investor tools against a table store. All methods are
// MCP tool handlers and report failures as descriptive text instead of
// protocol errors, so a model always gets something it can relay.
type Service struct {
	store   tablestore.Store
	table   string
	backend string
	metrics *observe.Metrics
	log     *slog.Logger
	suggest bool
}

// Option configures optional Service dependencies.
type Option func(*Service)

// WithMetrics overrides the metrics sink, mainly for tests.
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger overrides the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithNameSuggestions makes find_similar_investors follow up an unknown name
// with close matches from the name column. This costs an extra fetch on the
// miss path, so it is off unless enabled.
func WithNameSuggestions() Option {
	return func(s *Service) { s.suggest = true }
}

// New returns a Service querying table through store. The backend label
// ("supabase" or "postgres") only tags metrics and log lines.
func New(store tablestore.Store, table, backend string, opts ...Option) *Service {
	s := &Service{
		store:   store,
		table:   table,
		backend: backend,
		metrics: observe.DefaultMetrics(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// fetch runs one query against the store and converts the rows to investor
// records. A zero limit fetches everything.
func (s *Service) fetch(ctx context.Context, columns []string, filters map[string]string, limit int) ([]investor.Investor, error) {
	start := time.Now()
	rows, err := s.store.Fetch(ctx, tablestore.Query{
		Table:   s.table,
		Columns: columns,
		Filters: filters,
		Limit:   limit,
	})
	s.metrics.RecordFetch(ctx, s.backend, time.Since(start).Seconds(), len(rows), err != nil)
	if err != nil {
		return nil, err
	}
	return investor.FromRows(rows), nil
}

// reply records a successful tool call and wraps text as the result.
func (s *Service) reply(ctx context.Context, tool string, start time.Time, text string) (*mcp.CallToolResult, any, error) {
	s.metrics.RecordToolCall(ctx, tool, "ok", time.Since(start).Seconds())
	return textResult(text), nil, nil
}

// fail records a failed tool call and renders err as the tool's single-line
// error report. context is the operation phrase, e.g. "fetching investor data".
func (s *Service) fail(ctx context.Context, tool string, start time.Time, operation string, err error) (*mcp.CallToolResult, any, error) {
	s.metrics.RecordToolCall(ctx, tool, "error", time.Since(start).Seconds())
	s.log.ErrorContext(ctx, "tool call failed", "tool", tool, "error", err)
	return textResult(fmt.Sprintf("An error occurred while %s: %v", operation, err)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

type listArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of records to return. If omitted, fetches all records."`
}

type searchArgs struct {
	InvestorType string `json:"investor_type,omitempty" jsonschema:"Type of investor (e.g. Angel, VC, PE)"`
	Stage        string `json:"stage,omitempty" jsonschema:"Investment stage (e.g. Seed, Series A, Growth)"`
	Country      string `json:"country,omitempty" jsonschema:"Country of investment (uses country codes like USA)"`
	HQLocation   string `json:"hq_location,omitempty" jsonschema:"Global HQ location (can be city, state, or country)"`
	Limit        int    `json:"limit,omitempty" jsonschema:"Maximum number of records to return"`
}

type chequeArgs struct {
	MinAmount string `json:"min_amount,omitempty" jsonschema:"Minimum investment amount (e.g. 100k, 1M, 10M)"`
	MaxAmount string `json:"max_amount,omitempty" jsonschema:"Maximum investment amount (e.g. 500k, 5M, 50M)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of records to return"`
}

type similarArgs struct {
	InvestorName string `json:"investor_name" jsonschema:"Name of the investor to find similar ones for"`
	Limit        int    `json:"limit,omitempty" jsonschema:"Maximum number of records to return"`
}

type noArgs struct{}

// GetInvestorData handles "get_investor_data": it lists investor records,
// optionally capped by the caller's limit.
func (s *Service) GetInvestorData(ctx context.Context, req *mcp.CallToolRequest, args listArgs) (*mcp.CallToolResult, any, error) {
	const tool = "get_investor_data"
	start := time.Now()

	recs, err := s.fetch(ctx, investor.AllColumns, nil, args.Limit)
	if err != nil {
		return s.fail(ctx, tool, start, "fetching investor data", err)
	}
	if len(recs) == 0 {
		return s.reply(ctx, tool, start, "No investor data found.")
	}

	header := fmt.Sprintf("Found %d investor records:", len(recs))
	return s.reply(ctx, tool, start, investor.FormatRecords(header, recs, investor.DisplayCap))
}

// SearchInvestors handles "search_investors_by_criteria". Type and country
// values go through the alias tables before they reach the store; stage and
// HQ are matched verbatim.
func (s *Service) SearchInvestors(ctx context.Context, req *mcp.CallToolRequest, args searchArgs) (*mcp.CallToolResult, any, error) {
	const tool = "search_investors_by_criteria"
	start := time.Now()

	filters := investor.BuildFilters(args.InvestorType, args.Stage, args.Country, args.HQLocation)
	recs, err := s.fetch(ctx, investor.AllColumns, filters, args.Limit)
	if err != nil {
		return s.fail(ctx, tool, start, "searching investors", err)
	}
	if len(recs) == 0 {
		// The no-match message echoes the caller's raw values, not the
		// normalized ones.
		var desc []string
		if args.InvestorType != "" {
			desc = append(desc, "type: "+args.InvestorType)
		}
		if args.Stage != "" {
			desc = append(desc, "stage: "+args.Stage)
		}
		if args.Country != "" {
			desc = append(desc, "country: "+args.Country)
		}
		if args.HQLocation != "" {
			desc = append(desc, "HQ location: "+args.HQLocation)
		}
		return s.reply(ctx, tool, start, fmt.Sprintf("No investors found matching %s.", filterDesc(desc)))
	}

	header := fmt.Sprintf("Found %d investors matching your criteria:", len(recs))
	return s.reply(ctx, tool, start, investor.FormatRecords(header, recs, investor.DisplayCap))
}

// GetInvestorTypes handles "get_available_investor_types".
func (s *Service) GetInvestorTypes(ctx context.Context, req *mcp.CallToolRequest, args noArgs) (*mcp.CallToolResult, any, error) {
	const tool = "get_available_investor_types"
	start := time.Now()

	recs, err := s.fetch(ctx, []string{investor.ColType}, nil, 0)
	if err != nil {
		return s.fail(ctx, tool, start, "fetching investor types", err)
	}
	if len(recs) == 0 {
		return s.reply(ctx, tool, start, "No investor data found.")
	}

	types := distinctSorted(recs, func(r investor.Investor) string { return r.Type }, false)
	if len(types) == 0 {
		return s.reply(ctx, tool, start, "No investor types found in the database.")
	}

	var b strings.Builder
	b.WriteString("Available investor types in the database:\n\n")
	for i, t := range types {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	fmt.Fprintf(&b, "\nTotal: %d unique investor types", len(types))
	return s.reply(ctx, tool, start, b.String())
}

// GetCountries handles "get_available_countries". Comma-separated country
// lists count each entry separately.
func (s *Service) GetCountries(ctx context.Context, req *mcp.CallToolRequest, args noArgs) (*mcp.CallToolResult, any, error) {
	const tool = "get_available_countries"
	start := time.Now()

	recs, err := s.fetch(ctx, []string{investor.ColCountries}, nil, 0)
	if err != nil {
		return s.fail(ctx, tool, start, "fetching countries", err)
	}
	if len(recs) == 0 {
		return s.reply(ctx, tool, start, "No investor data found.")
	}

	countries := distinctSorted(recs, func(r investor.Investor) string { return r.Countries }, true)
	if len(countries) == 0 {
		return s.reply(ctx, tool, start, "No countries found in the database.")
	}

	var b strings.Builder
	b.WriteString("Available countries in the database:\n\n")
	for i, c := range countries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	fmt.Fprintf(&b, "\nTotal: %d unique countries", len(countries))
	return s.reply(ctx, tool, start, b.String())
}

// AnalyzeStages handles "analyze_investment_stages": a stage histogram with
// percentages over the records that carry a stage value.
func (s *Service) AnalyzeStages(ctx context.Context, req *mcp.CallToolRequest, args noArgs) (*mcp.CallToolResult, any, error) {
	const tool = "analyze_investment_stages"
	start := time.Now()

	recs, err := s.fetch(ctx, []string{investor.ColStage}, nil, 0)
	if err != nil {
		return s.fail(ctx, tool, start, "analyzing investment stages", err)
	}
	if len(recs) == 0 {
		return s.reply(ctx, tool, start, "No investor data found.")
	}

	counts := investor.CountBy(recs, func(r investor.Investor) string { return r.Stage }, false)
	if len(counts) == 0 {
		return s.reply(ctx, tool, start, "No investment stage data found.")
	}
	total := investor.TotalCount(counts)

	var b strings.Builder
	b.WriteString("Investment Stage Analysis:\n\n")
	for _, vc := range counts {
		fmt.Fprintf(&b, "• %s: %d investors (%.1f%%)\n", vc.Value, vc.Count, investor.Percent(vc.Count, total))
	}
	fmt.Fprintf(&b, "\nTotal investors analyzed: %d", total)
	fmt.Fprintf(&b, "\nUnique investment stages: %d", len(counts))
	return s.reply(ctx, tool, start, b.String())
}

// FindByChequeSize handles "find_investors_by_cheque_size". The comparison is
// performed client-side on the full table because the bounds are magnitude
// strings, not database columns.
func (s *Service) FindByChequeSize(ctx context.Context, req *mcp.CallToolRequest, args chequeArgs) (*mcp.CallToolResult, any, error) {
	const tool = "find_investors_by_cheque_size"
	start := time.Now()

	recs, err := s.fetch(ctx, investor.AllColumns, nil, 0)
	if err != nil {
		return s.fail(ctx, tool, start, "searching by cheque size", err)
	}
	if len(recs) == 0 {
		return s.reply(ctx, tool, start, "No investor data found.")
	}

	matched := investor.FilterByChequeRange(recs, args.MinAmount, args.MaxAmount)
	if len(matched) == 0 {
		var desc []string
		if args.MinAmount != "" {
			desc = append(desc, "minimum: "+args.MinAmount)
		}
		if args.MaxAmount != "" {
			desc = append(desc, "maximum: "+args.MaxAmount)
		}
		return s.reply(ctx, tool, start, fmt.Sprintf("No investors found matching %s.", filterDesc(desc)))
	}

	if args.Limit > 0 && len(matched) > args.Limit {
		matched = matched[:args.Limit]
	}
	header := fmt.Sprintf("Found %d investors matching your criteria:", len(matched))
	return s.reply(ctx, tool, start, investor.FormatRecords(header, matched, investor.DisplayCap))
}

// AnalyzeThesis handles "analyze_investment_thesis": keyword theme counts
// over records with thesis text, plus a per-type breakdown of the types with
// enough thesis data to be meaningful.
func (s *Service) AnalyzeThesis(ctx context.Context, req *mcp.CallToolRequest, args noArgs) (*mcp.CallToolResult, any, error) {
	const tool = "analyze_investment_thesis"
	start := time.Now()

	recs, err := s.fetch(ctx, []string{investor.ColThesis, investor.ColType, investor.ColStage}, nil, 0)
	if err != nil {
		return s.fail(ctx, tool, start, "analyzing investment thesis", err)
	}
	if len(recs) == 0 {
		return s.reply(ctx, tool, start, "No investor data found.")
	}

	themes, withThesis := investor.CountThemes(recs)
	if withThesis == 0 {
		return s.reply(ctx, tool, start, "No investment thesis data found.")
	}

	var b strings.Builder
	b.WriteString("Investment Thesis Analysis:\n\n")
	fmt.Fprintf(&b, "Total investors with thesis data: %d\n\n", withThesis)
	b.WriteString("Most Common Investment Themes:\n")
	for i, vc := range themes {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&b, "• %s: %d investors (%.1f%%)\n", vc.Value, vc.Count, investor.Percent(vc.Count, withThesis))
	}
	b.WriteString("\nThesis Analysis by Investor Type:\n")
	for _, vc := range investor.TypeBreakdown(recs) {
		fmt.Fprintf(&b, "• %s: %d investors\n", vc.Value, vc.Count)
	}
	return s.reply(ctx, tool, start, b.String())
}

// GetStatistics handles "get_investor_statistics".
func (s *Service) GetStatistics(ctx context.Context, req *mcp.CallToolRequest, args noArgs) (*mcp.CallToolResult, any, error) {
	const tool = "get_investor_statistics"
	start := time.Now()

	columns := []string{
		investor.ColName,
		investor.ColType,
		investor.ColStage,
		investor.ColCountries,
		investor.ColHQ,
		investor.ColChequeMin,
		investor.ColChequeMax,
	}
	recs, err := s.fetch(ctx, columns, nil, 0)
	if err != nil {
		return s.fail(ctx, tool, start, "getting statistics", err)
	}
	if len(recs) == 0 {
		return s.reply(ctx, tool, start, "No investor data found.")
	}
	total := len(recs)

	types := investor.CountBy(recs, func(r investor.Investor) string { return r.Type }, false)
	stages := investor.CountBy(recs, func(r investor.Investor) string { return r.Stage }, false)
	countries := investor.CountBy(recs, func(r investor.Investor) string { return r.Countries }, true)

	withCheque := 0
	for _, r := range recs {
		if r.ChequeMin != "" && r.ChequeMax != "" && r.ChequeMin != "N/A" && r.ChequeMax != "N/A" {
			withCheque++
		}
	}

	var b strings.Builder
	b.WriteString("Investor Database Statistics:\n\n")
	fmt.Fprintf(&b, "Total Investors: %d\n\n", total)

	// Percentages here use the full record count as the base, so sections
	// with missing values do not sum to 100%.
	b.WriteString("Top Investor Types:\n")
	writeTopCounts(&b, types, total)
	b.WriteString("\nTop Investment Stages:\n")
	writeTopCounts(&b, stages, total)
	b.WriteString("\nTop Investment Countries:\n")
	writeTopCounts(&b, countries, total)

	if withCheque > 0 {
		b.WriteString("\nCheque Size Data:\n")
		fmt.Fprintf(&b, "• Investors with cheque data: %d\n", withCheque)
		fmt.Fprintf(&b, "• Percentage with cheque data: %.1f%%\n", investor.Percent(withCheque, total))
	}
	return s.reply(ctx, tool, start, b.String())
}

// FindSimilar handles "find_similar_investors". It looks the target up by
// exact name, then scores the rest of the table against it. An unknown name
// answers with a not-found message from the lookup alone; only with
// WithNameSuggestions enabled does a second fetch supply close matches.
func (s *Service) FindSimilar(ctx context.Context, req *mcp.CallToolRequest, args similarArgs) (*mcp.CallToolResult, any, error) {
	const tool = "find_similar_investors"
	start := time.Now()

	targetColumns := []string{
		investor.ColName,
		investor.ColType,
		investor.ColStage,
		investor.ColCountries,
		investor.ColHQ,
	}
	targets, err := s.fetch(ctx, targetColumns, map[string]string{investor.ColName: args.InvestorName}, 1)
	if err != nil {
		return s.fail(ctx, tool, start, "finding similar investors", err)
	}
	if len(targets) == 0 {
		msg := fmt.Sprintf("No investor found with name '%s'.", args.InvestorName)
		if s.suggest {
			if hints := s.suggestNames(ctx, args.InvestorName); len(hints) > 0 {
				msg += fmt.Sprintf(" Did you mean: %s?", strings.Join(hints, ", "))
			}
		}
		return s.reply(ctx, tool, start, msg)
	}
	target := targets[0]

	candidates, err := s.fetch(ctx, investor.AllColumns, nil, 0)
	if err != nil {
		return s.fail(ctx, tool, start, "finding similar investors", err)
	}
	if len(candidates) == 0 {
		return s.reply(ctx, tool, start, "No investor data found.")
	}

	scored := investor.ScoreSimilar(target, candidates, args.InvestorName)
	if len(scored) == 0 {
		return s.reply(ctx, tool, start, fmt.Sprintf("No similar investors found for '%s'.", args.InvestorName))
	}
	if args.Limit > 0 && len(scored) > args.Limit {
		scored = scored[:args.Limit]
	}

	header := fmt.Sprintf("Similar investors to '%s':", args.InvestorName)
	return s.reply(ctx, tool, start, investor.FormatScored(header, scored, investor.DisplayCap))
}

// suggestNames fetches the name column and returns up to three close matches
// for name. Best effort: a fetch failure just yields no suggestions.
func (s *Service) suggestNames(ctx context.Context, name string) []string {
	recs, err := s.fetch(ctx, []string{investor.ColName}, nil, 0)
	if err != nil {
		s.log.WarnContext(ctx, "name suggestion fetch failed", "error", err)
		return nil
	}
	names := make([]string, 0, len(recs))
	for _, r := range recs {
		if r.Name != "" {
			names = append(names, r.Name)
		}
	}
	return investor.SuggestNames(name, names, 3)
}

// filterDesc joins the echoed filter fragments, with a fallback phrase when
// the caller supplied none.
func filterDesc(desc []string) string {
	if len(desc) == 0 {
		return "the specified criteria"
	}
	return strings.Join(desc, ", ")
}

// distinctSorted collects the distinct non-empty values of one field in
// alphabetical order. With multiValue set, comma-separated values contribute
// each trimmed entry.
func distinctSorted(recs []investor.Investor, value func(investor.Investor) string, multiValue bool) []string {
	seen := make(map[string]struct{})
	for _, rec := range recs {
		v := value(rec)
		if v == "" {
			continue
		}
		if multiValue {
			for _, part := range strings.Split(v, ",") {
				part = strings.TrimSpace(part)
				if part != "" {
					seen[part] = struct{}{}
				}
			}
			continue
		}
		seen[strings.TrimSpace(v)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// writeTopCounts renders the five largest value counts as bullet lines with
// a percentage of total.
func writeTopCounts(b *strings.Builder, counts []investor.ValueCount, total int) {
	for i, vc := range counts {
		if i >= 5 {
			break
		}
		fmt.Fprintf(b, "• %s: %d (%.1f%%)\n", vc.Value, vc.Count, investor.Percent(vc.Count, total))
	}
}
