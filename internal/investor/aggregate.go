package investor

import (
	"sort"
	"strings"
)

// ValueCount pairs one distinct field value with its occurrence count.
type ValueCount struct {
	Value string
	Count int
}

// CountBy builds a frequency table over one field of the record set. Records
// with an empty value are skipped entirely and do not count toward any total.
// When multiValue is true the field is treated as a comma-separated list and
// each trimmed token counts as its own occurrence, so one record can
// contribute several counts. Single-valued fields are counted exactly as
// stored, untrimmed.
//
// Results are sorted by descending count. Ties keep the order in which each
// value was first encountered in the record set, which makes the output
// deterministic for a given input order.
func CountBy(recs []Investor, value func(Investor) string, multiValue bool) []ValueCount {
	counts := make(map[string]int)
	var order []string

	add := func(v string) {
		if v == "" {
			return
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	for _, rec := range recs {
		v := value(rec)
		if v == "" {
			continue
		}
		if multiValue {
			for _, part := range strings.Split(v, ",") {
				add(strings.TrimSpace(part))
			}
		} else {
			add(v)
		}
	}

	result := make([]ValueCount, 0, len(order))
	for _, v := range order {
		result = append(result, ValueCount{Value: v, Count: counts[v]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// TotalCount sums the counts of a frequency table.
func TotalCount(vcs []ValueCount) int {
	total := 0
	for _, vc := range vcs {
		total += vc.Count
	}
	return total
}

// Percent returns count as a percentage of total. total must be positive;
// callers guard the empty case before aggregating.
func Percent(count, total int) float64 {
	return float64(count) / float64(total) * 100
}

// ThemeKeywords is the fixed domain vocabulary scanned against investment
// thesis text by the theme analysis.
var ThemeKeywords = []string{
	"AI", "artificial intelligence", "machine learning", "ML",
	"fintech", "financial technology", "healthtech", "healthcare",
	"SaaS", "software", "enterprise", "B2B", "B2C",
	"ecommerce", "marketplace", "platform", "mobile",
	"biotech", "biotechnology", "clean energy", "sustainability",
	"cybersecurity", "security", "blockchain", "crypto",
	"edtech", "education", "real estate", "proptech",
}

// HasThesis reports whether a record carries usable thesis text. The source
// table stores a literal "N/A" in some rows, which counts as absent.
func HasThesis(rec Investor) bool {
	return rec.Thesis != "" && rec.Thesis != "N/A"
}

// CountThemes scans thesis text for each theme keyword as a case-insensitive
// substring and returns, per keyword, how many records mention it. Keywords
// with zero matches are dropped. Results are sorted by descending count with
// first-listed-keyword tie order. The second return value is the number of
// records that had any thesis text, which is the percentage base.
func CountThemes(recs []Investor) ([]ValueCount, int) {
	var withThesis []string
	for _, rec := range recs {
		if HasThesis(rec) {
			withThesis = append(withThesis, strings.ToLower(rec.Thesis))
		}
	}

	var themes []ValueCount
	for _, kw := range ThemeKeywords {
		kwLower := strings.ToLower(kw)
		n := 0
		for _, thesis := range withThesis {
			if strings.Contains(thesis, kwLower) {
				n++
			}
		}
		if n > 0 {
			themes = append(themes, ValueCount{Value: kw, Count: n})
		}
	}
	sort.SliceStable(themes, func(i, j int) bool {
		return themes[i].Count > themes[j].Count
	})
	return themes, len(withThesis)
}

// breakdownMinMembers is the minimum group size (exclusive) for a category to
// appear in the investor-type breakdown.
const breakdownMinMembers = 5

// TypeBreakdown groups records that carry thesis text by investor type and
// returns only categories with more than five members, as name and member
// count. Categories are listed in first-seen order. Records without a type
// are grouped under "N/A".
func TypeBreakdown(recs []Investor) []ValueCount {
	counts := make(map[string]int)
	var order []string

	for _, rec := range recs {
		if !HasThesis(rec) {
			continue
		}
		typ := rec.Type
		if typ == "" {
			typ = "N/A"
		}
		if _, seen := counts[typ]; !seen {
			order = append(order, typ)
		}
		counts[typ]++
	}

	var result []ValueCount
	for _, typ := range order {
		if counts[typ] > breakdownMinMembers {
			result = append(result, ValueCount{Value: typ, Count: counts[typ]})
		}
	}
	return result
}
