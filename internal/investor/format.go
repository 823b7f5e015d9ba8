package investor

import (
	"fmt"
	"strings"
)

// DisplayCap is the maximum number of per-record blocks a formatted response
// shows; the remainder is summarised as a trailing count line.
const DisplayCap = 10

// thesisMaxLen bounds the thesis text shown per record.
const thesisMaxLen = 100

// separator is the line drawn between record blocks.
var separator = strings.Repeat("-", 80)

// FormatRecords renders records as a text report: the header line, then one
// fixed-layout block per record for at most showCap records, then, only when
// more records exist, a single "... and N more records." line stating the
// exact remainder. Missing field values render as "N/A". It never fails.
func FormatRecords(header string, recs []Investor, showCap int) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	for i, rec := range recs {
		if i >= showCap {
			break
		}
		writeRecordBlock(&b, i+1, rec, "", nil)
	}

	if len(recs) > showCap {
		fmt.Fprintf(&b, "... and %d more records.", len(recs)-showCap)
	}
	return b.String()
}

// FormatScored renders similarity-ranked records. Each block carries the
// similarity score in its title line and a "Similarity Factors" line naming
// the matched attributes. The trailing line uses the post-limit count, so a
// caller-supplied result limit and the display cap compose.
func FormatScored(header string, scored []ScoredInvestor, showCap int) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	for i, s := range scored {
		if i >= showCap {
			break
		}
		writeRecordBlock(&b, i+1, s.Investor, fmt.Sprintf(" (Similarity Score: %d)", s.Score), s.Factors)
	}

	if len(scored) > showCap {
		fmt.Fprintf(&b, "... and %d more similar investors.", len(scored)-showCap)
	}
	return b.String()
}

// writeRecordBlock emits one per-record block: ordinal and name (plus an
// optional title suffix), the fixed field lines, an optional similarity
// factors line, the truncated thesis, and the separator.
func writeRecordBlock(b *strings.Builder, ordinal int, rec Investor, titleSuffix string, factors []string) {
	fmt.Fprintf(b, "%d. %s%s\n", ordinal, orNA(rec.Name), titleSuffix)
	fmt.Fprintf(b, "   Website: %s\n", orNA(rec.Website))
	fmt.Fprintf(b, "   Global HQ: %s\n", orNA(rec.HQ))
	fmt.Fprintf(b, "   Countries: %s\n", orNA(rec.Countries))
	fmt.Fprintf(b, "   Stage: %s\n", orNA(rec.Stage))
	fmt.Fprintf(b, "   Type: %s\n", orNA(rec.Type))
	fmt.Fprintf(b, "   First Cheque: %s - %s\n", orNA(rec.ChequeMin), orNA(rec.ChequeMax))
	if factors != nil {
		fmt.Fprintf(b, "   Similarity Factors: %s\n", strings.Join(factors, ", "))
	}
	fmt.Fprintf(b, "   Thesis: %s\n", TruncateThesis(orNA(rec.Thesis)))
	b.WriteString(separator)
	b.WriteString("\n\n")
}

// TruncateThesis cuts thesis text over 100 characters to the first 100 with a
// three-dot suffix; shorter strings are returned untouched. The cut counts
// characters, not bytes, so multibyte text stays valid UTF-8.
func TruncateThesis(thesis string) string {
	runes := []rune(thesis)
	if len(runes) > thesisMaxLen {
		return string(runes[:thesisMaxLen]) + "..."
	}
	return thesis
}

// orNA substitutes the literal "N/A" for absent values.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
