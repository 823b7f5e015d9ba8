// Package investor contains the core query-and-aggregation layer of the
// investor data server: the typed investor record, alias normalisation for
// user-supplied search terms, filter construction, cheque-range filtering,
// frequency/theme aggregation, similarity scoring, and the fixed-layout text
// formatter used by every tool response.
//
// All functions in this package are pure: they operate on in-memory record
// slices fetched by the caller and hold no state between calls.
package investor

import "github.com/iamfaham/investor-data-mcp/internal/tablestore"

// Column names of the hosted investor table. The table originates from an
// OpenVC export, so column names contain spaces and are quoted on the wire by
// the tablestore backends.
const (
	ColName      = "Investor name"
	ColWebsite   = "Website"
	ColHQ        = "Global HQ"
	ColCountries = "Countries of investment"
	ColStage     = "Stage of investment"
	ColThesis    = "Investment thesis"
	ColType      = "Investor type"
	ColChequeMin = "First cheque minimum"
	ColChequeMax = "First cheque maximum"
)

// AllColumns lists every column the tools select, in wire order.
var AllColumns = []string{
	ColName, ColWebsite, ColHQ, ColCountries,
	ColStage, ColThesis, ColType, ColChequeMin, ColChequeMax,
}

// Investor is one row of the investor table. Every field is optional (the
// remote source may omit any column) and an empty string means the value is
// absent. Cheque fields are free-text magnitude strings ("100k", "1M"), not
// numbers. Countries may hold a comma-separated list.
//
// Name is used as a de facto identifier for similarity lookups; uniqueness is
// not guaranteed by the table and not checked here.
type Investor struct {
	Name      string
	Website   string
	HQ        string
	Countries string
	Stage     string
	Thesis    string
	Type      string
	ChequeMin string
	ChequeMax string
}

// FromRow converts a generic tablestore row into a typed Investor.
// Missing columns become empty fields.
func FromRow(row tablestore.Row) Investor {
	return Investor{
		Name:      row[ColName],
		Website:   row[ColWebsite],
		HQ:        row[ColHQ],
		Countries: row[ColCountries],
		Stage:     row[ColStage],
		Thesis:    row[ColThesis],
		Type:      row[ColType],
		ChequeMin: row[ColChequeMin],
		ChequeMax: row[ColChequeMax],
	}
}

// FromRows converts a fetched row set in order.
func FromRows(rows []tablestore.Row) []Investor {
	recs := make([]Investor, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, FromRow(row))
	}
	return recs
}
