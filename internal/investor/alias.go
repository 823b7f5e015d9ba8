package investor

import "strings"

// investorTypeAliases maps lower-cased user phrasings of investor types to the
// canonical values stored in the table.
var investorTypeAliases = map[string]string{
	"angel":                     "Angel network",
	"angel network":             "Angel network",
	"vc":                        "VC",
	"venture capital":           "VC",
	"pe":                        "PE",
	"private equity":            "PE",
	"cvc":                       "CVC",
	"corporate venture capital": "CVC",
}

// countryAliases maps lower-cased country names and common abbreviations to
// the country codes used in the "Countries of investment" column.
var countryAliases = map[string]string{
	"united states":  "USA",
	"usa":            "USA",
	"us":             "USA",
	"america":        "USA",
	"united kingdom": "UK",
	"uk":             "UK",
	"england":        "UK",
	"great britain":  "UK",
	"germany":        "Germany",
	"france":         "France",
	"canada":         "Canada",
	"australia":      "Australia",
	"japan":          "Japan",
	"china":          "China",
	"india":          "India",
	"singapore":      "Singapore",
	"netherlands":    "Netherlands",
	"sweden":         "Sweden",
	"switzerland":    "Switzerland",
	"israel":         "Israel",
}

// NormalizeInvestorType maps a free-text investor type to its canonical table
// value, case-insensitively. Unmapped input is returned unchanged with its
// original casing; absence from the alias table is not an error.
func NormalizeInvestorType(raw string) string {
	if canonical, ok := investorTypeAliases[strings.ToLower(raw)]; ok {
		return canonical
	}
	return raw
}

// NormalizeCountry maps a free-text country name to the code used in the
// table, case-insensitively. Unmapped input is returned unchanged.
func NormalizeCountry(raw string) string {
	if canonical, ok := countryAliases[strings.ToLower(raw)]; ok {
		return canonical
	}
	return raw
}
