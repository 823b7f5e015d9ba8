package investor

import "strings"

// BuildFilters assembles the equality-filter map sent to the table store from
// the optional search criteria. Empty arguments contribute no entry: absent
// means "no constraint", not "match empty". Investor type and country go
// through alias normalisation; stage is passed verbatim.
//
// hq is also passed verbatim and becomes an exact-match filter on the
// "Global HQ" column. The fetch contract only supports equality filters, so a
// city-only query will not match a full "City, ST, Country" address; see the
// location search guide tool for the user-facing explanation.
func BuildFilters(investorType, stage, country, hq string) map[string]string {
	filters := make(map[string]string)
	if investorType != "" {
		filters[ColType] = NormalizeInvestorType(investorType)
	}
	if stage != "" {
		filters[ColStage] = stage
	}
	if country != "" {
		filters[ColCountries] = NormalizeCountry(country)
	}
	if hq != "" {
		filters[ColHQ] = hq
	}
	return filters
}

// FilterByChequeRange filters records by their first-cheque bounds. Records
// missing either cheque field are dropped. A record is rejected when its
// minimum-cheque string compares below minAmount, or its maximum-cheque
// string compares above maxAmount, case-insensitively. Empty bounds apply no
// constraint on that side.
//
// The comparison is lexicographic on the raw magnitude strings, not numeric:
// "9M" sorts above "10M" and "100k" below "50M" purely by leading characters.
// This matches the behaviour of the original service and is kept as-is; a
// numeric upgrade would change which investors match existing queries.
func FilterByChequeRange(recs []Investor, minAmount, maxAmount string) []Investor {
	minLower := strings.ToLower(minAmount)
	maxLower := strings.ToLower(maxAmount)

	var kept []Investor
	for _, rec := range recs {
		if rec.ChequeMin == "" || rec.ChequeMax == "" {
			continue
		}
		if minAmount != "" && strings.ToLower(rec.ChequeMin) < minLower {
			continue
		}
		if maxAmount != "" && strings.ToLower(rec.ChequeMax) > maxLower {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}
