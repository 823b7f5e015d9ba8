package investor

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// Similarity weights and the fixed factor labels reported per match, in the
// order they are evaluated.
const (
	weightSameType      = 3
	weightSameStage     = 2
	weightSameCountries = 2
	weightSimilarHQ     = 1

	FactorSameType      = "same investor type"
	FactorSameStage     = "same investment stage"
	FactorSameCountries = "same investment countries"
	FactorSimilarHQ     = "similar HQ location"
)

// ScoredInvestor pairs a candidate with its similarity score and the labels
// of the attributes that matched, in evaluation order.
type ScoredInvestor struct {
	Investor Investor
	Score    int
	Factors  []string
}

// ScoreSimilar scores every candidate against the target investor and returns
// the candidates with a positive score, ranked by descending score. Ties keep
// candidate encounter order. Candidates whose name equals excludeName are
// skipped (the target itself).
//
// Scoring: +3 for an identical investor type, +2 for an identical stage,
// +2 for an identical countries string (whole-string equality: multi-value
// lists must match verbatim, separators and ordering included), and +1 when
// the candidate HQ contains any whitespace-delimited token of the target HQ
// as a case-sensitive substring.
func ScoreSimilar(target Investor, candidates []Investor, excludeName string) []ScoredInvestor {
	targetHQTokens := strings.Fields(target.HQ)

	var scored []ScoredInvestor
	for _, cand := range candidates {
		if cand.Name == excludeName {
			continue
		}

		score := 0
		var factors []string

		// Plain equality, including two absent values matching each other.
		// Only the HQ factor requires both sides to be present.
		if cand.Type == target.Type {
			score += weightSameType
			factors = append(factors, FactorSameType)
		}
		if cand.Stage == target.Stage {
			score += weightSameStage
			factors = append(factors, FactorSameStage)
		}
		if cand.Countries == target.Countries {
			score += weightSameCountries
			factors = append(factors, FactorSameCountries)
		}
		if target.HQ != "" && cand.HQ != "" && containsAnyToken(cand.HQ, targetHQTokens) {
			score += weightSimilarHQ
			factors = append(factors, FactorSimilarHQ)
		}

		if score > 0 {
			scored = append(scored, ScoredInvestor{Investor: cand, Score: score, Factors: factors})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// containsAnyToken reports whether s contains any of the tokens as a
// case-sensitive substring.
func containsAnyToken(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// suggestionThreshold is the minimum Jaro-Winkler score for a name to be
// offered as a "did you mean" suggestion.
const suggestionThreshold = 0.85

// SuggestNames returns up to max candidate names ranked by Jaro-Winkler
// similarity to name, case-insensitive, keeping only close matches. Used to
// help callers recover from misspelled investor names.
func SuggestNames(name string, candidates []string, max int) []string {
	nameLower := strings.ToLower(strings.TrimSpace(name))
	if nameLower == "" || max <= 0 {
		return nil
	}

	type ranked struct {
		name  string
		score float64
	}
	var matches []ranked
	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		score := matchr.JaroWinkler(nameLower, strings.ToLower(cand), false)
		if score >= suggestionThreshold {
			matches = append(matches, ranked{name: cand, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > max {
		matches = matches[:max]
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.name)
	}
	return names
}
