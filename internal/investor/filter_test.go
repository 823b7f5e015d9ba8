package investor

import (
	"reflect"
	"testing"
)

func TestBuildFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		investorType string
		stage        string
		country      string
		hq           string
		want         map[string]string
	}{
		{
			name: "all empty yields no filters",
			want: map[string]string{},
		},
		{
			name:         "type and country are normalised",
			investorType: "angel",
			country:      "united states",
			want: map[string]string{
				ColType:      "Angel network",
				ColCountries: "USA",
			},
		},
		{
			name:  "stage passes verbatim",
			stage: "Series A",
			want:  map[string]string{ColStage: "Series A"},
		},
		{
			name: "hq passes verbatim including casing",
			hq:   "San Francisco, CA",
			want: map[string]string{ColHQ: "San Francisco, CA"},
		},
		{
			name:         "all four combine",
			investorType: "vc",
			stage:        "Seed",
			country:      "uk",
			hq:           "London",
			want: map[string]string{
				ColType:      "VC",
				ColStage:     "Seed",
				ColCountries: "UK",
				ColHQ:        "London",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := BuildFilters(tt.investorType, tt.stage, tt.country, tt.hq)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildFilters() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterByChequeRange(t *testing.T) {
	t.Parallel()

	recs := []Investor{
		{Name: "Alpha", ChequeMin: "100k", ChequeMax: "500k"},
		{Name: "Beta", ChequeMin: "1M", ChequeMax: "5M"},
		{Name: "NoCheque", ChequeMin: "", ChequeMax: "5M"},
	}

	t.Run("no bounds keeps all records with cheque data", func(t *testing.T) {
		t.Parallel()
		got := FilterByChequeRange(recs, "", "")
		if len(got) != 2 {
			t.Fatalf("got %d records, want 2", len(got))
		}
		if got[0].Name != "Alpha" || got[1].Name != "Beta" {
			t.Errorf("unexpected records: %v", got)
		}
	})

	t.Run("missing cheque fields are dropped", func(t *testing.T) {
		t.Parallel()
		got := FilterByChequeRange(recs, "100k", "")
		for _, rec := range got {
			if rec.Name == "NoCheque" {
				t.Error("record without cheque data survived the filter")
			}
		}
	})

	t.Run("minimum bound drops lower strings", func(t *testing.T) {
		t.Parallel()
		got := FilterByChequeRange(recs, "1M", "")
		if len(got) != 1 || got[0].Name != "Beta" {
			t.Errorf("got %v, want only Beta", got)
		}
	})

	t.Run("comparison is case-insensitive", func(t *testing.T) {
		t.Parallel()
		in := []Investor{{Name: "Mixed", ChequeMin: "100K", ChequeMax: "500K"}}
		got := FilterByChequeRange(in, "100k", "500k")
		if len(got) != 1 {
			t.Errorf("got %d records, want 1", len(got))
		}
	})

	t.Run("comparison is lexicographic not numeric", func(t *testing.T) {
		t.Parallel()
		// "9M" compares above "10M" as a string, so a 9M minimum survives a
		// 10M floor while a larger numeric amount would not be expected to.
		in := []Investor{{Name: "Nine", ChequeMin: "9M", ChequeMax: "9M"}}
		got := FilterByChequeRange(in, "10M", "")
		if len(got) != 1 {
			t.Errorf("9M vs 10M floor: got %d records, want 1 (string ordering)", len(got))
		}

		// And the reverse: "10M" sorts below "9M".
		in = []Investor{{Name: "Ten", ChequeMin: "10M", ChequeMax: "10M"}}
		got = FilterByChequeRange(in, "9M", "")
		if len(got) != 0 {
			t.Errorf("10M vs 9M floor: got %d records, want 0 (string ordering)", len(got))
		}
	})
}
