package investor

import "testing"

func TestNormalizeInvestorType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"angel alias", "angel", "Angel network"},
		{"angel network full", "Angel Network", "Angel network"},
		{"vc lowercase", "vc", "VC"},
		{"venture capital spelled out", "Venture Capital", "VC"},
		{"pe", "PE", "PE"},
		{"private equity", "private equity", "PE"},
		{"cvc", "cvc", "CVC"},
		{"corporate venture capital", "Corporate Venture Capital", "CVC"},
		{"unknown passes through unchanged", "Family office", "Family office"},
		{"unknown keeps original casing", "ANGEL SYNDICATE", "ANGEL SYNDICATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeInvestorType(tt.in); got != tt.want {
				t.Errorf("NormalizeInvestorType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeCountry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"united states", "United States", "USA"},
		{"us", "us", "USA"},
		{"america", "America", "USA"},
		{"england maps to UK", "England", "UK"},
		{"great britain maps to UK", "great britain", "UK"},
		{"germany canonicalises casing", "germany", "Germany"},
		{"israel", "ISRAEL", "Israel"},
		{"unmapped passes through unchanged", "Brazil", "Brazil"},
		{"unmapped keeps original casing", "brazil", "brazil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeCountry(tt.in); got != tt.want {
				t.Errorf("NormalizeCountry(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
