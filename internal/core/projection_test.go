package core

import "testing"

func TestOccurrencesPerMonth(t *testing.T) {
	cases := []struct {
		freq Frequency
		want int64
	}{
		{Weekly, 4},
		{BiWeekly, 2},
		{Monthly, 1},
		{Frequency("QUARTERLY"), 1}, // lenient default
		{Frequency(""), 1},
	}
	for _, tc := range cases {
		if got := OccurrencesPerMonth(tc.freq); got != tc.want {
			t.Fatalf("OccurrencesPerMonth(%q) = %d, want %d", tc.freq, got, tc.want)
		}
	}
}

func TestProjectedMonthlyIncome(t *testing.T) {
	weekly := Meeting{ContributionAmount: Money{Francs: 50000}, Frequency: Weekly}

	if got := ProjectedMonthlyIncome([]Meeting{weekly}); got.Francs != 200000 {
		t.Fatalf("weekly projection = %d, want 200000", got.Francs)
	}
	if got := ProjectedMonthlyIncome(nil); got.Francs != 0 {
		t.Fatalf("empty projection = %d, want 0", got.Francs)
	}

	mixed := []Meeting{
		weekly,
		{ContributionAmount: Money{Francs: 35000}, Frequency: BiWeekly},
		{ContributionAmount: Money{Francs: 120000}, Frequency: Monthly},
	}
	want := int64(200000 + 70000 + 120000)
	if got := ProjectedMonthlyIncome(mixed); got.Francs != want {
		t.Fatalf("mixed projection = %d, want %d", got.Francs, want)
	}
}

func TestFrequencyDiagnostics(t *testing.T) {
	meetings := []Meeting{
		{ID: "ok", Frequency: Monthly},
		{ID: "bad", Frequency: Frequency("FORTNIGHTLY")},
	}

	got := FrequencyDiagnostics(meetings)
	if len(got) != 1 || got[0].ID != "bad" {
		t.Fatalf("diagnostics = %v, want [bad]", got)
	}
	if got := FrequencyDiagnostics(nil); len(got) != 0 {
		t.Fatalf("empty diagnostics = %v", got)
	}
}
