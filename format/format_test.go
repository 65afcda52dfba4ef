package format

import (
	"testing"
	"time"

	"bnb-search/models"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want string
	}{
		{"zero", 0, "No places found"},
		{"negative", -3, "No places found"},
		{"one", 1, "Show 1 place"},
		{"small", 37, "Show 37 places"},
		{"just under threshold", 999, "Show 999 places"},
		{"exactly threshold", 1000, "Show 1000+ places"},
		{"rounded down", 1450, "Show 1400+ places"},
		{"large", 23987, "Show 23900+ places"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCount(tt.n); got != tt.want {
				t.Errorf("FormatCount(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	in := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	out := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		search models.SearchFilters
		want   string
	}{
		{"nothing selected", models.SearchFilters{}, "All properties"},
		{"whitespace location only", models.SearchFilters{Location: "   "}, "All properties"},
		{"location only", models.SearchFilters{Location: "Austin, TX"}, "Austin, TX"},
		{
			"location and dates",
			models.SearchFilters{Location: "Austin", CheckIn: &in, CheckOut: &out},
			"Austin • Sep 10 – Sep 15",
		},
		{
			"single guest",
			models.SearchFilters{Adults: 1},
			"1 guest",
		},
		{
			"guests and pets",
			models.SearchFilters{Adults: 2, Children: 1, Pets: 1},
			"3 guests • 1 pet",
		},
		{
			"infants excluded from guest phrase",
			models.SearchFilters{Adults: 2, Infants: 2},
			"2 guests",
		},
		{
			"everything",
			models.SearchFilters{
				Location: "Miami", CheckIn: &in, CheckOut: &out,
				Adults: 2, Children: 2, Pets: 2,
			},
			"Miami • Sep 10 – Sep 15 • 4 guests • 2 pets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.search); got != tt.want {
				t.Errorf("Summarize() = %q, want %q", got, tt.want)
			}
		})
	}
}
