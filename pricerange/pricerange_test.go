package pricerange

import (
	"testing"

	"bnb-search/models"
)

func priced(prices ...float64) []models.Listing {
	listings := make([]models.Listing, len(prices))
	for i, p := range prices {
		listings[i] = models.Listing{Price: p}
	}
	return listings
}

func TestDistribution(t *testing.T) {
	listings := priced(25, 75, 80, 120, 150)

	buckets := Distribution(listings, 50)

	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3", len(buckets))
	}

	wantCounts := []int{1, 2, 2} // 25 | 75, 80 | 120, 150 (top edge inclusive)
	for i, want := range wantCounts {
		if buckets[i].Count != want {
			t.Errorf("bucket %d (%s) count = %d, want %d", i, buckets[i].Label, buckets[i].Count, want)
		}
	}

	if buckets[0].Label != "$0-$50" {
		t.Errorf("first label = %q, want $0-$50", buckets[0].Label)
	}
	if buckets[2].Min != 100 || buckets[2].Max != 150 {
		t.Errorf("last band = %d-%d, want 100-150", buckets[2].Min, buckets[2].Max)
	}
}

func TestDistributionSkipsUnpriced(t *testing.T) {
	listings := priced(0, 0, 60)

	buckets := Distribution(listings, 50)

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	if total != 1 {
		t.Errorf("counted %d listings, want 1 (unpriced skipped)", total)
	}
}

func TestDistributionEmptyOrUnpriced(t *testing.T) {
	if got := Distribution(nil, 50); got != nil {
		t.Errorf("nil listings should yield nil, got %v", got)
	}
	if got := Distribution(priced(0, 0), 50); got != nil {
		t.Errorf("all-unpriced listings should yield nil, got %v", got)
	}
}

func TestDistributionDefaultStep(t *testing.T) {
	buckets := Distribution(priced(120), 0)

	if len(buckets) != 3 {
		t.Fatalf("got %d buckets with default step, want 3", len(buckets))
	}
	if buckets[0].Max != DefaultStep {
		t.Errorf("first band max = %d, want %d", buckets[0].Max, DefaultStep)
	}
}

func TestCountBands(t *testing.T) {
	tests := []struct {
		name string
		min  int
		max  int
		step int
		want int
	}{
		{"exact multiple", 0, 200, 50, 4},
		{"remainder adds a band", 0, 220, 50, 5},
		{"inverted range", 200, 100, 50, 1},
		{"zero step", 0, 200, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountBands(tt.min, tt.max, tt.step); got != tt.want {
				t.Errorf("CountBands(%d, %d, %d) = %d, want %d", tt.min, tt.max, tt.step, got, tt.want)
			}
		})
	}
}
