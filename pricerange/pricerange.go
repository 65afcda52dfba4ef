package pricerange

import (
	"fmt"

	"bnb-search/models"
)

// DefaultStep is the default price band width in dollars
const DefaultStep = 50

// Bucket is one price band and the number of listings priced inside it
type Bucket struct {
	Label string // e.g. "$50-$100"
	Min   int
	Max   int
	Count int
}

// Distribution counts listings per $step price band, from $0 up to the most
// expensive listing. Bands are [min, max) except the last, which includes
// its upper bound. Listings without a price are skipped.
func Distribution(listings []models.Listing, step int) []Bucket {
	if step <= 0 {
		step = DefaultStep
	}

	var top float64
	for _, l := range listings {
		if l.Price > top {
			top = l.Price
		}
	}
	if top <= 0 {
		return nil
	}

	bands := int(top) / step
	if int(top)%step != 0 {
		bands++
	}

	buckets := make([]Bucket, bands)
	for i := range buckets {
		min := i * step
		max := min + step
		buckets[i] = Bucket{
			Label: fmt.Sprintf("$%d-$%d", min, max),
			Min:   min,
			Max:   max,
		}
	}

	for _, l := range listings {
		if l.Price <= 0 {
			continue
		}
		idx := int(l.Price) / step
		if idx >= len(buckets) {
			idx = len(buckets) - 1
		}
		buckets[idx].Count++
	}

	return buckets
}

// CountBands returns how many $step bands fit between min and max
func CountBands(min, max, step int) int {
	if step <= 0 || max <= min {
		return 1
	}
	count := (max - min) / step
	if (max-min)%step != 0 {
		count++
	}
	return count
}
