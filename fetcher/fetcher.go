package fetcher

import (
	"context"

	"bnb-search/models"
)

// Fetcher retrieves the listing catalogue from an upstream source
type Fetcher interface {
	// Fetch returns the current catalogue snapshot
	Fetch(ctx context.Context) ([]models.Listing, error)
}
