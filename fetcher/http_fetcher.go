package fetcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"bnb-search/models"
	"bnb-search/parser"
)

// HTTPFetcher pulls the catalogue as JSON from an upstream HTTP endpoint
type HTTPFetcher struct {
	url    string
	client *http.Client
	parser *parser.Parser
}

// NewHTTPFetcher creates a new HTTPFetcher for the given catalogue URL
func NewHTTPFetcher(url string) *HTTPFetcher {
	return &HTTPFetcher{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		parser: parser.NewParser(),
	}
}

// Fetch downloads and decodes the catalogue
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]models.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalogue request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalogue request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalogue endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue response: %w", err)
	}

	listings, err := f.parser.ParseCatalogue(body)
	if err != nil {
		return nil, err
	}

	log.Printf("Fetched %d listings from %s\n", len(listings), f.url)
	return listings, nil
}
