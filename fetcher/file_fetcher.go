package fetcher

import (
	"context"
	"fmt"
	"os"

	"bnb-search/models"
	"bnb-search/parser"
)

// FileFetcher reads the catalogue from a local JSON snapshot, useful for
// development and one-shot CLI runs
type FileFetcher struct {
	path   string
	parser *parser.Parser
}

// NewFileFetcher creates a new FileFetcher for the given snapshot path
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{
		path:   path,
		parser: parser.NewParser(),
	}
}

// Fetch reads and decodes the snapshot
func (f *FileFetcher) Fetch(ctx context.Context) ([]models.Listing, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue file: %w", err)
	}

	return f.parser.ParseCatalogue(data)
}
