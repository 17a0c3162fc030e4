package source

import (
	"context"

	"podrank/internal/crawler"
	"podrank/internal/models"
)

// JSONSource fetches a JSON array of records over HTTP.
type JSONSource struct {
	name    string
	url     string
	scraper *crawler.Scraper
}

// NewJSONSource creates a source that GETs url with scraper.
func NewJSONSource(name, url string, scraper *crawler.Scraper) *JSONSource {
	return &JSONSource{name: name, url: url, scraper: scraper}
}

// Name returns the registry name.
func (s *JSONSource) Name() string {
	return s.name
}

// Fetch downloads and decodes the payload.
func (s *JSONSource) Fetch(ctx context.Context) ([]models.RawRecord, error) {
	body, err := s.scraper.Fetch(ctx, s.url)
	if err != nil {
		return nil, err
	}

	return decodeJSON(body)
}
