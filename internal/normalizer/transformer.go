package normalizer

import (
	"strings"

	"podrank/internal/models"
)

// Transformer maps raw records onto the canonical podcast shape.
type Transformer struct {
	defaultSource string
}

// NewTransformer creates a transformer that falls back to defaultSource
// when a record does not name its own source.
func NewTransformer(defaultSource string) *Transformer {
	return &Transformer{defaultSource: defaultSource}
}

// Transform converts one raw record. Missing or mistyped fields degrade to
// their defaults; it never fails.
func (t *Transformer) Transform(raw models.RawRecord) models.Podcast {
	return models.Podcast{
		Title:  trimmedString(raw, "title"),
		URL:    trimmedString(raw, "url"),
		Source: t.source(raw),
		Score:  raw["score"],
		Tags:   stringSlice(raw["tags"]),
	}
}

// Normalize is a convenience wrapper around Transformer.Transform.
func Normalize(raw models.RawRecord, defaultSource string) models.Podcast {
	return NewTransformer(defaultSource).Transform(raw)
}

func (t *Transformer) source(raw models.RawRecord) string {
	if s, ok := raw["source"].(string); ok && s != "" {
		return s
	}

	return t.defaultSource
}

func trimmedString(raw models.RawRecord, key string) string {
	s, ok := raw[key].(string)
	if !ok {
		return ""
	}

	return strings.TrimSpace(s)
}

// stringSlice keeps the string elements of a tag list in order. Anything
// that is not a list yields an empty, non-nil slice.
func stringSlice(v any) []string {
	tags := []string{}

	switch list := v.(type) {
	case []string:
		tags = append(tags, list...)
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
	}

	return tags
}
