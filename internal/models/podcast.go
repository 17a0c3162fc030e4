// Package models defines data structures for the fetcher, normalizer and renderers.
package models

// RawRecord is a single item as produced by a source. No key is guaranteed
// to be present and values are not type checked until normalization.
type RawRecord map[string]any

// Podcast is the canonical shape of a ranked item.
// Field order is fixed and every record carries all five fields.
type Podcast struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
	// Score is carried opaquely; nil means the source did not report one.
	Score any      `json:"score"`
	Tags  []string `json:"tags"`
}

// RankedBatch is an ordered sequence of podcasts. The 1-based position of a
// record is its published rank.
type RankedBatch []Podcast

// Snapshot is the persisted form of one run.
type Snapshot struct {
	UpdatedAt string      `json:"updated_at"`
	Items     RankedBatch `json:"items"`
}
