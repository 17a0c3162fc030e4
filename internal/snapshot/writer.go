// Package snapshot persists ranked batches as JSON.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"podrank/internal/models"
)

// LatestFile is the name of the snapshot that every run overwrites.
const LatestFile = "rank.json"

// Marshal encodes a snapshot as indented UTF-8 JSON. Non-ASCII text and
// markup characters are written as-is.
func Marshal(snap models.Snapshot) ([]byte, error) {
	if snap.Items == nil {
		snap.Items = models.RankedBatch{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(snap); err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return buf.Bytes(), nil
}

// HistoryPath returns the file a given day's snapshot is written to.
func HistoryPath(historyDir, dayKey string) string {
	return filepath.Join(historyDir, dayKey+".json")
}

// Write stores {updated_at, items} at latestPath and at the day's file in
// historyDir, overwriting both. It returns the encoded size.
func Write(batch models.RankedBatch, updatedAt, dayKey, latestPath, historyDir string) (int, error) {
	data, err := Marshal(models.Snapshot{UpdatedAt: updatedAt, Items: batch})
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(latestPath, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write latest snapshot: %w", err)
	}

	if err := os.WriteFile(HistoryPath(historyDir, dayKey), data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write history snapshot: %w", err)
	}

	return len(data), nil
}

// Read loads a snapshot written by Write. Scores are returned as
// json.Number so large integers survive the round trip.
func Read(path string) (*models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var snap models.Snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	return &snap, nil
}
