package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"podrank/internal/models"
	"podrank/internal/normalizer"
)

// decodeJSON decodes a JSON array of objects. An object whose "items" field
// holds the array is unwrapped. Numbers stay json.Number so they are written
// back exactly as the source sent them.
func decodeJSON(data []byte) ([]models.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode JSON payload: %w", err)
	}

	if dec.More() {
		return nil, fmt.Errorf("failed to decode JSON payload: %w", errTrailingData)
	}

	return normalizer.Records(unwrapItems(payload))
}

var errTrailingData = errors.New("unexpected data after top-level value")

// unwrapItems returns the "items" field of an object payload, or the
// payload itself.
func unwrapItems(payload any) any {
	if obj, ok := payload.(map[string]any); ok {
		if items, found := obj["items"]; found {
			return items
		}
	}

	return payload
}

// decodeTOML decodes an [[items]] array of tables.
func decodeTOML(data []byte) ([]models.RawRecord, error) {
	var payload map[string]any
	if err := toml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode TOML payload: %w", err)
	}

	return normalizer.Records(unwrapItems(payload))
}

// decodeYAML decodes a YAML sequence of mappings.
func decodeYAML(data []byte) ([]models.RawRecord, error) {
	var payload any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode YAML payload: %w", err)
	}

	return normalizer.Records(payload)
}
