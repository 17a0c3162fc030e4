package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"podrank/internal/models"
)

// FileSource reads records from a local JSON, YAML or TOML fixture.
type FileSource struct {
	name string
	path string
}

// NewFileSource creates a source backed by the file at path.
func NewFileSource(name, path string) *FileSource {
	return &FileSource{name: name, path: path}
}

// Name returns the registry name.
func (s *FileSource) Name() string {
	return s.name
}

// Fetch reads and decodes the fixture. The extension selects the decoder.
func (s *FileSource) Fetch(ctx context.Context) ([]models.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	case ".toml":
		return decodeTOML(data)
	default:
		return decodeJSON(data)
	}
}
