// Package source provides the named collaborators that supply raw records
// to the pipeline.
package source

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"podrank/internal/config"
	"podrank/internal/crawler"
	"podrank/internal/models"
)

var (
	// ErrUnknownSource is returned when no source is registered under a name.
	ErrUnknownSource = errors.New("unknown source")
	// ErrDuplicateSource is returned when a name is registered twice.
	ErrDuplicateSource = errors.New("source already registered")
)

// Source fetches one batch of raw records.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.RawRecord, error)
}

// Resolver looks sources up by name.
type Resolver interface {
	Lookup(name string) (Source, error)
}

// Registry maps source names to implementations.
type Registry struct {
	sources map[string]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// Register adds src under its own name.
func (r *Registry) Register(src Source) error {
	name := src.Name()
	if _, exists := r.sources[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateSource, name)
	}

	r.sources[name] = src

	return nil
}

// Lookup returns the source registered under name.
func (r *Registry) Lookup(name string) (Source, error) {
	src, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}

	return src, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Builtin returns a registry holding the sources compiled into the binary.
func Builtin() *Registry {
	r := NewRegistry()
	_ = r.Register(NewStaticSource(DemoStaticName, DemoRecords()))

	return r
}

// FromConfig returns the built-in registry extended with every enabled
// source declared in cfg. HTTP-backed sources share scraper.
func FromConfig(cfg *config.Config, scraper *crawler.Scraper) (*Registry, error) {
	r := Builtin()

	for _, sc := range cfg.GetEnabledSources() {
		src, err := build(sc, scraper)
		if err != nil {
			return nil, err
		}

		if err := r.Register(src); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func build(sc config.SourceConfig, scraper *crawler.Scraper) (Source, error) {
	switch sc.Type {
	case config.SourceTypeFile:
		return NewFileSource(sc.Name, sc.File), nil
	case config.SourceTypeJSON:
		return NewJSONSource(sc.Name, sc.URL, scraper), nil
	case config.SourceTypeHTML:
		return NewHTMLSource(sc.Name, sc.URL, sc.Selector, scraper), nil
	}

	return nil, fmt.Errorf("%w: %q", config.ErrSourceInvalidType, sc.Type)
}
