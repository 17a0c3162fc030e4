package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podrank/internal/config"
	"podrank/internal/crawler"
	"podrank/internal/models"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	src := NewStaticSource("one", nil)

	require.NoError(t, r.Register(src))

	got, err := r.Lookup("one")
	require.NoError(t, err)
	assert.Same(t, src, got)

	err = r.Register(NewStaticSource("one", nil))
	assert.ErrorIs(t, err, ErrDuplicateSource)

	_, err = r.Lookup("missing")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewStaticSource("zeta", nil)))
	require.NoError(t, r.Register(NewStaticSource("alpha", nil)))

	assert.Equal(t, []string{"alpha", "zeta"}, r.Names())
}

func TestBuiltin_DemoStatic(t *testing.T) {
	src, err := Builtin().Lookup(DemoStaticName)
	require.NoError(t, err)
	assert.Equal(t, DemoStaticName, src.Name())

	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, records)

	for _, rec := range records {
		assert.Contains(t, rec, "title")
	}
}

func TestStaticSource_FetchReturnsCopies(t *testing.T) {
	src := NewStaticSource("s", []models.RawRecord{{"title": "a"}})

	first, err := src.Fetch(context.Background())
	require.NoError(t, err)
	first[0]["title"] = "changed"

	second, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", second[0]["title"])
}

func TestStaticSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStaticSource("s", nil).Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromConfig(t *testing.T) {
	fixture := filepath.Join(t.TempDir(), "local.json")
	require.NoError(t, os.WriteFile(fixture, []byte(`[{"title":"x"}]`), 0644))

	cfg := config.Default()
	cfg.Sources = []config.SourceConfig{
		{Name: "local", Type: config.SourceTypeFile, File: fixture, Enabled: true},
		{Name: "remote", Type: config.SourceTypeJSON, URL: "https://example.com/rank.json", Enabled: true},
		{Name: "page", Type: config.SourceTypeHTML, URL: "https://example.com/", Selector: "#rank", Enabled: true},
		{Name: "off", Type: config.SourceTypeFile, File: fixture, Enabled: false},
	}

	r, err := FromConfig(cfg, crawler.NewScraper())
	require.NoError(t, err)
	assert.Equal(t, []string{DemoStaticName, "local", "page", "remote"}, r.Names())

	src, err := r.Lookup("local")
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, src)

	src, err = r.Lookup("page")
	require.NoError(t, err)
	assert.IsType(t, &HTMLSource{}, src)
}

func TestFromConfig_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.Sources = []config.SourceConfig{{Name: DemoStaticName, Type: config.SourceTypeFile, File: "x.json", Enabled: true}}

	_, err := FromConfig(cfg, crawler.NewScraper())
	assert.ErrorIs(t, err, ErrDuplicateSource)

	cfg.Sources = []config.SourceConfig{{Name: "bad", Type: "ftp", Enabled: true}}

	_, err = FromConfig(cfg, crawler.NewScraper())
	assert.ErrorIs(t, err, config.ErrSourceInvalidType)
}
