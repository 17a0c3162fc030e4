// Package pipeline drives one run: fetch, normalize, render and write.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"podrank/internal/clock"
	"podrank/internal/formatter"
	"podrank/internal/logger"
	"podrank/internal/models"
	"podrank/internal/normalizer"
	"podrank/internal/render"
	"podrank/internal/snapshot"
	"podrank/internal/source"
	"podrank/internal/validator"
	"podrank/pkg/metadata"
	"podrank/pkg/metrics"
)

// Output file names inside the output directory.
const (
	TableFile = "README.md"
	PageFile  = "index.html"

	// DefaultHistoryDir is used when Options.HistoryDir is empty.
	DefaultHistoryDir = "data"
)

// Artifact kinds reported in Result.
const (
	ArtifactSnapshot = "snapshot"
	ArtifactHistory  = "history"
	ArtifactTable    = "table"
	ArtifactPage     = "page"
)

// Options tune a Pipeline. The zero value renders the default title into
// the default history directory.
type Options struct {
	Title         string
	HistoryDir    string
	AlignTables   bool
	SignDocuments bool
	Metrics       *metrics.Manager
}

// Artifact is one file written by a run.
type Artifact struct {
	Kind string
	Path string
	Size int
}

// Result describes a completed run.
type Result struct {
	RunID     string
	Source    string
	Records   int
	UpdatedAt string
	DayKey    string
	Artifacts []Artifact
	Duration  time.Duration
}

// Pipeline runs sources through normalization and rendering.
type Pipeline struct {
	resolver  source.Resolver
	clock     clock.Clock
	log       *logger.Logger
	opts      Options
	validator *validator.MarkdownValidator
}

// New creates a pipeline. A nil log discards output.
func New(resolver source.Resolver, clk clock.Clock, log *logger.Logger, opts Options) *Pipeline {
	if log == nil {
		log = logger.Discard()
	}

	if opts.Title == "" {
		opts.Title = render.DefaultTitle
	}

	if opts.HistoryDir == "" {
		opts.HistoryDir = DefaultHistoryDir
	}

	return &Pipeline{
		resolver:  resolver,
		clock:     clk,
		log:       log,
		opts:      opts,
		validator: validator.NewMarkdownValidator(),
	}
}

// Run executes one batch for sourceName and writes the snapshot, its
// history copy, the table document and the page into outputDir.
func (p *Pipeline) Run(ctx context.Context, sourceName, outputDir string) (res *Result, err error) {
	start := time.Now()
	res = &Result{RunID: uuid.NewString(), Source: sourceName}
	log := p.log.With("run_id", res.RunID, "source", sourceName)

	defer func() {
		res.Duration = time.Since(start)
		p.opts.Metrics.RecordRun(sourceName, err, p.clock.Now())
	}()

	log.Info("Phase 1: Ingestion (Fetching)...")

	stageStart := time.Now()

	src, err := p.resolver.Lookup(sourceName)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrSourceResolution, err)
	}

	raw, err := src.Fetch(ctx)
	if err != nil {
		if errors.Is(err, normalizer.ErrNotRecordSequence) {
			return res, fmt.Errorf("%w: %s: %w", ErrSourceResolution, sourceName, err)
		}

		return res, fmt.Errorf("%w: %s: %w", ErrFetch, sourceName, err)
	}

	p.opts.Metrics.ObserveStage("fetch", time.Since(stageStart))
	log.Info(fmt.Sprintf("✅ Fetched %d records in %v", len(raw), time.Since(stageStart)))

	log.Info("Phase 2: Processing (Normalization & Rendering)...")

	stageStart = time.Now()
	batch := normalizer.NewProcessor(sourceName).Process(raw)
	res.Records = len(batch)
	p.opts.Metrics.SetRecords(len(batch))

	now := p.clock.Now()
	res.UpdatedAt = clock.Display(now)
	res.DayKey = clock.DayKey(now)

	table, err := p.renderTable(log, batch, res.UpdatedAt, sourceName, now)
	if err != nil {
		return res, fmt.Errorf("%w: table: %w", ErrRender, err)
	}

	page, err := render.Page(batch, p.opts.Title, res.UpdatedAt)
	if err != nil {
		return res, fmt.Errorf("%w: page: %w", ErrRender, err)
	}

	p.opts.Metrics.ObserveStage("render", time.Since(stageStart))
	log.Debug("rendered documents", "table_bytes", len(table), "page_bytes", len(page))

	log.Info("Phase 3: Output (Writing)...")

	stageStart = time.Now()

	if err := p.write(res, batch, table, page, outputDir); err != nil {
		return res, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	p.opts.Metrics.ObserveStage("write", time.Since(stageStart))

	log.Info("✨ Pipeline Complete!", "records", res.Records, "updated_at", res.UpdatedAt)

	return res, nil
}

func (p *Pipeline) renderTable(log *logger.Logger, batch models.RankedBatch, updatedAt, sourceName string, now time.Time) (string, error) {
	table := render.Table(batch, p.opts.Title, updatedAt)

	if p.opts.AlignTables {
		aligned, err := formatter.FormatMarkdown(table)
		if err != nil {
			return "", err
		}

		table = aligned
	}

	if p.opts.SignDocuments {
		result := p.validator.ValidateMarkdown(table)
		for _, e := range result.Errors {
			log.Warn("table validation", "error", e.String())
		}

		table = metadata.Sign(table, metadata.Metadata{
			LastModify: now,
			Source:     sourceName,
			Items:      len(batch),
			Validation: result.IsValid,
		})
	}

	return table, nil
}

func (p *Pipeline) write(res *Result, batch models.RankedBatch, table, page, outputDir string) error {
	for _, dir := range []string{outputDir, p.opts.HistoryDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	latestPath := filepath.Join(outputDir, snapshot.LatestFile)

	size, err := snapshot.Write(batch, res.UpdatedAt, res.DayKey, latestPath, p.opts.HistoryDir)
	if err != nil {
		return err
	}

	p.record(res, ArtifactSnapshot, latestPath, size)
	p.record(res, ArtifactHistory, snapshot.HistoryPath(p.opts.HistoryDir, res.DayKey), size)

	documents := []struct {
		kind, name, content string
	}{
		{ArtifactTable, TableFile, table},
		{ArtifactPage, PageFile, page},
	}

	for _, doc := range documents {
		path := filepath.Join(outputDir, doc.name)
		if err := os.WriteFile(path, []byte(doc.content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		p.record(res, doc.kind, path, len(doc.content))
	}

	return nil
}

func (p *Pipeline) record(res *Result, kind, path string, size int) {
	res.Artifacts = append(res.Artifacts, Artifact{Kind: kind, Path: path, Size: size})
	p.opts.Metrics.RecordArtifact(size)
}
