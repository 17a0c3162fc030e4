package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"podrank/internal/clock"
	"podrank/internal/config"
	"podrank/internal/crawler"
	"podrank/internal/pipeline"
	"podrank/internal/source"
	"podrank/pkg/metrics"
)

type runOptions struct {
	source     string
	outputDir  string
	historyDir string
	title      string
}

func runPipeline(ctx context.Context, cmd *cobra.Command, global *globalOptions, run *runOptions) error {
	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}

	if run.outputDir != "" {
		cfg.Output.Dir = run.outputDir
	}

	if run.historyDir != "" {
		cfg.Output.HistoryDir = run.historyDir
	}

	if run.title != "" {
		cfg.Output.Title = run.title
	}

	log := global.logger(cfg, cmd.ErrOrStderr())

	clk, err := clock.New(cfg.Clock.Timezone)
	if err != nil {
		return err
	}

	registry, err := source.FromConfig(cfg, crawler.NewScraperWithConfig(cfg.Retry))
	if err != nil {
		return fmt.Errorf("failed to build source registry: %w", err)
	}

	var m *metrics.Manager
	if cfg.Metrics.Textfile != "" {
		m = metrics.NewManager()
	}

	p := pipeline.New(registry, clk, log, pipelineOptions(cfg, m))

	log.Info(fmt.Sprintf("🚀 Starting podrank (%s)", cfg))

	res, runErr := p.Run(ctx, run.source, cfg.Output.Dir)
	if runErr != nil {
		log.Error("❌ Pipeline failed", "run_id", res.RunID, "error", runErr)
	}

	if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		log.Warn("⚠️  Failed to export metrics", "path", cfg.Metrics.Textfile, "error", err)
	}

	if runErr != nil {
		return runErr
	}

	return writeSummary(cmd.OutOrStdout(), res)
}

func pipelineOptions(cfg *config.Config, m *metrics.Manager) pipeline.Options {
	return pipeline.Options{
		Title:         cfg.Output.Title,
		HistoryDir:    cfg.Output.HistoryDir,
		AlignTables:   cfg.Output.AlignTables,
		SignDocuments: cfg.Output.SignDocuments,
		Metrics:       m,
	}
}
