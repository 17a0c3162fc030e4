package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"podrank/internal/config"
	"podrank/internal/logger"
)

// globalOptions holds the flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
}

// loadConfig reads the configuration named by --config, falling back to
// defaults plus environment overrides.
func (g *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(g.configPath)
	if err != nil {
		return nil, err
	}

	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}

	return cfg, nil
}

func (g *globalOptions) logger(cfg *config.Config, w io.Writer) *logger.Logger {
	return logger.NewLoggerWithWriter(cfg.Logging.Level, cfg.Logging.Format, w)
}

func newRootCommand() *cobra.Command {
	global := &globalOptions{}
	run := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "podrank --source NAME [--out DIR]",
		Short: "Fetch a podcast ranking and publish it as JSON, Markdown and HTML",
		Long: "podrank fetches one batch of ranked podcasts from a named source, normalizes it,\n" +
			"and writes rank.json, README.md and index.html into the output directory together\n" +
			"with a dated copy of the snapshot in the history directory.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runPipeline(ctx, cmd, global, run)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&global.configPath, "config", "c", "", "Configuration file path (YAML)")
	rootCmd.PersistentFlags().StringVar(&global.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Flags().StringVarP(&run.source, "source", "s", "", "Name of the source to fetch (see 'podrank sources')")
	rootCmd.Flags().StringVarP(&run.outputDir, "out", "o", "", "Output directory for rank.json, README.md and index.html (overrides output.dir)")
	rootCmd.Flags().StringVar(&run.historyDir, "history-dir", "", "Directory for dated snapshots (overrides output.history_dir)")
	rootCmd.Flags().StringVar(&run.title, "title", "", "Document title (overrides output.title)")
	_ = rootCmd.MarkFlagRequired("source")

	rootCmd.AddCommand(newSourcesCommand(global))
	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newVerifyCommand())
	rootCmd.AddCommand(newConfigCommand(global))

	return rootCmd
}
