package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podrank/internal/crawler"
	"podrank/internal/source"
)

func newSourcesCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the sources that can be passed to --source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}

			registry, err := source.FromConfig(cfg, crawler.NewScraperWithConfig(cfg.Retry))
			if err != nil {
				return err
			}

			for _, name := range registry.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
}
