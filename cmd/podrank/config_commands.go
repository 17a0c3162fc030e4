package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"podrank/internal/config"
)

// defaultConfigPath is where 'config init' writes when --path is not given.
const defaultConfigPath = "configs/podrank.yaml"

func newConfigCommand(global *globalOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand(global))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = defaultConfigPath
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if err := sampleConfig().SaveConfig(target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)

			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination file (default "+defaultConfigPath+")")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")

	return cmd
}

func newConfigValidateCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration valid: %s\n", cfg)

			return nil
		},
	}
}

// sampleConfig is the default configuration plus one disabled example of
// every configurable source type.
func sampleConfig() *config.Config {
	cfg := config.Default()
	cfg.Sources = []config.SourceConfig{
		{Name: "local_fixture", Type: config.SourceTypeFile, File: "testdata/rank.json"},
		{Name: "remote_json", Type: config.SourceTypeJSON, URL: "https://example.com/rank.json"},
		{Name: "remote_page", Type: config.SourceTypeHTML, URL: "https://example.com/podcasts/top", Selector: "#rank"},
	}

	return cfg
}
