package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"podrank/internal/formatter"
)

// errUnformatted is returned in dry-run mode when a file would change.
var errUnformatted = errors.New("files are not formatted")

func newFormatCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "format FILE...",
		Short: "Align the Markdown tables of rendered documents",
		Long: "format pads every Markdown table by display width so CJK text lines up.\n" +
			"Without --write it only reports which files would change and exits non-zero if any would.\n" +
			"Signed documents are re-signed after formatting.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			changed := 0

			for _, path := range args {
				wasChanged, err := formatFile(path, write)
				if err != nil {
					return err
				}

				if !wasChanged {
					continue
				}

				changed++

				if write {
					fmt.Fprintf(out, "✅ Formatted: %s\n", path)
				} else {
					fmt.Fprintf(out, "📝 Would format: %s\n", path)
				}
			}

			if changed > 0 && !write {
				return fmt.Errorf("%w: %d of %d (run with --write to apply)", errUnformatted, changed, len(args))
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write changes to the files instead of reporting them")

	return cmd
}

func formatFile(path string, write bool) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	formatted, err := formatter.FormatMarkdown(string(content))
	if err != nil {
		return false, fmt.Errorf("failed to format %s: %w", path, err)
	}

	if formatted == string(content) {
		return false, nil
	}

	if write {
		if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
			return false, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return true, nil
}
