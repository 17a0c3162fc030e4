package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"podrank/internal/validator"
	"podrank/pkg/metadata"
)

var errVerifyFailed = errors.New("verification failed")

func newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE...",
		Short: "Check the rank table framing and signature of rendered documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := validator.NewMarkdownValidator()
			failed := 0

			for _, path := range args {
				ok, err := verifyFile(cmd.OutOrStdout(), v, path)
				if err != nil {
					return err
				}

				if !ok {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files", errVerifyFailed, failed, len(args))
			}

			return nil
		},
	}
}

func verifyFile(w io.Writer, v *validator.MarkdownValidator, path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	result := v.ValidateMarkdown(string(content))

	if meta, _ := metadata.Extract(string(content)); meta != nil {
		integrity := v.ValidateIntegrity(string(content))
		result.Errors = append(result.Errors, integrity.Errors...)
		result.IsValid = result.IsValid && integrity.IsValid
	}

	if result.IsValid {
		fmt.Fprintf(w, "✅ %s: %d rows\n", path, result.Stats.TotalRows)

		return true, nil
	}

	fmt.Fprintf(w, "❌ %s\n", path)

	for _, e := range result.Errors {
		fmt.Fprintf(w, "   %s\n", e.String())
	}

	return false, nil
}
