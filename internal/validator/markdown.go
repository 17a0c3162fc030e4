// Package validator provides validation utilities for rendered rank documents.
package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"podrank/internal/formatter"
	"podrank/pkg/metadata"
)

// rankColumns is the number of cells every rank table row must carry.
const rankColumns = 4

var linkCellPattern = regexp.MustCompile(`^\[[^\]]*\]\(.*\)$`)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Line    int
}

func (e ValidationError) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}

	return e.Message
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
}

// ValidationStats contains validation statistics.
type ValidationStats struct {
	TotalRows   int
	ValidRows   int
	InvalidRows int
}

// MarkdownValidator checks the framing of rank tables.
type MarkdownValidator struct {
	headerMarkers []string
}

// NewMarkdownValidator creates a new validator.
func NewMarkdownValidator() *MarkdownValidator {
	return &MarkdownValidator{headerMarkers: []string{"排名", "RANK"}}
}

// ValidateMarkdown validates every rank table in the document: each data
// row must have exactly four cells, ranks must run 1..n and the last cell
// must be a link.
func (v *MarkdownValidator) ValidateMarkdown(markdown string) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []string{},
	}

	_, clean := metadata.Extract(markdown)
	lines := strings.Split(clean, "\n")

	tableStarted := false
	tablesFound := 0
	expectedRank := 1

	for lineNum, line := range lines {
		line = strings.TrimSpace(line)

		if !strings.HasPrefix(line, "|") {
			tableStarted = false

			continue
		}

		cells := formatter.SplitRow(line)

		if formatter.IsSeparatorRow(cells) {
			continue
		}

		if !tableStarted {
			if v.isRankHeader(line) {
				tableStarted = true
				tablesFound++
				expectedRank = 1

				if len(cells) != rankColumns {
					result.addError(ValidationError{
						Line:    lineNum + 1,
						Field:   "header",
						Message: fmt.Sprintf("expected %d header columns, got %d", rankColumns, len(cells)),
					})
				}
			}

			continue
		}

		result.Stats.TotalRows++

		rowErrors := v.validateRow(cells, lineNum+1, expectedRank)
		if len(rowErrors) > 0 {
			result.Stats.InvalidRows++
			for _, e := range rowErrors {
				result.addError(e)
			}
		} else {
			result.Stats.ValidRows++
		}

		expectedRank++
	}

	if tablesFound == 0 {
		result.addError(ValidationError{Message: "no rank table found"})
	}

	return result
}

// ValidateIntegrity checks the integrity of the markdown content using the metadata block.
func (v *MarkdownValidator) ValidateIntegrity(content string) *ValidationResult {
	result := &ValidationResult{
		IsValid: true,
	}

	valid, err := metadata.Verify(content)
	if !valid {
		result.addError(ValidationError{
			Message: fmt.Sprintf("integrity check failed: %v", err),
		})
	}

	return result
}

func (v *MarkdownValidator) isRankHeader(line string) bool {
	upper := strings.ToUpper(line)
	for _, marker := range v.headerMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}

	return false
}

func (v *MarkdownValidator) validateRow(cells []string, lineNum, expectedRank int) []ValidationError {
	if len(cells) != rankColumns {
		return []ValidationError{{
			Line:    lineNum,
			Message: fmt.Sprintf("expected %d columns (rank, name, source, link), got %d", rankColumns, len(cells)),
		}}
	}

	var errs []ValidationError

	if rank, err := strconv.Atoi(cells[0]); err != nil || rank != expectedRank {
		errs = append(errs, ValidationError{
			Line:    lineNum,
			Field:   "rank",
			Value:   cells[0],
			Message: fmt.Sprintf("rank %q out of sequence, expected %d", cells[0], expectedRank),
		})
	}

	if !linkCellPattern.MatchString(cells[3]) {
		errs = append(errs, ValidationError{
			Line:    lineNum,
			Field:   "link",
			Value:   cells[3],
			Message: fmt.Sprintf("link cell %q is not a markdown link", cells[3]),
		})
	}

	return errs
}

func (r *ValidationResult) addError(e ValidationError) {
	r.IsValid = false
	r.Errors = append(r.Errors, e)
}
