// Package formatter provides markdown formatting utilities.
package formatter

import (
	"strings"
	"time"

	"podrank/pkg/metadata"

	"github.com/mattn/go-runewidth"
)

// FormatMarkdown takes a markdown document and pads every pipe table so
// columns line up by display width (CJK aware). A signature block, when
// present, is re-signed over the formatted content.
func FormatMarkdown(content string) (string, error) {
	meta, cleanContent := metadata.Extract(content)

	lines := strings.Split(cleanContent, "\n")

	var formattedLines []string

	var tableBuffer []string

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		// Simple heuristic: starts and ends with |
		if strings.HasPrefix(trimmedLine, "|") && strings.HasSuffix(trimmedLine, "|") {
			tableBuffer = append(tableBuffer, line)

			continue
		}

		if len(tableBuffer) > 0 {
			formattedLines = append(formattedLines, processTable(tableBuffer)...)
			tableBuffer = nil
		}

		formattedLines = append(formattedLines, line)
	}

	if len(tableBuffer) > 0 {
		formattedLines = append(formattedLines, processTable(tableBuffer)...)
	}

	formattedContent := strings.Join(formattedLines, "\n")

	if meta == nil {
		if strings.HasSuffix(content, "\n") {
			formattedContent += "\n"
		}

		return formattedContent, nil
	}

	signedAt := meta.LastModify
	if signedAt.IsZero() {
		signedAt = time.Now()
	}

	meta.LastModify = signedAt

	return metadata.Sign(formattedContent, *meta), nil
}

type alignment int

const (
	alignNone alignment = iota
	alignLeft
	alignRight
	alignCenter
)

// SplitRow splits a pipe table row into trimmed cells without the outer pipes.
func SplitRow(row string) []string {
	parts := strings.Split(strings.TrimSpace(row), "|")

	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}

	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}

	return cells
}

// IsSeparatorRow reports whether cells form a header separator such as |---:|---|.
func IsSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}

	for _, cell := range cells {
		trim := strings.ReplaceAll(cell, "-", "")
		trim = strings.ReplaceAll(trim, ":", "")
		trim = strings.ReplaceAll(trim, " ", "")

		if trim != "" || !strings.Contains(cell, "-") {
			return false
		}
	}

	return true
}

func parseAlignment(cell string) alignment {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")

	switch {
	case left && right:
		return alignCenter
	case right:
		return alignRight
	case left:
		return alignLeft
	default:
		return alignNone
	}
}

func separatorCell(align alignment, width int) string {
	switch align {
	case alignRight:
		return strings.Repeat("-", width-1) + ":"
	case alignLeft:
		return ":" + strings.Repeat("-", width-1)
	case alignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	default:
		return strings.Repeat("-", width)
	}
}

func processTable(rows []string) []string {
	// A header without a separator is not a table we can format.
	if len(rows) < 2 {
		return rows
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, SplitRow(row))
	}

	colCount := 0
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	separatorRowIdx := -1
	if IsSeparatorRow(table[1]) {
		separatorRowIdx = 1
	}

	aligns := make([]alignment, colCount)
	if separatorRowIdx >= 0 {
		for i, cell := range table[separatorRowIdx] {
			aligns[i] = parseAlignment(cell)
		}
	}

	colWidths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == separatorRowIdx {
			continue
		}

		for i := 0; i < len(row) && i < colCount; i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	// Separators need at least "---".
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(table))

	for i, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			sb.WriteString(" ")

			if i == separatorRowIdx {
				sb.WriteString(separatorCell(aligns[j], colWidths[j]))
				sb.WriteString(" |")

				continue
			}

			content := ""
			if j < len(row) {
				content = row[j]
			}

			padding := strings.Repeat(" ", colWidths[j]-runewidth.StringWidth(content))
			if aligns[j] == alignRight {
				sb.WriteString(padding)
				sb.WriteString(content)
			} else {
				sb.WriteString(content)
				sb.WriteString(padding)
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}
