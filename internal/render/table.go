// Package render turns a ranked batch into the published documents.
package render

import (
	"strconv"
	"strings"

	"podrank/internal/models"
)

// Document labels shared by the table and the page.
const (
	DefaultTitle  = "中文播客热榜(自动抓取)"
	UpdatedLabel  = "更新时间："
	LinkLabel     = "打开"
	tableHeader   = "| 排名 | 播客 | 平台/来源 | 链接 |"
	tableDivider  = "|---:|---|---|---|"
	fallbackTitle = "podrank"
)

// cellReplacer removes everything that could end a table cell or row early.
var cellReplacer = strings.NewReplacer("|", " ", "\r\n", " ", "\n", " ", "\r", " ")

// Table renders the batch as a Markdown document with one table row per
// record. Rank is the 1-based position in batch.
func Table(batch models.RankedBatch, title, updatedAt string) string {
	lines := make([]string, 0, len(batch)+7)
	lines = append(lines,
		"# "+headingTitle(title),
		"",
		UpdatedLabel+updatedAt,
		"",
		tableHeader,
		tableDivider,
	)

	for i, p := range batch {
		var sb strings.Builder

		sb.WriteString("| ")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(" | ")
		sb.WriteString(cell(p.Title))
		sb.WriteString(" | ")
		sb.WriteString(cell(p.Source))
		sb.WriteString(" | [")
		sb.WriteString(LinkLabel)
		sb.WriteString("](")
		sb.WriteString(p.URL)
		sb.WriteString(") |")

		lines = append(lines, sb.String())
	}

	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

func cell(s string) string {
	return cellReplacer.Replace(s)
}

// headingReplacer keeps the title on the heading line.
var headingReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func headingTitle(title string) string {
	title = strings.TrimSpace(headingReplacer.Replace(title))
	if title == "" {
		return fallbackTitle
	}

	return title
}
