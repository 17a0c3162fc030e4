package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"podrank/internal/models"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

type pageRow struct {
	Rank   int
	Title  string
	Source string
	URL    string
}

type pageData struct {
	Title        string
	UpdatedAt    string
	UpdatedLabel string
	LinkLabel    string
	Rows         []pageRow
}

// Page renders the batch as a self-contained HTML page with a client-side
// search box. Every row is present in the markup; the script only hides rows.
func Page(batch models.RankedBatch, title, updatedAt string) (string, error) {
	data := pageData{
		Title:        headingTitle(title),
		UpdatedAt:    updatedAt,
		UpdatedLabel: UpdatedLabel,
		LinkLabel:    LinkLabel,
		Rows:         make([]pageRow, len(batch)),
	}

	for i, p := range batch {
		data.Rows[i] = pageRow{
			Rank:   i + 1,
			Title:  p.Title,
			Source: p.Source,
			URL:    p.URL,
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}

	return buf.String(), nil
}
