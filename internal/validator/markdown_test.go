package validator

import (
	"strings"
	"testing"
	"time"

	"podrank/internal/models"
	"podrank/internal/render"
	"podrank/pkg/metadata"
)

func TestNewMarkdownValidator(t *testing.T) {
	v := NewMarkdownValidator()
	if v == nil {
		t.Fatal("NewMarkdownValidator returned nil")
	}
}

func TestValidateMarkdown_RenderedTable(t *testing.T) {
	batch := models.RankedBatch{
		{Title: "A|Show", Source: "de|mo", URL: "http://x"},
		{Title: "multi\nline", Source: "demo", URL: "http://y"},
		{Title: "", Source: "", URL: ""},
	}

	doc := render.Table(batch, render.DefaultTitle, "2024-03-01 08:00:00 CST")

	res := NewMarkdownValidator().ValidateMarkdown(doc)
	if !res.IsValid {
		t.Fatalf("ValidateMarkdown() invalid for rendered table: %v", res.Errors)
	}

	if res.Stats.TotalRows != 3 || res.Stats.ValidRows != 3 {
		t.Errorf("Stats = %+v, want 3 valid rows", res.Stats)
	}
}

func TestValidateMarkdown_EmptyTable(t *testing.T) {
	doc := render.Table(nil, "T", "stamp")

	res := NewMarkdownValidator().ValidateMarkdown(doc)
	if !res.IsValid {
		t.Errorf("ValidateMarkdown() invalid for empty table: %v", res.Errors)
	}

	if res.Stats.TotalRows != 0 {
		t.Errorf("TotalRows = %d, want 0", res.Stats.TotalRows)
	}
}

func TestValidateMarkdown_Errors(t *testing.T) {
	header := "# T\n\n| 排名 | 播客 | 平台/来源 | 链接 |\n|---:|---|---|---|\n"

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "Broken framing", doc: header + "| 1 | A | Show | demo | [打开](http://x) |\n", wantErr: "expected 4 columns"},
		{name: "Rank gap", doc: header + "| 1 | A | s | [打开](http://x) |\n| 3 | B | s | [打开](http://y) |\n", wantErr: "out of sequence"},
		{name: "Plain link", doc: header + "| 1 | A | s | http://x |\n", wantErr: "not a markdown link"},
		{name: "No table", doc: "# Nothing here\n", wantErr: "no rank table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewMarkdownValidator().ValidateMarkdown(tt.doc)
			if res.IsValid {
				t.Fatal("ValidateMarkdown() expected invalid result")
			}

			found := false
			for _, e := range res.Errors {
				if strings.Contains(e.String(), tt.wantErr) {
					found = true
				}
			}

			if !found {
				t.Errorf("ValidateMarkdown() errors = %v, want substring %q", res.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidateIntegrity(t *testing.T) {
	doc := render.Table(models.RankedBatch{{Title: "A", URL: "http://x"}}, "T", "stamp")
	signed := metadata.Sign(doc, metadata.Metadata{Validation: true, LastModify: time.Unix(0, 0)})

	v := NewMarkdownValidator()

	if res := v.ValidateIntegrity(signed); !res.IsValid {
		t.Errorf("ValidateIntegrity(signed) invalid: %v", res.Errors)
	}

	if res := v.ValidateIntegrity(doc); res.IsValid {
		t.Error("ValidateIntegrity(unsigned) expected invalid result")
	}

	if res := v.ValidateMarkdown(signed); !res.IsValid {
		t.Errorf("ValidateMarkdown(signed) invalid: %v", res.Errors)
	}
}
