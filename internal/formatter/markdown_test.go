package formatter

import (
	"strings"
	"testing"
	"time"

	"podrank/pkg/metadata"
)

func TestFormatMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "Basic table formatting",
			input: `
| Header 1 | Header 2 |
| --- | --- |
| val 1 | val 2 |
`,
			expected: `
| Header 1 | Header 2 |
| -------- | -------- |
| val 1    | val 2    |
`,
		},
		{
			name: "Fix excessive dashes",
			input: `
| Col A | Col B |
| ---------------------- | ---------------------------------- |
| A | B |
`,
			expected: `
| Col A | Col B |
| ----- | ----- |
| A     | B     |
`,
		},
		{
			name: "Mixed content",
			input: `
# Title

| H1 | H2 |
| -- | -- |
| v1 | v2 |

Text after table.
`,
			expected: `
# Title

| H1  | H2  |
| --- | --- |
| v1  | v2  |

Text after table.
`,
		},
		{
			name: "Rank table keeps right alignment",
			input: `
| 排名 | 播客 | 平台/来源 | 链接 |
|---:|---|---|---|
| 1 | 忽左忽右 | 小宇宙 | [打开](http://x) |
| 10 | Short | demo | [打开](http://y) |
`,
			// 排名 is 4 cells wide, 忽左忽右 8, 平台/来源 9, [打开](http://x) 16.
			expected: `
| 排名 | 播客     | 平台/来源 | 链接             |
| ---: | -------- | --------- | ---------------- |
|    1 | 忽左忽右 | 小宇宙    | [打开](http://x) |
|   10 | Short    | demo      | [打开](http://y) |
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatMarkdown(strings.TrimSpace(tt.input))
			if err != nil {
				t.Errorf("FormatMarkdown() error = %v", err)

				return
			}

			if strings.TrimSpace(got) != strings.TrimSpace(tt.expected) {
				t.Errorf("FormatMarkdown() = \n%v\nwant \n%v", got, tt.expected)
			}
		})
	}
}

func TestFormatMarkdown_KeepsTrailingNewline(t *testing.T) {
	got, err := FormatMarkdown("| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("FormatMarkdown() error = %v", err)
	}

	if !strings.HasSuffix(got, "|\n") {
		t.Errorf("FormatMarkdown() = %q, want trailing newline", got)
	}
}

func TestFormatMarkdown_ResignsMetadata(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	signed := metadata.Sign("| a | b |\n|---|---|\n| 1 | 2 |", metadata.Metadata{Validation: true, LastModify: at})

	got, err := FormatMarkdown(signed)
	if err != nil {
		t.Fatalf("FormatMarkdown() error = %v", err)
	}

	ok, err := metadata.Verify(got)
	if !ok || err != nil {
		t.Errorf("Verify(formatted) = %v, %v, want true, nil", ok, err)
	}

	meta, _ := metadata.Extract(got)
	if !meta.Validation || !meta.LastModify.Equal(at) {
		t.Errorf("metadata = %+v, want validation kept and LastModify %v", meta, at)
	}
}

func TestSplitRow(t *testing.T) {
	got := SplitRow("| 1 |  A Show | demo | [打开](http://x) |")

	want := []string{"1", "A Show", "demo", "[打开](http://x)"}
	if len(got) != len(want) {
		t.Fatalf("SplitRow() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitRow()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsSeparatorRow(t *testing.T) {
	tests := []struct {
		cells []string
		want  bool
	}{
		{cells: []string{"---:", "---", ":---:"}, want: true},
		{cells: []string{"1", "---"}, want: false},
		{cells: []string{":"}, want: false},
		{cells: nil, want: false},
	}

	for _, tt := range tests {
		if got := IsSeparatorRow(tt.cells); got != tt.want {
			t.Errorf("IsSeparatorRow(%v) = %v, want %v", tt.cells, got, tt.want)
		}
	}
}
