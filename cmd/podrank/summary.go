package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"podrank/internal/pipeline"
	"podrank/pkg/utils"
)

// maxPathWidth caps the path column so the summary fits a terminal.
const maxPathWidth = 60

func writeSummary(w io.Writer, res *pipeline.Result) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)

	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.Style().Format.Footer = text.FormatDefault

	tw.SetTitle(fmt.Sprintf("%s · %d records · %s", res.Source, res.Records, res.UpdatedAt))
	tw.AppendHeader(table.Row{"Artifact", "Path", "Size"})

	var total uint64

	helper := utils.NewStringHelper()

	for _, a := range res.Artifacts {
		size := uint64(max(a.Size, 0))
		total += size
		tw.AppendRow(table.Row{a.Kind, helper.TruncateString(a.Path, maxPathWidth), humanize.Bytes(size)})
	}

	tw.AppendFooter(table.Row{"", "took " + res.Duration.Round(time.Millisecond).String(), humanize.Bytes(total)})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	tw.Render()

	_, err := fmt.Fprintf(w, "run %s\n", res.RunID)

	return err
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
