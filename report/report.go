// Package report renders the end-of-run per-track summary table.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/xeptore/yamusic/yandex/downloader"
)

func Render(w io.Writer, results []downloader.TrackResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Error", WidthMax: 60}, //nolint:exhaustruct
	})

	t.AppendHeader(table.Row{"#", "Artist", "Title", "Format", "Status", "Error"})

	var done, skipped, failed int
	for i, r := range results {
		var errText string
		if nil != r.Err {
			errText = r.Err.Error()
		}
		t.AppendRow(table.Row{i + 1, r.Artist, r.Title, r.Format, r.Outcome.String(), errText})

		switch r.Outcome {
		case downloader.OutcomeDone:
			done++
		case downloader.OutcomeSkipped:
			skipped++
		case downloader.OutcomeFailed:
			failed++
		}
	}

	t.AppendFooter(table.Row{
		"", "", "", "", "Total",
		fmt.Sprintf("done %d, skipped %d, failed %d", done, skipped, failed),
	})

	t.Render()
}
