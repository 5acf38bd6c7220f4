package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"edhrec-tracker/lib/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

type summaryRow struct {
	name  string
	value any
}

// renderSummary prints the outcome of a run followed by the process stats
// at the end of it.
func renderSummary(ctx context.Context, title string, elapsed time.Duration, rows []summaryRow) {
	t := newTable(os.Stdout)
	t.SetTitle(title)
	for _, r := range rows {
		t.AppendRow(table.Row{r.name, r.value})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"elapsed", elapsed.Round(time.Millisecond)})

	stats, err := telemetry.CollectPerfStats(ctx)
	if err != nil {
		slog.Debug("failed to collect perf stats", "err", err)
	} else {
		t.AppendRow(table.Row{"cpu", fmt.Sprintf("%.1f%%", stats.CPUPercent)})
		t.AppendRow(table.Row{"rss", fmt.Sprintf("%d MB", stats.RSSMb)})
	}
	t.Render()
}
