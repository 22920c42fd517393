package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/vrsandeep/comicdl/internal/downloader"
	"github.com/vrsandeep/comicdl/internal/models"
)

const titleColumnWidth = 70

// renderResults prints the listing as a numbered table.
func renderResults(w io.Writer, rs *models.ResultSet, label string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Results for: %s", label)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignCenter, WidthMax: 4},
		{Number: 2, WidthMax: titleColumnWidth},
		{Number: 3, Align: text.AlignCenter},
		{Number: 4, Align: text.AlignCenter},
	})
	t.AppendHeader(table.Row{"No", "Comic Title", "Issue", "Date"})

	for i, r := range rs.Records() {
		issue, date := "", ""
		if r.Issue != nil {
			issue = r.Issue.String()
		}
		if r.Published != nil {
			date = r.Published.Format(dateLayout)
		}
		t.AppendRow(table.Row{i + 1, r.Title, issue, date})
	}

	more := ""
	if rs.HasMore() {
		more = "more available (n)"
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d results", rs.Len()), "", more})
	fmt.Fprintln(w)
	t.Render()
}

// renderSummary prints one row per job of a finished batch.
func renderSummary(w io.Writer, batch downloader.Batch) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignCenter, WidthMax: 4},
		{Number: 2, WidthMax: titleColumnWidth / 2},
		{Number: 4, WidthMax: titleColumnWidth},
	})
	t.AppendHeader(table.Row{"No", "Comic Title", "Status", "Details"})

	for i, job := range batch.Jobs {
		status, details := string(job.Status), job.Destination
		switch {
		case job.Status == models.JobFailed:
			details = job.Reason
		case job.Skipped:
			status = "skipped"
			details = "already downloaded: " + job.Destination
		case job.Status == models.JobPending:
			details = "not started"
		}
		t.AppendRow(table.Row{i + 1, job.Release.Title, status, details})
	}

	t.AppendFooter(table.Row{"", "Total",
		fmt.Sprintf("%d ok", batch.Count(models.JobSucceeded)),
		fmt.Sprintf("%d failed, %d not started", batch.Count(models.JobFailed), batch.Count(models.JobPending)),
	})
	fmt.Fprintln(w)
	t.Render()
}
