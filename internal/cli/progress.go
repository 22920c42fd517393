package cli

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"

	"github.com/vrsandeep/comicdl/internal/downloader"
	"github.com/vrsandeep/comicdl/internal/models"
)

// progressReporter draws one tracker per direct transfer and logs job
// state changes above the trackers.
type progressReporter struct {
	pw progress.Writer
}

func newProgressReporter(out io.Writer) batchReporter {
	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetAutoStop(false)
	pw.SetTrackerLength(20)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetStyle(progress.StyleDefault)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.Style().Visibility.ETA = true
	pw.Style().Visibility.Speed = true
	pw.Style().Visibility.Value = true
	return &progressReporter{pw: pw}
}

func (r *progressReporter) Start() {
	go r.pw.Render()
	for !r.pw.IsRenderInProgress() {
		time.Sleep(time.Millisecond)
	}
}

func (r *progressReporter) Stop() {
	r.pw.Stop()
	for r.pw.IsRenderInProgress() {
		time.Sleep(10 * time.Millisecond)
	}
}

func (r *progressReporter) JobUpdated(u models.ProgressUpdate) {
	if u.Status == models.JobRunning && !u.Done {
		return
	}
	r.pw.Log("[%d] %s: %s", u.Position, u.Title, u.Message)
}

func (r *progressReporter) TransferStarted(job *models.DownloadJob, total int64) downloader.Transfer {
	t := &progress.Tracker{
		Message: job.Release.Title,
		Total:   max(total, 0),
		Units:   progress.UnitsBytes,
	}
	r.pw.AppendTracker(t)
	return trackerTransfer{t}
}

type trackerTransfer struct{ t *progress.Tracker }

func (tt trackerTransfer) Add(n int64) { tt.t.Increment(n) }

func (tt trackerTransfer) Finish(err error) {
	if err != nil {
		tt.t.MarkAsErrored()
		return
	}
	tt.t.MarkAsDone()
}
