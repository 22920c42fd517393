package downloader

import "github.com/vrsandeep/comicdl/internal/models"

// Reporter receives job state changes and transfer progress from the
// dispatcher's workers. Implementations must be safe for concurrent use.
type Reporter interface {
	JobUpdated(models.ProgressUpdate)
	// TransferStarted is called when a direct download begins streaming.
	// total is -1 when the size is unknown.
	TransferStarted(job *models.DownloadJob, total int64) Transfer
}

// Transfer tracks the bytes of one streaming download.
type Transfer interface {
	Add(n int64)
	Finish(err error)
}

type nopReporter struct{}

func (nopReporter) JobUpdated(models.ProgressUpdate) {}

func (nopReporter) TransferStarted(*models.DownloadJob, int64) Transfer { return nopTransfer{} }

type nopTransfer struct{}

func (nopTransfer) Add(int64)    {}
func (nopTransfer) Finish(error) {}

// counter feeds written byte counts into a Transfer.
type counter struct{ t Transfer }

func (c counter) Write(p []byte) (int, error) {
	c.t.Add(int64(len(p)))
	return len(p), nil
}
