// Package downloader resolves each selected release to a download link and
// brings the file to the output directory, either by streaming it directly
// or by handing the link to an external file-locker client.
package downloader

import (
	"bytes"
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vrsandeep/comicdl/internal/models"
	"github.com/vrsandeep/comicdl/internal/util"
)

const (
	DefaultWorkers = 3
	MaxWorkers     = 4
)

// Fetcher is the subset of fetcher.Fetcher the dispatcher needs.
type Fetcher interface {
	Fetch(ctx context.Context, address string) ([]byte, error)
	Open(ctx context.Context, address string) (*http.Response, error)
}

// Options configures a Dispatcher.
type Options struct {
	OutputDir string
	Workers   int
	Locker    LockerOptions
}

// Dispatcher runs a batch of downloads on a bounded pool of workers.
type Dispatcher struct {
	fetcher  Fetcher
	provider models.Provider
	opts     Options
	runner   Runner
	reporter Reporter
	log      *zap.Logger
	stems    stemLocks
}

// stemLocks serializes jobs that would write the same file name.
type stemLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (s *stemLocks) lock(stem string) (unlock func()) {
	s.mu.Lock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	m, ok := s.locks[stem]
	if !ok {
		m = &sync.Mutex{}
		s.locks[stem] = m
	}
	s.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithRunner replaces the runner used for file-locker links.
func WithRunner(r Runner) Option { return func(d *Dispatcher) { d.runner = r } }

// WithReporter attaches a reporter for job and transfer progress.
func WithReporter(r Reporter) Option { return func(d *Dispatcher) { d.reporter = r } }

func NewDispatcher(f Fetcher, p models.Provider, opts Options, log *zap.Logger, options ...Option) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	opts.Workers = max(1, min(opts.Workers, MaxWorkers))
	if opts.Locker.Command == "" {
		opts.Locker = DefaultLockerOptions()
	}
	d := &Dispatcher{
		fetcher:  f,
		provider: p,
		opts:     opts,
		runner:   ExecRunner{Log: log},
		reporter: nopReporter{},
		log:      log,
	}
	for _, o := range options {
		o(d)
	}
	return d
}

// Batch holds one job per release, in selection order.
type Batch struct {
	Jobs []*models.DownloadJob
}

// OK is true when no attempted job failed. Jobs left pending by a
// cancellation don't count as failures.
func (b Batch) OK() bool {
	return b.Count(models.JobFailed) == 0
}

// Count returns how many jobs are in status s.
func (b Batch) Count(s models.JobStatus) int {
	n := 0
	for _, j := range b.Jobs {
		if j.Status == s {
			n++
		}
	}
	return n
}

// Run downloads releases and returns once every started job has finished.
// A failing job never stops the others. Cancelling ctx stops new jobs from
// starting; jobs already running are allowed to complete so no half
// written files are left behind.
func (d *Dispatcher) Run(ctx context.Context, releases []models.ReleaseRecord) Batch {
	batch := Batch{Jobs: make([]*models.DownloadJob, len(releases))}
	for i, r := range releases {
		batch.Jobs[i] = &models.DownloadJob{
			ID:          uuid.NewString(),
			Release:     r,
			Destination: d.opts.OutputDir,
			Status:      models.JobPending,
		}
	}
	if len(releases) == 0 {
		return batch
	}

	if err := util.EnsureDir(d.opts.OutputDir); err != nil {
		for i, job := range batch.Jobs {
			d.finish(i+1, job, failure(job.Release.Title, ErrWrite, err))
		}
		return batch
	}

	inFlight := context.WithoutCancel(ctx)
	work := make(chan int)
	var wg sync.WaitGroup
	for range min(d.opts.Workers, len(releases)) {
		wg.Go(func() {
			for i := range work {
				d.process(inFlight, i+1, batch.Jobs[i])
			}
		})
	}

dispatch:
	for i := range batch.Jobs {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case work <- i:
		}
	}
	close(work)
	wg.Wait()

	if ctx.Err() != nil {
		if n := batch.Count(models.JobPending); n > 0 {
			d.log.Info("batch cancelled", zap.Int("not_started", n))
		}
	}
	return batch
}

func (d *Dispatcher) process(ctx context.Context, pos int, job *models.DownloadJob) {
	job.Status = models.JobRunning
	d.notify(pos, job, "resolving download link")
	log := d.log.With(zap.String("job", job.ID), zap.String("title", job.Release.Title))

	body, err := d.fetcher.Fetch(ctx, job.Release.DetailURL)
	if err != nil {
		d.finish(pos, job, failure(job.Release.Title, ErrFetch, err))
		return
	}
	links, err := d.provider.ParseDetailPage(bytes.NewReader(body))
	if err != nil {
		log.Debug("detail page unreadable", zap.Error(err))
	}
	link, ok := models.PreferredLink(links)
	if !ok {
		d.finish(pos, job, failure(job.Release.Title, ErrNoLinkFound, nil))
		return
	}
	job.Link = &link
	log.Debug("link chosen", zap.String("transport", string(link.Transport)), zap.String("url", link.URL))

	switch link.Transport {
	case models.TransportDirect:
		d.notify(pos, job, "downloading")
		err = d.downloadDirect(ctx, job)
	case models.TransportMediafire:
		d.notify(pos, job, "handing off to "+d.opts.Locker.Command)
		err = d.downloadLocker(ctx, job)
	}
	d.finish(pos, job, err)
}

func (d *Dispatcher) finish(pos int, job *models.DownloadJob, err error) {
	if err != nil {
		job.Status = models.JobFailed
		job.Err = err
		job.Reason = err.Error()
		d.log.Warn("download failed", zap.String("title", job.Release.Title), zap.Error(err))
		d.notify(pos, job, job.Reason)
		return
	}
	job.Status = models.JobSucceeded
	msg := "saved to " + job.Destination
	if job.Skipped {
		msg = "already downloaded"
	}
	d.log.Info("download finished", zap.String("title", job.Release.Title), zap.String("destination", job.Destination), zap.Bool("skipped", job.Skipped))
	d.notify(pos, job, msg)
}

func (d *Dispatcher) notify(pos int, job *models.DownloadJob, msg string) {
	d.reporter.JobUpdated(models.ProgressUpdate{
		JobID:    job.ID,
		Position: pos,
		Title:    job.Release.Title,
		Message:  msg,
		Status:   job.Status,
		Done:     job.Status.IsFinished(),
	})
}
