package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/vrsandeep/comicdl/internal/core"
	"github.com/vrsandeep/comicdl/internal/downloader"
	"github.com/vrsandeep/comicdl/internal/models"
	"github.com/vrsandeep/comicdl/internal/selection"
)

const selectionPrompt = "Enter numbers to download (e.g. 1,3), 'a' for all, 'n' for next page, or 'q' to quit"

// reporterFactory builds the progress display for one batch.
type reporterFactory func(out io.Writer) batchReporter

type batchReporter interface {
	downloader.Reporter
	Start()
	Stop()
}

// session runs one search, the selection menu and the resulting downloads.
type session struct {
	app      *core.App
	opts     sessionOptions
	prompt   *prompter
	out      io.Writer
	reporter reporterFactory
}

func (s *session) run(ctx context.Context) error {
	q := s.opts.Query
	if err := q.Validate(); err != nil {
		return err
	}
	log := s.app.Log

	fmt.Fprintf(s.out, "Scanning %s: %s...\n", s.app.Provider.GetInfo().Name, q.Label())
	rs, err := s.app.Paginator.Collect(ctx, q)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	log.Debug("search finished", zap.String("query", q.Label()), zap.Int("results", rs.Len()))
	if rs.Len() == 0 {
		fmt.Fprintf(s.out, "No results found for '%s'.\n", q.Label())
		return nil
	}

	var picked []models.ReleaseRecord
	if s.opts.Yes {
		renderResults(s.out, rs, q.Label())
		picked = rs.Records()
	} else {
		picked, err = s.choose(ctx, q, rs)
		if err != nil {
			return err
		}
	}
	if len(picked) == 0 {
		fmt.Fprintln(s.out, "Exiting without downloading.")
		return nil
	}

	reporter := s.reporter(s.out)
	d := s.app.Dispatcher(s.opts.OutputDir, downloader.WithReporter(reporter))
	reporter.Start()
	batch := d.Run(ctx, picked)
	reporter.Stop()

	renderSummary(s.out, batch)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !batch.OK() {
		return errDownloadsFailed
	}
	return nil
}

// choose shows the results menu until the user picks releases or quits.
// Quitting returns no releases.
func (s *session) choose(ctx context.Context, q models.SearchQuery, rs *models.ResultSet) ([]models.ReleaseRecord, error) {
	renderResults(s.out, rs, q.Label())
	for {
		line, err := s.prompt.Ask(selectionPrompt, "q")
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		sel, err := selection.Resolve(line, rs.Len())
		if err != nil {
			var verr *selection.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintln(s.out, verr.Error())
				continue
			}
			return nil, err
		}

		switch sel.Kind {
		case models.SelectQuit:
			return nil, nil
		case models.SelectNext:
			if !rs.HasMore() {
				fmt.Fprintln(s.out, "No more results.")
				continue
			}
			added, err := s.app.Paginator.More(ctx, q, rs, q.Results)
			if err != nil {
				return nil, err
			}
			if added == 0 {
				fmt.Fprintln(s.out, "No more results.")
				continue
			}
			renderResults(s.out, rs, q.Label())
		default:
			return sel.Pick(rs), nil
		}
	}
}
