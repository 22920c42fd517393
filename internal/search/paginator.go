// Package search walks a provider's result pages and accumulates the
// releases that pass the query's filters.
package search

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vrsandeep/comicdl/internal/filter"
	"github.com/vrsandeep/comicdl/internal/models"
)

// DefaultMaxPages bounds pagination for sites that never stop returning
// pages.
const DefaultMaxPages = 20

// Fetcher is the subset of fetcher.Fetcher the paginator needs.
type Fetcher interface {
	Fetch(ctx context.Context, address string) ([]byte, error)
}

// Paginator drives a provider across successive result pages. Pages are
// fetched one at a time and in order, which keeps deduplication simple.
type Paginator struct {
	fetcher  Fetcher
	provider models.Provider
	maxPages int
	log      *zap.Logger
}

func NewPaginator(f Fetcher, p models.Provider, maxPages int, log *zap.Logger) *Paginator {
	if maxPages < 1 {
		maxPages = DefaultMaxPages
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Paginator{fetcher: f, provider: p, maxPages: maxPages, log: log}
}

// Collect gathers up to q.Results releases. It stops early when a page adds
// nothing new or the page limit is hit. Failing to fetch the first page is
// an error; later failures end the search with what was found.
func (p *Paginator) Collect(ctx context.Context, q models.SearchQuery) (*models.ResultSet, error) {
	rs := models.NewResultSet()
	if err := p.fill(ctx, q, rs, q.Results); err != nil {
		return nil, err
	}
	return rs, nil
}

// More extends rs by up to n releases, first from records held back by an
// earlier truncation and then from the next unfetched pages. It returns the
// number of releases added.
func (p *Paginator) More(ctx context.Context, q models.SearchQuery, rs *models.ResultSet, n int) (int, error) {
	before := rs.Len()
	err := p.fill(ctx, q, rs, before+n)
	return rs.Len() - before, err
}

func (p *Paginator) fill(ctx context.Context, q models.SearchQuery, rs *models.ResultSet, target int) error {
	rs.Restore(target - rs.Len())

	for rs.Len() < target && !rs.Exhausted {
		if rs.NextPage > p.maxPages {
			p.log.Debug("page limit reached", zap.Int("max_pages", p.maxPages))
			rs.Exhausted = true
			break
		}
		page := rs.NextPage
		address := p.provider.SearchURL(q, page)
		p.log.Debug("opening page", zap.Int("page", page), zap.String("url", address))

		body, err := p.fetcher.Fetch(ctx, address)
		if err != nil {
			if page == 1 {
				return fmt.Errorf("search %q: %w", q.Label(), err)
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.log.Warn("stopping search after page error", zap.Int("page", page), zap.Error(err))
			rs.Exhausted = true
			break
		}
		rs.NextPage++

		added := p.addPage(body, address, q, rs)
		p.log.Debug("page parsed", zap.Int("page", page), zap.Int("new_records", added))
		if added == 0 {
			rs.Exhausted = true
		}
	}

	rs.Truncate(target)
	return nil
}

// addPage appends the page's matching, unseen releases to rs. An
// unreadable page counts as empty.
func (p *Paginator) addPage(body []byte, address string, q models.SearchQuery, rs *models.ResultSet) int {
	seq, err := p.provider.ParseSearchPage(bytes.NewReader(body), q)
	if err != nil {
		p.log.Warn("could not parse page", zap.String("url", address), zap.Error(err))
		return 0
	}
	added := 0
	for r := range filter.Apply(seq, q) {
		if rs.Add(r) {
			added++
		}
	}
	return added
}
