// Package filter applies a query's date and issue bounds to release records.
//
// Listing data is noisy: specials, omnibus editions and trades often have no
// parseable issue number or date. Such records always pass, since hiding a
// legitimate result is worse than showing an unfiltered one.
package filter

import (
	"iter"
	"time"

	"github.com/vrsandeep/comicdl/internal/models"
)

// Apply lazily yields the records of seq that satisfy q.
func Apply(seq iter.Seq[models.ReleaseRecord], q models.SearchQuery) iter.Seq[models.ReleaseRecord] {
	return func(yield func(models.ReleaseRecord) bool) {
		for r := range seq {
			if !Match(r, q) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Match reports whether r passes both the date and the issue predicate.
func Match(r models.ReleaseRecord, q models.SearchQuery) bool {
	return matchDate(r.Published, q.MinDate) && matchIssue(r.Issue, q.MinIssue, q.MaxIssue)
}

// matchDate compares calendar days so a release published late on the
// minimum date isn't dropped because of its time of day.
func matchDate(published, min *time.Time) bool {
	if published == nil || min == nil {
		return true
	}
	return !day(*published).Before(day(*min))
}

// matchIssue checks a range by its lower bound.
func matchIssue(issue *models.IssueRange, min, max *float64) bool {
	if issue == nil {
		return true
	}
	if min != nil && issue.Lo < *min {
		return false
	}
	if max != nil && issue.Lo > *max {
		return false
	}
	return true
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
