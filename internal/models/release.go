package models

import (
	"fmt"
	"strconv"
	"time"
)

// IssueRange is the issue number (or span of numbers) parsed from a release
// title. A single issue has Lo == Hi.
type IssueRange struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

func (r IssueRange) String() string {
	if r.Lo == r.Hi {
		return "#" + formatIssue(r.Lo)
	}
	return fmt.Sprintf("#%s-%s", formatIssue(r.Lo), formatIssue(r.Hi))
}

func formatIssue(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// ReleaseRecord is one entry of a search listing. DetailURL identifies the
// release within a session; Issue and Published are nil when the listing
// didn't carry them.
type ReleaseRecord struct {
	Title     string      `json:"title"`
	Issue     *IssueRange `json:"issue,omitempty"`
	Published *time.Time  `json:"published,omitempty"`
	DetailURL string      `json:"detail_url"`
}

// ResultSet accumulates releases in listing order, ignoring any release
// whose detail URL has already been seen. Records cut off by Truncate are
// held back, still counted as seen, and can be brought back with Restore.
type ResultSet struct {
	records []ReleaseRecord
	held    []ReleaseRecord
	seen    map[string]struct{}
	// NextPage is the first listing page that hasn't been fetched yet.
	NextPage int
	// Exhausted is set once the site stopped returning new releases.
	Exhausted bool
}

func NewResultSet() *ResultSet {
	return &ResultSet{seen: make(map[string]struct{}), NextPage: 1}
}

// Add appends r unless its detail URL has been seen before. It reports
// whether the record was added.
func (rs *ResultSet) Add(r ReleaseRecord) bool {
	if r.DetailURL == "" {
		return false
	}
	if _, dup := rs.seen[r.DetailURL]; dup {
		return false
	}
	rs.seen[r.DetailURL] = struct{}{}
	rs.records = append(rs.records, r)
	return true
}

// Seen reports whether a release with the given detail URL has been
// encountered, whether it is listed or held back.
func (rs *ResultSet) Seen(detailURL string) bool {
	_, ok := rs.seen[detailURL]
	return ok
}

// Truncate keeps the first n records and holds back the rest.
func (rs *ResultSet) Truncate(n int) {
	if n < 0 || n >= len(rs.records) {
		return
	}
	extra := rs.records[n:]
	rs.held = append(append([]ReleaseRecord(nil), extra...), rs.held...)
	rs.records = rs.records[:n:n]
}

// Restore moves up to n held-back records back onto the end of the set and
// returns how many were moved.
func (rs *ResultSet) Restore(n int) int {
	if n <= 0 || len(rs.held) == 0 {
		return 0
	}
	n = min(n, len(rs.held))
	rs.records = append(rs.records, rs.held[:n]...)
	rs.held = rs.held[n:]
	return n
}

// HasMore reports whether more records could be listed, either from the
// held-back buffer or from further pages.
func (rs *ResultSet) HasMore() bool {
	return len(rs.held) > 0 || !rs.Exhausted
}

func (rs *ResultSet) Len() int { return len(rs.records) }

// At returns the record at the 1-based position i.
func (rs *ResultSet) At(i int) ReleaseRecord { return rs.records[i-1] }

// Records returns a copy of the listed records.
func (rs *ResultSet) Records() []ReleaseRecord {
	out := make([]ReleaseRecord, len(rs.records))
	copy(out, rs.records)
	return out
}
