package models

import (
	"errors"
	"strings"
	"time"
)

// DefaultResults is the number of releases shown when a query doesn't ask
// for a specific count.
const DefaultResults = 15

// SearchQuery describes one search against a listing site. Exactly one of
// Term or Tag is set. Nil bounds impose no constraint.
type SearchQuery struct {
	Term     string     `json:"term,omitempty"`
	Tag      string     `json:"tag,omitempty"`
	MinDate  *time.Time `json:"min_date,omitempty"`
	MinIssue *float64   `json:"min_issue,omitempty"`
	MaxIssue *float64   `json:"max_issue,omitempty"`
	Results  int        `json:"results"`
}

var (
	ErrNoSearchTerm   = errors.New("a search query or a tag is required")
	ErrTermAndTag     = errors.New("only one of a search query or a tag may be given")
	ErrInvalidResults = errors.New("result count must be positive")
	ErrInvertedIssues = errors.New("minimum issue is greater than maximum issue")
)

// Validate checks the query invariants and fills in the default result count.
func (q *SearchQuery) Validate() error {
	q.Term = strings.TrimSpace(q.Term)
	q.Tag = strings.TrimSpace(q.Tag)
	switch {
	case q.Term == "" && q.Tag == "":
		return ErrNoSearchTerm
	case q.Term != "" && q.Tag != "":
		return ErrTermAndTag
	}
	if q.Results == 0 {
		q.Results = DefaultResults
	}
	if q.Results < 0 {
		return ErrInvalidResults
	}
	if q.MinIssue != nil && q.MaxIssue != nil && *q.MinIssue > *q.MaxIssue {
		return ErrInvertedIssues
	}
	return nil
}

// Label is the human readable form of the query used in menus and logs.
func (q SearchQuery) Label() string {
	if q.Tag != "" {
		return "tag:" + q.Tag
	}
	return q.Term
}
