package models

import (
	"io"
	"iter"
)

// ProviderInfo contains static information about a provider.
type ProviderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Provider defines the contract every listing-site connector implements.
// Implementations only build addresses and parse markup; fetching is done
// by the caller so that retries and rate limits live in one place.
type Provider interface {
	GetInfo() ProviderInfo
	// SearchURL returns the address of the given 1-based result page.
	SearchURL(q SearchQuery, page int) string
	// ParseSearchPage yields the releases listed on one result page in
	// document order. A page without entries yields nothing.
	ParseSearchPage(r io.Reader, q SearchQuery) (iter.Seq[ReleaseRecord], error)
	// ParseDetailPage returns the supported download links on a release's
	// detail page.
	ParseDetailPage(r io.Reader) ([]LinkRecord, error)
}

// ParseError reports a document that could not be read as markup at all.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	if e.URL == "" {
		return "parse page: " + e.Err.Error()
	}
	return "parse " + e.URL + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
