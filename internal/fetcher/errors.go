package fetcher

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies why a fetch failed.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindHTTPStatus
	KindTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http status"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// FetchError is returned once a request has failed for good, either because
// the failure isn't transient or because the retry budget ran out.
type FetchError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int // set when Kind is KindHTTPStatus
	Attempts   int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("fetch %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	default:
		if e.Err == nil {
			return fmt.Sprintf("fetch %s: %s error", e.URL, e.Kind)
		}
		return fmt.Sprintf("fetch %s: %s error: %v", e.URL, e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports whether another attempt could succeed: timeouts,
// network failures and 5xx responses are retried, 4xx responses are not.
func (e *FetchError) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindNetwork:
		return true
	case KindHTTPStatus:
		return e.StatusCode >= 500
	default:
		return false
	}
}

// IsStatus reports whether err is a FetchError for the given HTTP status.
func IsStatus(err error, code int) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindHTTPStatus && fe.StatusCode == code
}
