package downloader

import (
	"errors"
	"fmt"
)

// Reasons a job can fail. Use errors.Is against a job's Err.
var (
	ErrNoLinkFound    = errors.New("no link found")
	ErrFetch          = errors.New("fetch failed")
	ErrWrite          = errors.New("write failed")
	ErrCorruptArchive = errors.New("corrupt archive")
	ErrExitStatus     = errors.New("external downloader failed")
	ErrLaunch         = errors.New("could not run external downloader")
)

// DownloadError records why a single release could not be downloaded.
type DownloadError struct {
	Title  string
	Reason error
	Err    error
}

func (e *DownloadError) Error() string {
	if e.Err == nil {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%v: %v", e.Reason, e.Err)
}

func (e *DownloadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Reason}
	}
	return []error{e.Reason, e.Err}
}

func failure(title string, reason, err error) *DownloadError {
	return &DownloadError{Title: title, Reason: reason, Err: err}
}
