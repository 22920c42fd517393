package models

// JobStatus is the lifecycle state of a DownloadJob.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// IsFinished reports whether the job reached a terminal state.
func (s JobStatus) IsFinished() bool {
	return s == JobSucceeded || s == JobFailed
}

// DownloadJob is one attempt to bring a selected release to local storage.
type DownloadJob struct {
	ID          string        `json:"id"`
	Release     ReleaseRecord `json:"release"`
	Link        *LinkRecord   `json:"link,omitempty"` // nil until the detail page is resolved
	Destination string        `json:"destination"`
	Status      JobStatus     `json:"status"`  // "pending", "running", "succeeded", "failed"
	Reason      string        `json:"reason"`  // failure reason when Status is failed
	Skipped     bool          `json:"skipped"` // an existing file already satisfied the job
	Pages       int           `json:"pages"`   // image count when the file is a comic archive
	Err         error         `json:"-"`
}
