package models

// ProgressUpdate is emitted whenever a download job changes state.
type ProgressUpdate struct {
	JobID    string    `json:"jobId"`
	Position int       `json:"position"` // 1-based position in the selection
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Status   JobStatus `json:"status"`
	Done     bool      `json:"done"`
}
