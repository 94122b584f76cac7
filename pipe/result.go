package pipe

import "time"

// Status is an element's state within one flow pass.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Report holds the outcome of one flow pass.
type Report struct {
	System   string
	Duration time.Duration
	Elements map[string]ElementResult
}

// ElementResult holds the outcome of a single element execution.
type ElementResult struct {
	Name     string
	Status   Status
	Duration time.Duration
	Err      error
}
