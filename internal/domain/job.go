package domain

import "time"

// JobState enumerates the video job lifecycle.
type JobState string

const (
	JobStatePolling  JobState = "polling"
	JobStateFetching JobState = "fetching"
	JobStateReady    JobState = "ready"
	JobStateFailed   JobState = "failed"
)

// Terminal reports whether the state has no outgoing transitions.
func (s JobState) Terminal() bool {
	return s == JobStateReady || s == JobStateFailed
}

// VideoJob tracks a single animation request from submission to its
// terminal state. Message carries the cosmetic progress text while the
// job is in flight; it is cleared on every exit path.
type VideoJob struct {
	ID        string
	State     JobState
	Prompt    string
	Aspect    string
	Message   string
	Error     string
	Artifact  *Artifact
	StartedAt time.Time
	UpdatedAt time.Time
}
