package history

import "time"

// Status describes the lifecycle of a recorded rip run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run is a single rip attempt as stored in the history database.
type Run struct {
	ID           string
	DiscName     string
	MediaKind    string
	Device       string
	OutputDir    string
	Status       Status
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// Duration returns how long the run took, or how long it has been
// running when it has not finished yet.
func (r Run) Duration() time.Duration {
	if r.FinishedAt != nil {
		return r.FinishedAt.Sub(r.StartedAt)
	}
	return time.Since(r.StartedAt)
}
