package mission

import "fmt"

// Status is the lifecycle state shared by missions and targets.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
	StatusCancelled  Status = "cancelled"
)

var knownStatuses = map[Status]struct{}{
	StatusPending:    {},
	StatusInProgress: {},
	StatusFinished:   {},
	StatusCancelled:  {},
}

// AllStatuses lists every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusFinished, StatusCancelled}
}

// IsValid returns true if the status is a recognized status.
func (s Status) IsValid() bool {
	_, ok := knownStatuses[s]
	return ok
}

// IsClosed returns true for statuses that accept no further work.
func (s Status) IsClosed() bool {
	return s == StatusFinished || s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return status, nil
}
