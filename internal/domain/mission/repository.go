package mission

import "context"

// TargetStatusChange describes the outcome of a target status update.
type TargetStatusChange struct {
	TargetID  int64
	MissionID int64
	Status    Status
	// MissionFinished is true when this update moved the mission to finished.
	MissionFinished bool
}

// MissionRepository defines the persistence contract for missions and their
// targets. Every method that touches more than one row is atomic.
type MissionRepository interface {
	// Create stores the mission and all of its targets in one transaction and
	// returns the generated mission ID.
	Create(ctx context.Context, m *Mission) (int64, error)

	// FindByID returns the mission with its targets, or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*Mission, error)

	// FindAll returns every mission with its targets.
	FindAll(ctx context.Context) ([]*Mission, error)

	// Cancel soft-deletes an unassigned mission by cancelling it and every
	// target. Returns ErrNotFound or ErrAssigned.
	Cancel(ctx context.Context, id int64) error

	// AssignCat sets the mission's cat if none is set yet. Returns
	// ErrNotFound or ErrAlreadyAssigned.
	AssignCat(ctx context.Context, missionID, catID int64) error

	// UpdateTargetStatus sets the target's status and marks the mission
	// finished when all of its targets are finished. A finished mission is
	// never moved back.
	UpdateTargetStatus(ctx context.Context, targetID int64, status Status) (*TargetStatusChange, error)

	// CountByStatus returns mission counts grouped by status.
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	// Create inserts the note unless its target is missing (ErrTargetNotFound)
	// or closed (ErrTargetClosed).
	Create(ctx context.Context, n *Note) (*Note, error)

	FindAll(ctx context.Context) ([]*Note, error)
}
