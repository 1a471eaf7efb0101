package mission

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spycat-agency/service-mission/internal/common/domain"
)

const (
	MinTargets     = 1
	MaxTargets     = 3
	MaxTitleLength = 255
)

// Mission is the aggregate root for a unit of work: an optional cat and a
// fixed set of one to three targets.
type Mission struct {
	id          int64
	assignedCat *int64
	status      Status
	title       string
	targets     []*Target
}

// NewMission validates a mission that has not been stored yet. The target
// set is fixed from here on.
func NewMission(assignedCat *int64, status Status, title string, targets []*Target) (*Mission, error) {
	if assignedCat != nil && *assignedCat <= 0 {
		return nil, domain.NewValidationError("assigned_cat must be positive")
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid status: %s", status))
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return nil, domain.NewValidationError(fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
	}
	if len(targets) < MinTargets {
		return nil, ErrNoTargets
	}
	if len(targets) > MaxTargets {
		return nil, ErrTooManyTargets
	}

	return &Mission{
		assignedCat: assignedCat,
		status:      status,
		title:       title,
		targets:     targets,
	}, nil
}

// Reconstruct rebuilds a Mission from persistence data (no validation).
func Reconstruct(id int64, assignedCat *int64, status Status, title string, targets []*Target) *Mission {
	return &Mission{
		id:          id,
		assignedCat: assignedCat,
		status:      status,
		title:       title,
		targets:     targets,
	}
}

func (m *Mission) ID() int64           { return m.id }
func (m *Mission) AssignedCat() *int64 { return m.assignedCat }
func (m *Mission) Status() Status      { return m.status }
func (m *Mission) Title() string       { return m.title }
func (m *Mission) Targets() []*Target  { return m.targets }

// IsAssigned returns true once a cat has been assigned.
func (m *Mission) IsAssigned() bool {
	return m.assignedCat != nil
}

// AllTargetsFinished reports whether every target is finished. An empty set
// never counts as finished.
func AllTargetsFinished(targets []*Target) bool {
	if len(targets) == 0 {
		return false
	}
	for _, t := range targets {
		if t.Status() != StatusFinished {
			return false
		}
	}
	return true
}
