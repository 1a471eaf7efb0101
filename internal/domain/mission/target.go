package mission

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spycat-agency/service-mission/internal/common/domain"
)

const (
	MaxTargetNameLength = 255
	MaxCountryLength    = 100
)

// Target is a sub-objective of a mission.
type Target struct {
	id        int64
	missionID int64
	status    Status
	name      string
	country   string
}

// NewTarget validates a target that will be created together with its mission.
func NewTarget(name, country string, status Status) (*Target, error) {
	name = strings.TrimSpace(name)
	country = strings.TrimSpace(country)
	if name == "" {
		return nil, domain.NewValidationError("target name is required")
	}
	if utf8.RuneCountInString(name) > MaxTargetNameLength {
		return nil, domain.NewValidationError(fmt.Sprintf("target name must be at most %d characters", MaxTargetNameLength))
	}
	if country == "" {
		return nil, domain.NewValidationError("target country is required")
	}
	if utf8.RuneCountInString(country) > MaxCountryLength {
		return nil, domain.NewValidationError(fmt.Sprintf("target country must be at most %d characters", MaxCountryLength))
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid status: %s", status))
	}
	return &Target{status: status, name: name, country: country}, nil
}

// ReconstructTarget rebuilds a Target from persistence data (no validation).
func ReconstructTarget(id, missionID int64, status Status, name, country string) *Target {
	return &Target{
		id:        id,
		missionID: missionID,
		status:    status,
		name:      name,
		country:   country,
	}
}

func (t *Target) ID() int64        { return t.id }
func (t *Target) MissionID() int64 { return t.missionID }
func (t *Target) Status() Status   { return t.status }
func (t *Target) Name() string     { return t.name }
func (t *Target) Country() string  { return t.country }

// AcceptsNotes returns false once the target is finished or cancelled.
func (t *Target) AcceptsNotes() bool {
	return !t.status.IsClosed()
}
