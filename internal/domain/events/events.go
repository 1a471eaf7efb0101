// Package events defines the topics, event types and payloads exchanged over
// the message bus.
package events

import "time"

const (
	TopicMissionEvents = "mission.events"
	TopicTargetReports = "target.reports"
)

const (
	MissionCreated     = "mission.created"
	MissionCancelled   = "mission.cancelled"
	MissionFinished    = "mission.finished"
	MissionCatAssigned = "mission.cat_assigned"
	CatHired           = "cat.hired"
	CatRetired         = "cat.retired"

	TargetStatusReported = "target.status_reported"
)

type MissionCreatedEvent struct {
	MissionID   int64     `json:"mission_id"`
	AssignedCat *int64    `json:"assigned_cat,omitempty"`
	Title       string    `json:"title"`
	TargetCount int       `json:"target_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type MissionCancelledEvent struct {
	MissionID  int64     `json:"mission_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type MissionFinishedEvent struct {
	MissionID    int64     `json:"mission_id"`
	LastTargetID int64     `json:"last_target_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type MissionCatAssignedEvent struct {
	MissionID  int64     `json:"mission_id"`
	CatID      int64     `json:"cat_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type CatHiredEvent struct {
	CatID      int64     `json:"cat_id"`
	Name       string    `json:"name"`
	Breed      string    `json:"breed"`
	OccurredAt time.Time `json:"occurred_at"`
}

type CatRetiredEvent struct {
	CatID      int64     `json:"cat_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TargetStatusReportedEvent is sent by field agents to move a target along.
type TargetStatusReportedEvent struct {
	TargetID   int64     `json:"target_id"`
	Status     string    `json:"status"`
	ReportedBy *int64    `json:"reported_by,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
