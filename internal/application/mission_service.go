package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spycat-agency/service-mission/internal/common/domain"
	"github.com/spycat-agency/service-mission/internal/common/kafka"
	catDomain "github.com/spycat-agency/service-mission/internal/domain/cat"
	"github.com/spycat-agency/service-mission/internal/domain/events"
	missionDomain "github.com/spycat-agency/service-mission/internal/domain/mission"
	"go.uber.org/zap"
)

// CreateTargetRequest describes one target of a new mission.
type CreateTargetRequest struct {
	Status  missionDomain.Status `json:"status" binding:"required,oneof=pending in_progress finished cancelled"`
	Name    string               `json:"name" binding:"required,min=1,max=255"`
	Country string               `json:"country" binding:"required,min=1,max=100"`
}

// CreateMissionRequest is the request DTO for creating a mission with its
// targets. The target count is enforced by the domain so that an empty or
// oversized list gets its dedicated error.
type CreateMissionRequest struct {
	AssignedCat *int64                `json:"assigned_cat" binding:"omitempty,gt=0"`
	Status      missionDomain.Status  `json:"status" binding:"required,oneof=pending in_progress finished cancelled"`
	Title       string                `json:"title" binding:"required,min=1,max=255"`
	Targets     []CreateTargetRequest `json:"targets" binding:"dive"`
}

// AssignCatRequest is the request DTO for assigning a cat to a mission.
type AssignCatRequest struct {
	CatID int64 `json:"cat_id" binding:"required,gt=0"`
}

// UpdateTargetStatusRequest is the request DTO for moving a target along.
type UpdateTargetStatusRequest struct {
	Status missionDomain.Status `json:"status" binding:"required,oneof=pending in_progress finished cancelled"`
}

// CreateMissionResult is returned after a mission is stored.
type CreateMissionResult struct {
	MissionID int64  `json:"mission_id"`
	Message   string `json:"message"`
}

// TargetDTO is the API response representation of a target.
type TargetDTO struct {
	ID              int64  `json:"id"`
	AssignedMission int64  `json:"assigned_mission"`
	Status          string `json:"status"`
	Name            string `json:"name"`
	Country         string `json:"country"`
}

// MissionDTO is the API response representation of a mission.
type MissionDTO struct {
	ID          int64       `json:"id"`
	AssignedCat *int64      `json:"assigned_cat"`
	Status      string      `json:"status"`
	Title       string      `json:"title"`
	Targets     []TargetDTO `json:"targets"`
}

// TargetStatusDTO reports the result of a target status update.
type TargetStatusDTO struct {
	TargetID        int64  `json:"target_id"`
	MissionID       int64  `json:"mission_id"`
	Status          string `json:"status"`
	MissionFinished bool   `json:"mission_finished"`
}

// MissionService is the application service orchestrating mission use cases.
type MissionService struct {
	missions missionDomain.MissionRepository
	cats     catDomain.CatRepository
	producer kafka.Publisher
	logger   *zap.Logger
}

// NewMissionService creates a new MissionService.
func NewMissionService(
	missions missionDomain.MissionRepository,
	cats catDomain.CatRepository,
	producer kafka.Publisher,
	logger *zap.Logger,
) *MissionService {
	return &MissionService{
		missions: missions,
		cats:     cats,
		producer: producer,
		logger:   logger,
	}
}

// CreateMission stores a mission together with its targets.
func (s *MissionService) CreateMission(ctx context.Context, req CreateMissionRequest) (*CreateMissionResult, error) {
	if req.AssignedCat != nil {
		if _, err := s.cats.FindByID(ctx, *req.AssignedCat); err != nil {
			if errors.Is(err, catDomain.ErrNotFound) {
				return nil, missionDomain.ErrCatMissing
			}
			return nil, err
		}
	}

	targets := make([]*missionDomain.Target, len(req.Targets))
	for i, t := range req.Targets {
		target, err := missionDomain.NewTarget(t.Name, t.Country, t.Status)
		if err != nil {
			return nil, err
		}
		targets[i] = target
	}

	m, err := missionDomain.NewMission(req.AssignedCat, req.Status, req.Title, targets)
	if err != nil {
		return nil, err
	}

	id, err := s.missions.Create(ctx, m)
	if err != nil {
		if errors.Is(err, catDomain.ErrNotFound) {
			return nil, missionDomain.ErrCatMissing
		}
		s.logger.Error("failed to create mission", zap.Error(err))
		return nil, err
	}

	s.logger.Info("mission created",
		zap.Int64("mission_id", id),
		zap.Int("targets", len(targets)),
	)
	publishEvent(ctx, s.producer, s.logger, events.TopicMissionEvents, events.MissionCreated, id, events.MissionCreatedEvent{
		MissionID:   id,
		AssignedCat: req.AssignedCat,
		Title:       m.Title(),
		TargetCount: len(targets),
		OccurredAt:  time.Now().UTC(),
	})

	return &CreateMissionResult{MissionID: id, Message: "Mission created successfully"}, nil
}

// GetMission returns a mission with its targets.
func (s *MissionService) GetMission(ctx context.Context, id int64) (*MissionDTO, error) {
	m, err := s.missions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toMissionDTO(m)
	return &result, nil
}

// ListMissions returns every mission with its targets.
func (s *MissionService) ListMissions(ctx context.Context) ([]MissionDTO, error) {
	missions, err := s.missions.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]MissionDTO, len(missions))
	for i, m := range missions {
		dtos[i] = toMissionDTO(m)
	}
	return dtos, nil
}

// DeleteMission cancels an unassigned mission and all of its targets.
func (s *MissionService) DeleteMission(ctx context.Context, id int64) error {
	if err := s.missions.Cancel(ctx, id); err != nil {
		if _, ok := domain.KindOf(err); !ok {
			s.logger.Error("failed to cancel mission", zap.Int64("mission_id", id), zap.Error(err))
		}
		return err
	}

	s.logger.Info("mission cancelled", zap.Int64("mission_id", id))
	publishEvent(ctx, s.producer, s.logger, events.TopicMissionEvents, events.MissionCancelled, id, events.MissionCancelledEvent{
		MissionID:  id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// AssignCat assigns an existing cat to a mission that has none yet.
func (s *MissionService) AssignCat(ctx context.Context, missionID, catID int64) error {
	if _, err := s.cats.FindByID(ctx, catID); err != nil {
		return err
	}

	if err := s.missions.AssignCat(ctx, missionID, catID); err != nil {
		if _, ok := domain.KindOf(err); !ok {
			s.logger.Error("failed to assign cat",
				zap.Int64("mission_id", missionID),
				zap.Int64("cat_id", catID),
				zap.Error(err),
			)
		}
		return err
	}

	s.logger.Info("cat assigned to mission",
		zap.Int64("mission_id", missionID),
		zap.Int64("cat_id", catID),
	)
	publishEvent(ctx, s.producer, s.logger, events.TopicMissionEvents, events.MissionCatAssigned, missionID, events.MissionCatAssignedEvent{
		MissionID:  missionID,
		CatID:      catID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// UpdateTargetStatus sets a target's status and finishes the mission once
// every target is finished.
func (s *MissionService) UpdateTargetStatus(ctx context.Context, targetID int64, status missionDomain.Status) (*TargetStatusDTO, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid status: %s", status))
	}

	change, err := s.missions.UpdateTargetStatus(ctx, targetID, status)
	if err != nil {
		if _, ok := domain.KindOf(err); !ok {
			s.logger.Error("failed to update target status", zap.Int64("target_id", targetID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("target status updated",
		zap.Int64("target_id", change.TargetID),
		zap.Int64("mission_id", change.MissionID),
		zap.String("status", change.Status.String()),
	)
	if change.MissionFinished {
		s.logger.Info("mission finished", zap.Int64("mission_id", change.MissionID))
		publishEvent(ctx, s.producer, s.logger, events.TopicMissionEvents, events.MissionFinished, change.MissionID, events.MissionFinishedEvent{
			MissionID:    change.MissionID,
			LastTargetID: change.TargetID,
			OccurredAt:   time.Now().UTC(),
		})
	}

	return &TargetStatusDTO{
		TargetID:        change.TargetID,
		MissionID:       change.MissionID,
		Status:          change.Status.String(),
		MissionFinished: change.MissionFinished,
	}, nil
}

// GetMissionStats returns mission counts for every status, including zeros.
func (s *MissionService) GetMissionStats(ctx context.Context) (map[string]int64, error) {
	counts, err := s.missions.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats := make(map[string]int64, len(missionDomain.AllStatuses()))
	for _, st := range missionDomain.AllStatuses() {
		stats[st.String()] = counts[st]
	}
	return stats, nil
}

func toMissionDTO(m *missionDomain.Mission) MissionDTO {
	targets := make([]TargetDTO, len(m.Targets()))
	for i, t := range m.Targets() {
		targets[i] = toTargetDTO(t)
	}
	return MissionDTO{
		ID:          m.ID(),
		AssignedCat: m.AssignedCat(),
		Status:      m.Status().String(),
		Title:       m.Title(),
		Targets:     targets,
	}
}

func toTargetDTO(t *missionDomain.Target) TargetDTO {
	return TargetDTO{
		ID:              t.ID(),
		AssignedMission: t.MissionID(),
		Status:          t.Status().String(),
		Name:            t.Name(),
		Country:         t.Country(),
	}
}
