package repository

import (
	"context"
	"errors"
	"fmt"

	catDomain "github.com/spycat-agency/service-mission/internal/domain/cat"
	missionDomain "github.com/spycat-agency/service-mission/internal/domain/mission"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MissionModel is the GORM model for the missions table.
type MissionModel struct {
	ID          int64         `gorm:"primaryKey"`
	AssignedCat *int64        `gorm:"column:assigned_cat"`
	Status      string        `gorm:"type:status_type;not null"`
	Title       string        `gorm:"type:varchar(255);not null"`
	Targets     []TargetModel `gorm:"foreignKey:AssignedMission"`
}

// TableName returns the table name for the GORM model.
func (MissionModel) TableName() string { return "missions" }

// TargetModel is the GORM model for the targets table.
type TargetModel struct {
	ID              int64  `gorm:"primaryKey"`
	AssignedMission int64  `gorm:"column:assigned_mission;not null"`
	Status          string `gorm:"type:status_type;not null"`
	Name            string `gorm:"type:varchar(255);not null"`
	Country         string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for the GORM model.
func (TargetModel) TableName() string { return "targets" }

// GormMissionRepository is the GORM-based implementation of MissionRepository.
type GormMissionRepository struct {
	db *gorm.DB
}

// NewGormMissionRepository creates a new GormMissionRepository.
func NewGormMissionRepository(db *gorm.DB) *GormMissionRepository {
	return &GormMissionRepository{db: db}
}

// Create inserts the mission row and then each of its targets inside one
// transaction; a failed target insert rolls the mission back.
func (r *GormMissionRepository) Create(ctx context.Context, m *missionDomain.Mission) (int64, error) {
	model := toMissionModel(m)
	targets := model.Targets
	model.Targets = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return catDomain.ErrNotFound
			}
			return fmt.Errorf("failed to insert mission: %w", err)
		}
		for i := range targets {
			targets[i].AssignedMission = model.ID
			if err := tx.Create(&targets[i]).Error; err != nil {
				return fmt.Errorf("failed to insert target %q: %w", targets[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return model.ID, nil
}

// FindByID retrieves a mission and its targets.
func (r *GormMissionRepository) FindByID(ctx context.Context, id int64) (*missionDomain.Mission, error) {
	var model MissionModel
	if err := r.db.WithContext(ctx).
		Preload("Targets", orderByID).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, missionDomain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find mission by ID: %w", err)
	}
	return toMissionDomain(&model), nil
}

// FindAll retrieves every mission with its targets ordered by ID.
func (r *GormMissionRepository) FindAll(ctx context.Context) ([]*missionDomain.Mission, error) {
	var models []MissionModel
	if err := r.db.WithContext(ctx).
		Preload("Targets", orderByID).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	missions := make([]*missionDomain.Mission, len(models))
	for i := range models {
		missions[i] = toMissionDomain(&models[i])
	}
	return missions, nil
}

// Cancel soft-deletes a mission. Rows are kept; the mission and all of its
// targets move to cancelled.
func (r *GormMissionRepository) Cancel(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := lockMission(tx, id)
		if err != nil {
			return err
		}
		if toMissionDomain(model).IsAssigned() {
			return missionDomain.ErrAssigned
		}

		cancelled := string(missionDomain.StatusCancelled)
		if err := tx.Model(&TargetModel{}).
			Where("assigned_mission = ?", id).
			Update("status", cancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel targets: %w", err)
		}
		if err := tx.Model(&MissionModel{}).
			Where("id = ?", id).
			Update("status", cancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel mission: %w", err)
		}
		return nil
	})
}

// AssignCat sets assigned_cat only while it is still NULL, so two concurrent
// assignments cannot both succeed.
func (r *GormMissionRepository) AssignCat(ctx context.Context, missionID, catID int64) error {
	result := r.db.WithContext(ctx).
		Model(&MissionModel{}).
		Where("id = ? AND assigned_cat IS NULL", missionID).
		Update("assigned_cat", catID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return catDomain.ErrNotFound
		}
		return fmt.Errorf("failed to assign cat: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&MissionModel{}).Where("id = ?", missionID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check mission: %w", err)
	}
	if count == 0 {
		return missionDomain.ErrNotFound
	}
	return missionDomain.ErrAlreadyAssigned
}

// UpdateTargetStatus updates a target and recomputes its mission. The
// mission row is locked first so concurrent updates to sibling targets see
// each other's writes when deciding whether the mission is finished.
func (r *GormMissionRepository) UpdateTargetStatus(ctx context.Context, targetID int64, status missionDomain.Status) (*missionDomain.TargetStatusChange, error) {
	var change *missionDomain.TargetStatusChange
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target TargetModel
		if err := tx.Select("id", "assigned_mission").Where("id = ?", targetID).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return missionDomain.ErrTargetNotFound
			}
			return fmt.Errorf("failed to find target: %w", err)
		}
		if _, err := lockMission(tx, target.AssignedMission); err != nil {
			return err
		}

		if err := tx.Model(&TargetModel{}).
			Where("id = ?", targetID).
			Update("status", string(status)).Error; err != nil {
			return fmt.Errorf("failed to update target status: %w", err)
		}

		var siblings []TargetModel
		if err := tx.Where("assigned_mission = ?", target.AssignedMission).Find(&siblings).Error; err != nil {
			return fmt.Errorf("failed to load mission targets: %w", err)
		}

		change = &missionDomain.TargetStatusChange{
			TargetID:  targetID,
			MissionID: target.AssignedMission,
			Status:    status,
		}
		if !missionDomain.AllTargetsFinished(toTargetDomains(siblings)) {
			return nil
		}

		result := tx.Model(&MissionModel{}).
			Where("id = ? AND status <> ?", target.AssignedMission, string(missionDomain.StatusFinished)).
			Update("status", string(missionDomain.StatusFinished))
		if result.Error != nil {
			return fmt.Errorf("failed to finish mission: %w", result.Error)
		}
		change.MissionFinished = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

// CountByStatus returns mission counts grouped by status.
func (r *GormMissionRepository) CountByStatus(ctx context.Context) (map[missionDomain.Status]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&MissionModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[missionDomain.Status]int64, len(results))
	for _, sc := range results {
		counts[missionDomain.Status(sc.Status)] = sc.Count
	}
	return counts, nil
}

func lockMission(tx *gorm.DB, id int64) (*MissionModel, error) {
	var model MissionModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, missionDomain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock mission: %w", err)
	}
	return &model, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// --- Conversions ---

func toMissionModel(m *missionDomain.Mission) MissionModel {
	targets := make([]TargetModel, len(m.Targets()))
	for i, t := range m.Targets() {
		targets[i] = toTargetModel(t)
	}
	return MissionModel{
		ID:          m.ID(),
		AssignedCat: m.AssignedCat(),
		Status:      string(m.Status()),
		Title:       m.Title(),
		Targets:     targets,
	}
}

func toMissionDomain(m *MissionModel) *missionDomain.Mission {
	return missionDomain.Reconstruct(
		m.ID,
		m.AssignedCat,
		missionDomain.Status(m.Status),
		m.Title,
		toTargetDomains(m.Targets),
	)
}

func toTargetModel(t *missionDomain.Target) TargetModel {
	return TargetModel{
		ID:              t.ID(),
		AssignedMission: t.MissionID(),
		Status:          string(t.Status()),
		Name:            t.Name(),
		Country:         t.Country(),
	}
}

func toTargetDomain(m *TargetModel) *missionDomain.Target {
	return missionDomain.ReconstructTarget(m.ID, m.AssignedMission, missionDomain.Status(m.Status), m.Name, m.Country)
}

func toTargetDomains(models []TargetModel) []*missionDomain.Target {
	targets := make([]*missionDomain.Target, len(models))
	for i := range models {
		targets[i] = toTargetDomain(&models[i])
	}
	return targets
}
