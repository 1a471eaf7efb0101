package repository

import (
	"context"
	"errors"
	"fmt"

	missionDomain "github.com/spycat-agency/service-mission/internal/domain/mission"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NoteModel is the GORM model for the notes table.
type NoteModel struct {
	ID       int64  `gorm:"primaryKey"`
	TargetID int64  `gorm:"not null"`
	Message  string `gorm:"type:varchar(1000);not null"`
}

// TableName returns the table name for the GORM model.
func (NoteModel) TableName() string { return "notes" }

// GormNoteRepository implements NoteRepository using GORM.
type GormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GormNoteRepository.
func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

// Create inserts a note while holding a share lock on its target, so the
// target cannot be closed between the status check and the insert.
func (r *GormNoteRepository) Create(ctx context.Context, n *missionDomain.Note) (*missionDomain.Note, error) {
	model := toNoteModel(n)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target TargetModel
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Where("id = ?", n.TargetID()).
			First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return missionDomain.ErrTargetNotFound
			}
			return fmt.Errorf("failed to find target: %w", err)
		}
		if !toTargetDomain(&target).AcceptsNotes() {
			return missionDomain.ErrTargetClosed
		}

		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toNoteDomain(&model), nil
}

// FindAll retrieves every note ordered by ID.
func (r *GormNoteRepository) FindAll(ctx context.Context) ([]*missionDomain.Note, error) {
	var models []NoteModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	notes := make([]*missionDomain.Note, len(models))
	for i := range models {
		notes[i] = toNoteDomain(&models[i])
	}
	return notes, nil
}

func toNoteModel(n *missionDomain.Note) NoteModel {
	return NoteModel{
		ID:       n.ID(),
		TargetID: n.TargetID(),
		Message:  n.Message(),
	}
}

func toNoteDomain(m *NoteModel) *missionDomain.Note {
	return missionDomain.ReconstructNote(m.ID, m.TargetID, m.Message)
}
