package repository

import (
	"context"
	"errors"
	"fmt"

	catDomain "github.com/spycat-agency/service-mission/internal/domain/cat"
	"gorm.io/gorm"
)

// CatModel is the GORM model for the cats table.
type CatModel struct {
	ID                int64  `gorm:"primaryKey"`
	Name              string `gorm:"type:varchar(255);not null"`
	YearsOfExperience int    `gorm:"not null"`
	Breed             string `gorm:"type:varchar(255);not null"`
	Salary            int    `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CatModel) TableName() string { return "cats" }

// GormCatRepository implements CatRepository using GORM.
type GormCatRepository struct {
	db *gorm.DB
}

// NewGormCatRepository creates a new GormCatRepository.
func NewGormCatRepository(db *gorm.DB) *GormCatRepository {
	return &GormCatRepository{db: db}
}

// Create inserts a cat and returns the stored row.
func (r *GormCatRepository) Create(ctx context.Context, c *catDomain.Cat) (*catDomain.Cat, error) {
	model := toCatModel(c)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to create cat: %w", err)
	}
	return toCatDomain(&model), nil
}

// FindByID retrieves a cat by its identifier.
func (r *GormCatRepository) FindByID(ctx context.Context, id int64) (*catDomain.Cat, error) {
	var model CatModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catDomain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cat by ID: %w", err)
	}
	return toCatDomain(&model), nil
}

// FindAll retrieves every cat ordered by ID.
func (r *GormCatRepository) FindAll(ctx context.Context) ([]*catDomain.Cat, error) {
	var models []CatModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list cats: %w", err)
	}
	cats := make([]*catDomain.Cat, len(models))
	for i := range models {
		cats[i] = toCatDomain(&models[i])
	}
	return cats, nil
}

// UpdateSalary sets a cat's salary.
func (r *GormCatRepository) UpdateSalary(ctx context.Context, id int64, salary int) error {
	result := r.db.WithContext(ctx).
		Model(&CatModel{}).
		Where("id = ?", id).
		Update("salary", salary)
	if result.Error != nil {
		return fmt.Errorf("failed to update cat salary: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catDomain.ErrNotFound
	}
	return nil
}

// Delete removes a cat that no mission references. A mission assigned
// between the check and the delete trips the foreign key instead.
func (r *GormCatRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&MissionModel{}).Where("assigned_cat = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("failed to count missions for cat: %w", err)
		}
		if refs > 0 {
			return catDomain.ErrInUse
		}

		result := tx.Where("id = ?", id).Delete(&CatModel{})
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
				return catDomain.ErrInUse
			}
			return fmt.Errorf("failed to delete cat: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return catDomain.ErrNotFound
		}
		return nil
	})
}

// --- Conversions ---

func toCatModel(c *catDomain.Cat) CatModel {
	return CatModel{
		ID:                c.ID(),
		Name:              c.Name(),
		YearsOfExperience: c.YearsOfExperience(),
		Breed:             c.Breed(),
		Salary:            c.Salary(),
	}
}

func toCatDomain(m *CatModel) *catDomain.Cat {
	return catDomain.Reconstruct(m.ID, m.Name, m.YearsOfExperience, m.Breed, m.Salary)
}
