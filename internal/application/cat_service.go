package application

import (
	"context"
	"fmt"
	"time"

	"github.com/spycat-agency/service-mission/internal/common/kafka"
	catDomain "github.com/spycat-agency/service-mission/internal/domain/cat"
	"github.com/spycat-agency/service-mission/internal/domain/events"
	"go.uber.org/zap"
)

// CreateCatRequest is the request DTO for hiring a cat.
type CreateCatRequest struct {
	Name              string `json:"name" binding:"required,min=1,max=255"`
	YearsOfExperience *int   `json:"years_of_experience" binding:"required,gte=0,lte=50"`
	Breed             string `json:"breed" binding:"required,min=1,max=100"`
	Salary            int    `json:"salary" binding:"required,gt=0"`
}

// UpdateSalaryRequest is the request DTO for changing a cat's salary.
type UpdateSalaryRequest struct {
	Salary int `json:"salary" binding:"required,gt=0"`
}

// CatDTO is the API response representation of a cat.
type CatDTO struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	YearsOfExperience int    `json:"years_of_experience"`
	Breed             string `json:"breed"`
	Salary            int    `json:"salary"`
}

// CatService implements use cases for managing cats.
type CatService struct {
	repo     catDomain.CatRepository
	breeds   catDomain.BreedValidator
	producer kafka.Publisher
	logger   *zap.Logger
}

// NewCatService creates a new CatService.
func NewCatService(
	repo catDomain.CatRepository,
	breeds catDomain.BreedValidator,
	producer kafka.Publisher,
	logger *zap.Logger,
) *CatService {
	return &CatService{
		repo:     repo,
		breeds:   breeds,
		producer: producer,
		logger:   logger,
	}
}

// CreateCat normalizes and validates the breed against the catalogue before
// storing the cat. An unreachable catalogue rejects the request.
func (s *CatService) CreateCat(ctx context.Context, req CreateCatRequest) (*CatDTO, error) {
	years := 0
	if req.YearsOfExperience != nil {
		years = *req.YearsOfExperience
	}
	c, err := catDomain.NewCat(req.Name, years, req.Breed, req.Salary)
	if err != nil {
		return nil, err
	}

	valid, err := s.breeds.IsValidBreed(ctx, c.Breed())
	if err != nil {
		s.logger.Error("breed validation unavailable",
			zap.String("breed", c.Breed()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to validate breed: %w", err)
	}
	if !valid {
		return nil, catDomain.ErrInvalidBreed
	}

	saved, err := s.repo.Create(ctx, c)
	if err != nil {
		s.logger.Error("failed to create cat", zap.Error(err))
		return nil, err
	}

	s.logger.Info("cat created",
		zap.Int64("cat_id", saved.ID()),
		zap.String("breed", saved.Breed()),
	)
	publishEvent(ctx, s.producer, s.logger, events.TopicMissionEvents, events.CatHired, saved.ID(), events.CatHiredEvent{
		CatID:      saved.ID(),
		Name:       saved.Name(),
		Breed:      saved.Breed(),
		OccurredAt: time.Now().UTC(),
	})

	result := toCatDTO(saved)
	return &result, nil
}

// GetCat returns a single cat.
func (s *CatService) GetCat(ctx context.Context, id int64) (*CatDTO, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toCatDTO(c)
	return &result, nil
}

// ListCats returns every cat.
func (s *CatService) ListCats(ctx context.Context) ([]CatDTO, error) {
	cats, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]CatDTO, len(cats))
	for i, c := range cats {
		dtos[i] = toCatDTO(c)
	}
	return dtos, nil
}

// UpdateSalary changes a cat's salary.
func (s *CatService) UpdateSalary(ctx context.Context, id int64, salary int) error {
	if err := catDomain.ValidateSalary(salary); err != nil {
		return err
	}
	if err := s.repo.UpdateSalary(ctx, id, salary); err != nil {
		return err
	}
	s.logger.Info("cat salary updated", zap.Int64("cat_id", id), zap.Int("salary", salary))
	return nil
}

// DeleteCat removes a cat no mission references.
func (s *CatService) DeleteCat(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("cat deleted", zap.Int64("cat_id", id))
	publishEvent(ctx, s.producer, s.logger, events.TopicMissionEvents, events.CatRetired, id, events.CatRetiredEvent{
		CatID:      id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func toCatDTO(c *catDomain.Cat) CatDTO {
	return CatDTO{
		ID:                c.ID(),
		Name:              c.Name(),
		YearsOfExperience: c.YearsOfExperience(),
		Breed:             c.Breed(),
		Salary:            c.Salary(),
	}
}
