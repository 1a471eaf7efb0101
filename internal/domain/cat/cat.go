package cat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spycat-agency/service-mission/internal/common/domain"
)

const (
	MaxNameLength      = 255
	MaxBreedLength     = 100
	MaxYearsExperience = 50
)

// Cat is an agent that can be assigned to missions.
type Cat struct {
	id                int64
	name              string
	yearsOfExperience int
	breed             string
	salary            int
}

// NewCat validates the fields of a cat that has not been stored yet. The
// breed is normalized to title case; whether it is a recognized breed is
// checked elsewhere.
func NewCat(name string, yearsOfExperience int, breed string, salary int) (*Cat, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, domain.NewValidationError(fmt.Sprintf("name must be at most %d characters", MaxNameLength))
	}
	if yearsOfExperience < 0 || yearsOfExperience > MaxYearsExperience {
		return nil, domain.NewValidationError(fmt.Sprintf("years_of_experience must be between 0 and %d", MaxYearsExperience))
	}
	breed = NormalizeBreed(breed)
	if breed == "" {
		return nil, domain.NewValidationError("breed is required")
	}
	if utf8.RuneCountInString(breed) > MaxBreedLength {
		return nil, domain.NewValidationError(fmt.Sprintf("breed must be at most %d characters", MaxBreedLength))
	}
	if err := ValidateSalary(salary); err != nil {
		return nil, err
	}

	return &Cat{
		name:              name,
		yearsOfExperience: yearsOfExperience,
		breed:             breed,
		salary:            salary,
	}, nil
}

// Reconstruct rebuilds a Cat from persistence data (no validation).
func Reconstruct(id int64, name string, yearsOfExperience int, breed string, salary int) *Cat {
	return &Cat{
		id:                id,
		name:              name,
		yearsOfExperience: yearsOfExperience,
		breed:             breed,
		salary:            salary,
	}
}

// NormalizeBreed title-cases a breed name the way the breed catalogue spells
// it: "british shorthair" and "BRITISH SHORTHAIR" both become
// "British Shorthair".
func NormalizeBreed(breed string) string {
	return cases.Title(language.English).String(strings.TrimSpace(breed))
}

// ValidateSalary rejects non-positive salaries.
func ValidateSalary(salary int) error {
	if salary <= 0 {
		return domain.NewValidationError("salary must be positive")
	}
	return nil
}

func (c *Cat) ID() int64              { return c.id }
func (c *Cat) Name() string           { return c.name }
func (c *Cat) YearsOfExperience() int { return c.yearsOfExperience }
func (c *Cat) Breed() string          { return c.breed }
func (c *Cat) Salary() int            { return c.salary }
