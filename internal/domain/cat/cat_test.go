package cat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spycat-agency/service-mission/internal/common/domain"
)

func TestNormalizeBreed(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"persian", "Persian"},
		{"PERSIAN", "Persian"},
		{"british shorthair", "British Shorthair"},
		{"  maine coon ", "Maine Coon"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeBreed(tt.in), "NormalizeBreed(%q)", tt.in)
	}
}

func TestNewCat(t *testing.T) {
	c, err := NewCat("Jacinto", 3, "persian", 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), c.ID())
	assert.Equal(t, "Jacinto", c.Name())
	assert.Equal(t, 3, c.YearsOfExperience())
	assert.Equal(t, "Persian", c.Breed())
	assert.Equal(t, 1000, c.Salary())
}

func TestNewCat_Validation(t *testing.T) {
	tests := []struct {
		name   string
		cat    string
		years  int
		breed  string
		salary int
	}{
		{"empty name", "  ", 1, "Persian", 100},
		{"long name", strings.Repeat("a", MaxNameLength+1), 1, "Persian", 100},
		{"negative experience", "Tom", -1, "Persian", 100},
		{"too much experience", "Tom", MaxYearsExperience + 1, "Persian", 100},
		{"empty breed", "Tom", 1, " ", 100},
		{"long breed", "Tom", 1, strings.Repeat("b", MaxBreedLength+1), 100},
		{"zero salary", "Tom", 1, "Persian", 0},
		{"negative salary", "Tom", 1, "Persian", -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCat(tt.cat, tt.years, tt.breed, tt.salary)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestNewCat_ExperienceBounds(t *testing.T) {
	_, err := NewCat("Kitten", 0, "Persian", 1)
	assert.NoError(t, err)
	_, err = NewCat("Veteran", MaxYearsExperience, "Persian", 1)
	assert.NoError(t, err)
}

func TestSentinelKinds(t *testing.T) {
	assert.True(t, domain.IsNotFound(ErrNotFound))
	assert.Equal(t, "Cat not found", ErrNotFound.Error())
	assert.True(t, domain.IsConflict(ErrInUse))
	assert.True(t, domain.IsValidation(ErrInvalidBreed))
}
