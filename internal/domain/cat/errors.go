package cat

import "github.com/spycat-agency/service-mission/internal/common/domain"

var (
	ErrNotFound     = domain.NewNotFoundError("Cat", "")
	ErrInUse        = domain.NewConflictError("Cat is assigned to a mission")
	ErrInvalidBreed = domain.NewValidationError("Invalid breed")
)
