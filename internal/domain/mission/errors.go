package mission

import "github.com/spycat-agency/service-mission/internal/common/domain"

var (
	ErrNotFound        = domain.NewNotFoundError("Mission", "")
	ErrAssigned        = domain.NewConflictError("Mission is assigned to a cat, cannot be deleted")
	ErrAlreadyAssigned = domain.NewConflictError("Mission is already assigned to a cat")
	ErrNoTargets       = domain.NewValidationError("No targets provided")
	ErrTooManyTargets  = domain.NewValidationError("Too many targets provided")
	ErrCatMissing      = domain.NewValidationError("Assigned cat does not exist")

	ErrTargetNotFound = domain.NewNotFoundError("Target", "")
	ErrTargetClosed   = domain.NewConflictError("Target is finished or cancelled")
)
