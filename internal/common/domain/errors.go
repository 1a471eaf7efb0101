package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError so the transport layer can pick a status code.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
)

// DomainError is a business rule failure raised by the domain or persistence layer.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewValidationError reports malformed or out-of-range input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

// NewNotFoundError reports that a referenced entity does not exist.
func NewNotFoundError(entity, id string) *DomainError {
	if id == "" {
		return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", entity)}
	}
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewConflictError reports a violated state-transition rule.
func NewConflictError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

// KindOf returns the kind of the first DomainError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// IsNotFound reports whether err carries a not-found DomainError.
func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNotFound
}

// IsConflict reports whether err carries a conflict DomainError.
func IsConflict(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindConflict
}

// IsValidation reports whether err carries a validation DomainError.
func IsValidation(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindValidation
}
