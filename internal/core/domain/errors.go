package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable indicates the persistent store cannot be opened
	// or accessed. Every store operation fails with it until access returns.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrValidation indicates caller-supplied data failed a precondition.
	// No partition is mutated.
	ErrValidation = errors.New("validation failed")

	// ErrCycle indicates a re-parent would make a topic its own ancestor.
	ErrCycle = errors.New("topic cycle")

	// ErrHasChildren indicates a topic deletion was refused because the
	// topic still has children.
	ErrHasChildren = errors.New("topic has children")

	// ErrUnsupportedFormat indicates an unknown backup format.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ValidationError describes which field failed and why.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

// Is allows errors.Is() to match against ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// CycleError is returned when moving TopicID under ParentID would create
// a cycle.
type CycleError struct {
	TopicID  string
	ParentID string
}

func (e *CycleError) Error() string {
	if e.TopicID == e.ParentID {
		return fmt.Sprintf("%s: topic %s cannot be its own parent", ErrCycle, e.TopicID)
	}
	return fmt.Sprintf("%s: cannot move topic %s under its descendant %s", ErrCycle, e.TopicID, e.ParentID)
}

// Is allows errors.Is() to match against ErrCycle.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// HasChildrenError is returned when deleting a topic that has children.
type HasChildrenError struct {
	TopicID       string
	ChildrenCount int
}

func (e *HasChildrenError) Error() string {
	return fmt.Sprintf("%s: topic %s has %d child topic(s); move or delete them first",
		ErrHasChildren, e.TopicID, e.ChildrenCount)
}

// Is allows errors.Is() to match against ErrHasChildren.
func (e *HasChildrenError) Is(target error) bool {
	return target == ErrHasChildren
}
