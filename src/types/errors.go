package types

import "fmt"

// Error kinds returned by the lifecycle operations. Handlers map these to
// HTTP statuses; callers can branch on them with errors.As.

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type NotFoundError struct {
	Entity string
	Code   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s [%s] not found", e.Entity, e.Code)
}

type InvalidTransitionError struct {
	Entity string
	Code   string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s [%s] cannot move from %s to %s", e.Entity, e.Code, e.From, e.To)
}

type GenerationError struct {
	Kind     string
	Attempts int
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("could not generate a unique %s code after %d attempts", e.Kind, e.Attempts)
}

type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s unavailable: %s", e.Dependency, e.Err.Error())
}

func (e *DependencyError) Unwrap() error { return e.Err }
