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

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Pipeline Errors.

	// ErrNoSelection indicates there is no active selection to annotate.
	// It is informational: the pipeline does nothing.
	ErrNoSelection = errors.New("no selection")

	// ErrEmptyResult indicates the annotator recognised no entities.
	// It is informational and surfaced to the user, never a crash.
	ErrEmptyResult = errors.New("no entities recognised")

	// ErrService indicates a transport or parse failure in the annotator.
	// Service errors are surfaced and never retried automatically.
	ErrService = errors.New("annotation service error")

	// ErrReconciliationMiss indicates a normalised surface form could not be
	// relocated in the original text. It is recovered locally.
	ErrReconciliationMiss = errors.New("surface form not found in original text")

	// ErrUnclassified indicates the classifier could not assign a name type.
	// Acceptance falls back to the untyped check.
	ErrUnclassified = errors.New("annotation not classified")
)

// ServiceError wraps a failure reported by an Annotator.
type ServiceError struct {
	// Endpoint is the annotator endpoint that was called, if known.
	Endpoint string

	// Err is the underlying failure.
	Err error
}

func (e *ServiceError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("annotation service %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("annotation service: %v", e.Err)
}

// Unwrap exposes both the sentinel and the underlying error to errors.Is.
func (e *ServiceError) Unwrap() []error {
	return []error{ErrService, e.Err}
}

// NewServiceError wraps err as a ServiceError unless it already is one.
func NewServiceError(endpoint string, err error) error {
	if err == nil {
		return nil
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	return &ServiceError{Endpoint: endpoint, Err: err}
}
