package service

import (
	"errors"
	"fmt"
	"strings"

	"funil.app/crm/internal/pipeline"
	"funil.app/crm/internal/store"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrExpired          = errors.New("invitation has expired")
	ErrAlreadyProcessed = errors.New("invitation has already been processed")
	ErrEmailMismatch    = errors.New("authenticated email does not match invitation")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidStage     = errors.New("invalid stage")
	ErrInvalidInput     = errors.New("invalid input")
	ErrValidationFailed = errors.New("validation failed")
	ErrExternalService  = errors.New("external service error")
	ErrConflict         = errors.New("conflict")
	// ErrTriggerMismatch means an auto-generation task no longer applies
	// (lead left the trigger stage, campaign paused). It is never retried.
	ErrTriggerMismatch = errors.New("campaign trigger does not match lead")
)

// ValidationError carries field-level failures. errors.Is(err,
// ErrValidationFailed) holds for every ValidationError.
type ValidationError struct {
	Fields []pipeline.FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// storeErr maps store sentinels onto service errors and wraps everything
// else with op.
func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, store.ErrConflict):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
