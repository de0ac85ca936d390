// Package domain contains the QuoteVault entities, their rules and the
// error kinds the adapters translate into transport responses.
package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every typed error below unwraps to exactly one of them, so
// callers branch with errors.Is or the Is helpers.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
	ErrForbidden       = errors.New("forbidden")
	ErrUnavailable     = errors.New("unavailable")
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrCapabilityUnavailable covers a missing or denied platform
	// capability: sharing, the gallery, push delivery.
	ErrCapabilityUnavailable = errors.New("capability unavailable")
)

// NotFoundError names a missing quote, collection or other entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports a uniqueness or state conflict. Details carries the
// store's own description when there is one.
type ConflictError struct {
	Entity  string
	Reason  string
	Details string
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}

	return msg
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

func NewConflictErrorWithDetails(entity, reason, details string) error {
	return &ConflictError{Entity: entity, Reason: reason, Details: details}
}

// ValidationError rejects one input field. Field uses the JSON name so the
// HTTP layer can report it as-is.
type ValidationError struct {
	Field   string
	Message string

	// Value is the rejected input, when it is safe to echo.
	Value any
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}

	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

type ForbiddenError struct {
	Operation string
	Reason    string
}

func (e *ForbiddenError) Error() string {
	msg := fmt.Sprintf("operation %q forbidden", e.Operation)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

// UnavailableError reports a dependency (record store, cache, push sender)
// that could not be reached.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("service %q unavailable", e.Service)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// UnauthenticatedError is returned by user-scoped operations called without
// a signed-in user.
type UnauthenticatedError struct {
	Operation string
}

func (e *UnauthenticatedError) Error() string {
	if e.Operation == "" {
		return "not logged in"
	}

	return e.Operation + ": not logged in"
}

func (e *UnauthenticatedError) Unwrap() error { return ErrUnauthenticated }

func NewUnauthenticatedError(operation string) error {
	return &UnauthenticatedError{Operation: operation}
}

type CapabilityError struct {
	Capability string
	Reason     string
}

func (e *CapabilityError) Error() string {
	if e.Reason == "" {
		return e.Capability + " unavailable"
	}

	return fmt.Sprintf("%s unavailable: %s", e.Capability, e.Reason)
}

func (e *CapabilityError) Unwrap() error { return ErrCapabilityUnavailable }

func NewCapabilityError(capability, reason string) error {
	return &CapabilityError{Capability: capability, Reason: reason}
}

func IsNotFound(err error) bool              { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool              { return errors.Is(err, ErrConflict) }
func IsValidation(err error) bool            { return errors.Is(err, ErrValidation) }
func IsForbidden(err error) bool             { return errors.Is(err, ErrForbidden) }
func IsUnavailable(err error) bool           { return errors.Is(err, ErrUnavailable) }
func IsUnauthenticated(err error) bool       { return errors.Is(err, ErrUnauthenticated) }
func IsCapabilityUnavailable(err error) bool { return errors.Is(err, ErrCapabilityUnavailable) }
