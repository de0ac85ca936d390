package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// ErrorResponse is a PostgREST error body. Code is a Postgres SQLSTATE such
// as "23505" or a PostgREST code such as "PGRST116".
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// Codes with a more precise meaning than their HTTP status.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeInvalidText         = "22P02"
	CodeSingularNoRows      = "PGRST116"
	CodeJWTExpired          = "PGRST301"
)

// ParseErrorResponse decodes body, returning nil when it is empty, not JSON
// or carries neither code nor message.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var e ErrorResponse
	if json.NewDecoder(body).Decode(&e) != nil || (e.Code == "" && e.Message == "") {
		return nil
	}

	return &e
}

// failure is what is known about a failed call while mapping it.
type failure struct {
	service   string
	operation string
	table     string
	status    int
	body      *ErrorResponse
}

func (f *failure) message() string {
	if f.body != nil && f.body.Message != "" {
		return f.body.Message
	}

	if msg, ok := statusMessages[f.status]; ok {
		return msg
	}

	return fmt.Sprintf("%s failed with status %d", f.operation, f.status)
}

var statusMessages = map[int]string{
	http.StatusNotFound:           "resource not found",
	http.StatusConflict:           "resource conflict",
	http.StatusBadRequest:         "invalid request",
	http.StatusForbidden:          "access denied",
	http.StatusServiceUnavailable: "service temporarily unavailable",
}

var byCode = map[string]func(*failure) error{
	CodeUniqueViolation: func(f *failure) error {
		return domain.NewConflictErrorWithDetails(f.table, "already exists", f.body.Details)
	},
	CodeForeignKeyViolation: func(f *failure) error { return domain.NewValidationError(f.table, f.body.Message) },
	CodeInvalidText:         func(f *failure) error { return domain.NewValidationError("", f.body.Message) },
	CodeSingularNoRows:      func(f *failure) error { return domain.NewNotFoundError(f.table, "") },
	CodeJWTExpired:          func(f *failure) error { return domain.NewUnauthenticatedError(f.operation) },
}

var byStatus = map[int]func(*failure) error{
	http.StatusNotFound:            func(f *failure) error { return domain.NewNotFoundError(f.table, "") },
	http.StatusConflict:            func(f *failure) error { return domain.NewConflictError(f.table, f.message()) },
	http.StatusBadRequest:          func(f *failure) error { return domain.NewValidationError("", f.message()) },
	http.StatusUnprocessableEntity: func(f *failure) error { return domain.NewValidationError("", f.message()) },
	http.StatusForbidden:           func(f *failure) error { return domain.NewForbiddenError(f.operation, f.message()) },
	http.StatusUnauthorized:        func(f *failure) error { return domain.NewUnauthenticatedError(f.operation) },
	http.StatusTooManyRequests: func(f *failure) error {
		return domain.NewUnavailableError(f.service, "rate limit exceeded")
	},
}

// MapHTTPError turns the outcome of a store call into a domain error, nil
// for a 2xx.
//
// clientErr wins when set: no usable response arrived. Otherwise the
// PostgREST code is consulted before the status; 5xx means unavailable and
// any other unmapped status is treated as a bad request.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation, table string) error {
	switch {
	case clientErr != nil:
		return unreachable(clientErr, serviceName, operation)
	case resp == nil:
		return domain.NewUnavailableError(serviceName, "no response received")
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	}

	f := &failure{service: serviceName, operation: operation, table: table, status: resp.StatusCode}
	if resp.Body != nil {
		f.body = ParseErrorResponse(resp.Body)
	}

	if f.body != nil {
		if mapErr, ok := byCode[f.body.Code]; ok {
			return mapErr(f)
		}
	}

	if mapErr, ok := byStatus[f.status]; ok {
		return mapErr(f)
	}

	if f.status >= http.StatusInternalServerError {
		return domain.NewUnavailableError(serviceName, f.message())
	}

	return domain.NewValidationError("", f.message())
}

func unreachable(err error, serviceName, operation string) error {
	var reason string
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		reason = "circuit breaker open during " + operation
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		reason = "max retries exceeded during " + operation
	default:
		reason = fmt.Sprintf("%s failed: %v", operation, err)
	}

	return domain.NewUnavailableError(serviceName, reason)
}
