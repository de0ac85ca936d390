package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// ContextKeyTraceID is the gin context key checked first by GetTraceID.
const ContextKeyTraceID = "trace_id"

// headerRequestID mirrors middleware.HeaderRequestID without importing it.
const headerRequestID = "X-Request-ID"

// domainCodes is checked in order; the first matching predicate wins.
var domainCodes = []struct {
	is   func(error) bool
	code string
}{
	{domain.IsNotFound, ErrorCodeNotFound},
	{domain.IsConflict, ErrorCodeConflict},
	{domain.IsValidation, ErrorCodeValidation},
	{domain.IsUnauthenticated, ErrorCodeUnauthorized},
	{domain.IsForbidden, ErrorCodeForbidden},
	{domain.IsCapabilityUnavailable, ErrorCodeCapability},
	{domain.IsUnavailable, ErrorCodeUnavailable},
}

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown and unavailable errors get generic messages so that internals do
// not leak.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	code := ErrorCodeInternal
	for _, dc := range domainCodes {
		if dc.is(err) {
			code = dc.code
			break
		}
	}

	var resp *ErrorResponse

	switch code {
	case ErrorCodeInternal:
		resp = NewErrorResponse(code, "an internal error occurred")

	case ErrorCodeUnavailable:
		resp = NewErrorResponse(code, "a dependency is temporarily unavailable")

	case ErrorCodeValidation:
		resp = NewErrorResponse(code, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{validationErr.Field: validationErr.Message}
		}

	default:
		resp = NewErrorResponse(code, err.Error())
	}

	return StatusForCode(code), resp
}

// GetTraceID returns the id used to correlate an error response with logs:
// an explicit context value, then the request ID header, then the active span.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyTraceID); ok {
		if id, ok := v.(string); ok {
			return id
		}

		return ""
	}

	if id := c.GetHeader(headerRequestID); id != "" {
		return id
	}

	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}

// HandleError writes the error envelope for err. Server-side failures are
// logged with the full error.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			"error", err.Error(),
			"status", status,
			"trace_id", resp.TraceID,
		)
	}

	c.JSON(status, resp)
}

// AbortWithError is HandleError for middleware: it also stops the chain.
func AbortWithError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	c.AbortWithStatusJSON(status, resp)
}

// BadRequest writes a 400 envelope for malformed input that never reached
// the domain layer.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, NewErrorResponse(ErrorCodeBadRequest, message).WithTraceID(GetTraceID(c)))
}

// HandleBindError writes field errors for validator failures and a plain
// bad request otherwise.
func HandleBindError(c *gin.Context, err error) {
	if IsValidationError(err) {
		resp := NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", ValidationErrors(err))
		c.JSON(http.StatusBadRequest, resp.WithTraceID(GetTraceID(c)))

		return
	}

	BadRequest(c, "malformed request body")
}
