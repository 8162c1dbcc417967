// ABOUTME: Maps service errors onto GraphQL error objects.
// ABOUTME: Validation messages pass through verbatim; store failures are masked.

package gql

import (
	"errors"

	"github.com/harper/todo/internal/service"
	"github.com/harper/todo/internal/validation"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL_SERVER_ERROR"
)

const (
	notFoundMessage = "Todo not found"
	internalMessage = "Internal server error"
)

// Error carries a client-visible message and an extensions map. graphql-go
// copies Extensions() into the formatted error.
type Error struct {
	Message    string
	Code       string
	Reason     string
	underlying error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.underlying
}

func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Code}
	if e.Reason != "" {
		ext["reason"] = e.Reason
	}
	return ext
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		return &Error{Message: verr.Message, Code: CodeValidation, Reason: string(verr.Reason), underlying: err}
	}
	if errors.Is(err, service.ErrNotFound) {
		return &Error{Message: notFoundMessage, Code: CodeNotFound, underlying: err}
	}
	return &Error{Message: internalMessage, Code: CodeInternal, underlying: err}
}
