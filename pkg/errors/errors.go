package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeDuplicate    = "DUPLICATE"
	CodeInternal     = "INTERNAL_ERROR"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInvalidInput = "INVALID_INPUT"
	CodeMediaType    = "UNSUPPORTED_MEDIA_TYPE"
)

// AppError is an error that knows how it is rendered to the client. Err is
// logged but never written out.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error

	plainText bool
}

// ErrorResponse is the JSON body written for non plain-text errors.
type ErrorResponse struct {
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

// IsPlainText reports whether the message is written as a bare text/plain
// body instead of an ErrorResponse.
func (e *AppError) IsPlainText() bool {
	return e.plainText
}

func (e *AppError) Response() ErrorResponse {
	return ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
}

func newError(code string, status int, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	e := newError(CodeNotFound, http.StatusNotFound, resource+" not found")
	e.Details = map[string]any{"resource": resource, "id": id}
	return e
}

func Validation(message string, details map[string]any) *AppError {
	e := newError(CodeValidation, http.StatusUnprocessableEntity, message)
	e.Details = details
	return e
}

func InvalidInput(message string) *AppError {
	return newError(CodeInvalidInput, http.StatusBadRequest, message)
}

func UnsupportedMediaType(message string) *AppError {
	return newError(CodeMediaType, http.StatusUnsupportedMediaType, message)
}

func Unauthorized(message string) *AppError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return newError(CodeForbidden, http.StatusForbidden, message)
}

// Duplicate is a 400 with a plain-text body; existing booking clients show
// the text as is.
func Duplicate(message string) *AppError {
	e := newError(CodeDuplicate, http.StatusBadRequest, message)
	e.plainText = true
	return e
}

func Internal(message string, err error) *AppError {
	e := newError(CodeInternal, http.StatusInternalServerError, message)
	e.Err = err
	return e
}

func Unavailable(service string) *AppError {
	return newError(CodeUnavailable, http.StatusServiceUnavailable, service+" is temporarily unavailable")
}

// AsAppError unwraps err to an AppError. Anything else becomes an opaque 500
// that keeps err as its cause.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
