package failure

import (
	"errors"
	"net/http"
)

const internalMessage = "internal server error"

// Failure is an error that carries the HTTP status it should be answered with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	InvalidPageParam  = New(http.StatusBadRequest, "invalid page parameter")
	InvalidLimitParam = New(http.StatusBadRequest, "invalid limit parameter")
	ForbiddenError    = New(http.StatusForbidden, "You don't have the required permissions")
)

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest wraps err as a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

// Conflict reports a request that collides with current state, such as a taken time slot
// or a decision on an already decided booking.
func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// InternalError wraps err as a 500. A nil err stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusInternalServerError, err.Error())
}

// GetCode returns the status carried by err, or 500 for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// Is reports whether err carries the given status.
func Is(err error, code int) bool {
	return err != nil && GetCode(err) == code
}

// Public returns the status and the message that may be shown to the caller.
// Server side errors are masked so driver and storage details stay in the logs.
func Public(err error) (int, string) {
	var fail *Failure
	if !errors.As(err, &fail) || fail.Code >= http.StatusInternalServerError {
		return GetCode(err), internalMessage
	}

	return fail.Code, fail.Message
}
