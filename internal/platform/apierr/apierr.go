package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the typed error carried from the point of detection up to the
// response translator. Status and Code decide the HTTP mapping; Err is the
// wrapped cause and is never shown to clients for 5xx statuses.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(http.StatusBadRequest, "validation_error", fmt.Errorf(format, args...))
}

func Duplicate(format string, args ...any) *Error {
	return New(http.StatusBadRequest, "duplicate", fmt.Errorf(format, args...))
}

func Unauthenticated(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, "unauthenticated", fmt.Errorf(format, args...))
}

// InvalidCredentials always carries the same message so that unknown-email
// and wrong-password failures are indistinguishable to callers.
func InvalidCredentials() *Error {
	return New(http.StatusUnauthorized, "invalid_credentials", errors.New("invalid email or password"))
}

func Forbidden(format string, args ...any) *Error {
	return New(http.StatusForbidden, "forbidden", fmt.Errorf(format, args...))
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, "not_found", fmt.Errorf(format, args...))
}

func Upstream(err error) *Error {
	return New(http.StatusInternalServerError, "upstream_error", err)
}

func Storage(err error) *Error {
	return New(http.StatusServiceUnavailable, "storage_unavailable", err)
}

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsDuplicate reports whether err is the duplicate business error.
func IsDuplicate(err error) bool {
	if apiErr, ok := As(err); ok {
		return apiErr.Code == "duplicate"
	}
	return false
}

// IsNotFound reports whether err maps to a 404.
func IsNotFound(err error) bool {
	if apiErr, ok := As(err); ok {
		return apiErr.Status == http.StatusNotFound
	}
	return false
}
