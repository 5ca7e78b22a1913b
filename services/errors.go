package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of workflow failure. Controllers translate
// codes to HTTP statuses; services never import net/http response helpers.
type ErrorCode string

const (
	ErrCodeValidation     ErrorCode = "VALIDATION_FAILED"
	ErrCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden      ErrorCode = "FORBIDDEN"
	ErrCodeCourseMismatch ErrorCode = "COURSE_MISMATCH"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeDuplicate      ErrorCode = "DUPLICATE_ADMISSION"
	ErrCodeConfiguration  ErrorCode = "CONFIGURATION_MISSING"
	ErrCodeNotifyFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeInternal       ErrorCode = "INTERNAL"
)

// ServiceError is a coded error carried from services to controllers.
type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// HTTPStatus maps the code to the response status used by the API layer.
func (e *ServiceError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeValidation, ErrCodeConfiguration:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden, ErrCodeCourseMismatch:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newError(code ErrorCode, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

func wrapError(code ErrorCode, message string, err error) *ServiceError {
	return &ServiceError{Code: code, Message: message, Err: err}
}

// AsServiceError unwraps err into a *ServiceError when possible.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// CodeOf returns the error code for err, or ErrCodeInternal for plain errors.
func CodeOf(err error) ErrorCode {
	if se, ok := AsServiceError(err); ok {
		return se.Code
	}
	return ErrCodeInternal
}

// HTTPStatusOf returns the HTTP status for err, defaulting to 500.
func HTTPStatusOf(err error) int {
	if se, ok := AsServiceError(err); ok {
		return se.HTTPStatus()
	}
	return http.StatusInternalServerError
}
