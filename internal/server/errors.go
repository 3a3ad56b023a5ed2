package server

import (
	"errors"
	"fmt"
	"net/http"
)

// Messages returned for rejected requests.
const (
	MsgJobTitleRequired = "Job title required."
	MsgRolesRequired    = "Both roles are required."
	MsgInvalidBody      = "Invalid request body."
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrBadRequest indicates a request body that could not be decoded
type ErrBadRequest struct {
	Cause error
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("bad request: %v", e.Cause)
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// ErrPanic wraps a value recovered from a panicking handler
type ErrPanic struct {
	Value any
}

func (e *ErrPanic) Error() string {
	return fmt.Sprint(e.Value)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var badRequestErr *ErrBadRequest
	switch {
	case errors.As(err, &validationErr), errors.As(err, &badRequestErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage returns the text shown to API clients for err
func clientMessage(err error) string {
	var validationErr *ErrValidation
	var badRequestErr *ErrBadRequest
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &badRequestErr):
		return MsgInvalidBody
	default:
		return err.Error()
	}
}
