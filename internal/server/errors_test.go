package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "job_title", Message: MsgJobTitleRequired}
	assert.Equal(t, "validation error: job_title - Job title required.", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	assert.Equal(t, MsgJobTitleRequired, clientMessage(err))
}

func TestErrBadRequest(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &ErrBadRequest{Cause: cause}
	assert.Equal(t, "bad request: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	assert.Equal(t, MsgInvalidBody, clientMessage(err))
}

func TestErrPanic(t *testing.T) {
	err := &ErrPanic{Value: "boom"}
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.Equal(t, "boom", clientMessage(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ErrValidation",
			err:      &ErrValidation{Field: "role_a", Message: MsgRolesRequired},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped ErrValidation",
			err:      fmt.Errorf("handler: %w", &ErrValidation{Field: "role_b", Message: MsgRolesRequired}),
			expected: http.StatusBadRequest,
		},
		{
			name:     "ErrBadRequest",
			err:      &ErrBadRequest{Cause: errors.New("EOF")},
			expected: http.StatusBadRequest,
		},
		{
			name:     "unknown error",
			err:      errors.New("something went wrong"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
