// Package types provides the request and response shapes of the PathFinder API.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// GenerateRequest is the body of POST /api/generate
type GenerateRequest struct {
	JobTitle string `json:"job_title" validate:"required"`
}

// CompareRequest is the body of POST /api/compare
type CompareRequest struct {
	RoleA string `json:"role_a" validate:"required"`
	RoleB string `json:"role_b" validate:"required"`
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every non-2xx API response.
// Detail repeats Error for clients that read the "detail" field.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Trim removes surrounding whitespace from the job title
func (r *GenerateRequest) Trim() {
	r.JobTitle = strings.TrimSpace(r.JobTitle)
}

// Validate validates the GenerateRequest using the validator.
// Call Trim first so whitespace-only titles are rejected.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Trim removes surrounding whitespace from both roles
func (r *CompareRequest) Trim() {
	r.RoleA = strings.TrimSpace(r.RoleA)
	r.RoleB = strings.TrimSpace(r.RoleB)
}

// Validate validates the CompareRequest using the validator.
// Call Trim first so whitespace-only roles are rejected.
func (r *CompareRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
