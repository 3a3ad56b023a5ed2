package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/pathfinder/internal/types"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies; roles are short strings
const maxBodyBytes = 64 << 10

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.HealthResponse{Status: "ok"})
}

// handleGenerate returns the roadmap for a single job title
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	req.Trim()
	if err := req.Validate(); err != nil {
		s.writeError(w, &ErrValidation{Field: "job_title", Message: MsgJobTitleRequired})
		return
	}

	// Curated roles never reach the model, so only misses count against the limit
	if !s.resolver.Cached(req.JobTitle) && !s.allowRequest(w, r) {
		return
	}

	s.jsonResponse(w, http.StatusOK, s.resolver.Resolve(r.Context(), req.JobTitle))
}

// handleCompare returns a side-by-side comparison of two roles
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req types.CompareRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	req.Trim()
	if err := req.Validate(); err != nil {
		s.writeError(w, &ErrValidation{Field: "role_a,role_b", Message: MsgRolesRequired})
		return
	}

	s.jsonResponse(w, http.StatusOK, s.resolver.Compare(r.Context(), req.RoleA, req.RoleB))
}

// decodeBody decodes a JSON request body into dst
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrBadRequest{Cause: err}
	}
	return nil
}

// writeError writes err as {"error": ..., "detail": ...} with the status from HTTPStatus
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	} else {
		s.logger.Debug("request rejected", zap.Error(err))
	}

	message := clientMessage(err)
	s.jsonResponse(w, status, types.ErrorResponse{Error: message, Detail: message})
}
