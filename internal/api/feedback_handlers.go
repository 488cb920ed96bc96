package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/booknest/booknest-server/internal/domain"
	"github.com/booknest/booknest-server/internal/http/response"
)

// handleListFeedback returns all feedback messages, newest first.
func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	all, err := s.feedbackService.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list feedback", "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, all, s.logger)
}

// handleCreateFeedback records a new feedback message.
func (s *Server) handleCreateFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input domain.FeedbackInput
	if err := json.UnmarshalRead(r.Body, &input); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	fb, err := s.feedbackService.Create(ctx, &input)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, fb, s.logger)
}

// handleGetFeedback returns a single feedback message.
func (s *Server) handleGetFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	fb, err := s.feedbackService.GetByID(ctx, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, fb, s.logger)
}

// handleDeleteFeedback removes a feedback message.
func (s *Server) handleDeleteFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	result, err := s.feedbackService.Delete(ctx, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}
