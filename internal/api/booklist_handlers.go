package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/booknest/booknest-server/internal/domain"
	"github.com/booknest/booknest-server/internal/http/response"
)

// handleListBookLists returns records, optionally filtered by a search query
// or an exact ISBN.
func (s *Server) handleListBookLists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if isbn := r.URL.Query().Get("isbn"); isbn != "" {
		records, err := s.bookListService.FindByISBN(ctx, isbn)
		if err != nil {
			s.logger.Error("Failed to find book records by ISBN", "error", err)
			response.HandleError(w, err, s.logger)
			return
		}
		response.Success(w, records, s.logger)
		return
	}

	query := r.URL.Query().Get("search")
	skip := parseIntParam(r, "skip", 0)
	limit := parseIntParam(r, "limit", 0)

	records, err := s.bookListService.List(ctx, query, skip, limit)
	if err != nil {
		s.logger.Error("Failed to list book records", "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, records, s.logger)
}

// handleGetBookList returns a single record by ID.
func (s *Server) handleGetBookList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	record, err := s.bookListService.Get(ctx, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, record, s.logger)
}

// handleCreateBookList creates a new record and reports any duplicate
// matches found alongside it.
func (s *Server) handleCreateBookList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input domain.BookListInput
	if err := json.UnmarshalRead(r.Body, &input); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	result, err := s.bookListService.Create(ctx, &input)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, result, s.logger)
}

// handleUpdateBookList applies a partial patch to a record.
func (s *Server) handleUpdateBookList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var input domain.BookListInput
	if err := json.UnmarshalRead(r.Body, &input); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	record, err := s.bookListService.Update(ctx, id, &input)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, record, s.logger)
}

// handleReplaceBookList performs a full replacement of a record.
func (s *Server) handleReplaceBookList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var input domain.BookListInput
	if err := json.UnmarshalRead(r.Body, &input); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	record, err := s.bookListService.Replace(ctx, id, &input)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, record, s.logger)
}

// handleDeleteBookList removes a record.
func (s *Server) handleDeleteBookList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	result, err := s.bookListService.Delete(ctx, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}

// handleGetDuplicates returns the records sharing a record's title and
// author last name.
func (s *Server) handleGetDuplicates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	matches, err := s.bookListService.FindPotentialDuplicates(ctx, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, matches, s.logger)
}

// handleGetComments returns a record's comments.
func (s *Server) handleGetComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	comments, err := s.bookListService.GetComments(ctx, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, comments, s.logger)
}

// handleAddComment appends a comment to a record and returns the updated
// record.
func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var input domain.CommentInput
	if err := json.UnmarshalRead(r.Body, &input); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	record, err := s.bookListService.AddComment(ctx, id, &input)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, record, s.logger)
}

// handleDeleteComment removes a comment and returns the updated record.
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	commentID := chi.URLParam(r, "commentId")

	record, err := s.bookListService.DeleteComment(ctx, id, commentID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, record, s.logger)
}

// handleLookupISBN fetches external metadata for an ISBN and returns a
// pre-filled record draft.
func (s *Server) handleLookupISBN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isbn := chi.URLParam(r, "isbn")

	draft, err := s.booksClient.LookupISBN(ctx, isbn)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, draft, s.logger)
}

// parseIntParam parses a non-negative integer query parameter.
func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
