package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/booknest/booknest-server/internal/domain"
	domainerrors "github.com/booknest/booknest-server/internal/errors"
	"github.com/booknest/booknest-server/internal/id"
	"github.com/booknest/booknest-server/internal/metrics"
	"github.com/booknest/booknest-server/internal/store"
	"github.com/booknest/booknest-server/internal/validation"
)

// FeedbackService handles feedback message intake and retrieval.
type FeedbackService struct {
	store    *store.Store
	validate *validation.Validator
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(st *store.Store, v *validation.Validator, m *metrics.Metrics, logger *slog.Logger) *FeedbackService {
	return &FeedbackService{
		store:    st,
		validate: v,
		metrics:  m,
		logger:   logger,
	}
}

// Create stamps server-assigned fields onto a feedback message, validates
// it, and persists it.
func (s *FeedbackService) Create(ctx context.Context, input *domain.FeedbackInput) (*domain.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fb := &domain.Feedback{
		Type:        input.Type,
		Message:     input.Message,
		CreatedDate: time.Now().UTC(),
	}
	fb.ID, fb.UUID = id.NewRecordID()

	if err := s.validate.Validate(fb); err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		err := s.store.CreateFeedback(ctx, fb)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return nil, fmt.Errorf("create feedback: %w", err)
		}
		if attempt+1 >= createIDAttempts {
			return nil, domainerrors.Conflict("could not allocate a unique feedback id")
		}
		fb.ID, fb.UUID = id.NewRecordID()
	}

	s.metrics.IncrementFeedbackReceived(fb.Type)
	s.logger.Info("feedback received", "feedback_id", fb.ID, "type", fb.Type)

	return fb, nil
}

// GetAll returns every feedback message, newest first.
func (s *FeedbackService) GetAll(ctx context.Context) ([]*domain.Feedback, error) {
	all, err := s.store.ListFeedback(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return all, nil
}

// GetByID retrieves a single feedback message.
func (s *FeedbackService) GetByID(ctx context.Context, feedbackID string) (*domain.Feedback, error) {
	fb, err := s.store.GetFeedback(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("feedback %q not found", feedbackID)
		}
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	return fb, nil
}

// Delete removes a feedback message by ID.
func (s *FeedbackService) Delete(ctx context.Context, feedbackID string) (*DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := s.GetByID(ctx, feedbackID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteFeedback(ctx, feedbackID); err != nil {
		return nil, fmt.Errorf("delete feedback: %w", err)
	}

	return &DeleteResult{Deleted: true}, nil
}
