package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/booknest/booknest-server/internal/domain"
)

// CreateFeedback persists a new feedback message.
func (s *Store) CreateFeedback(ctx context.Context, fb *domain.Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.Feedback.Create(ctx, fb.ID, fb); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("feedback created", "feedback_id", fb.ID, "type", fb.Type)
	}

	return nil
}

// GetFeedback retrieves a feedback message by ID.
func (s *Store) GetFeedback(ctx context.Context, feedbackID string) (*domain.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fb, err := s.Feedback.Get(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get feedback: %w", err)
	}

	return fb, nil
}

// ListFeedback returns all feedback messages, newest first.
func (s *Store) ListFeedback(ctx context.Context) ([]*domain.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []*domain.Feedback
	for fb, err := range s.Feedback.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list feedback: %w", err)
		}
		all = append(all, fb)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedDate.After(all[j].CreatedDate)
	})

	return all, nil
}

// DeleteFeedback removes a feedback message by ID. Idempotent.
func (s *Store) DeleteFeedback(ctx context.Context, feedbackID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.Feedback.Delete(ctx, feedbackID); err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("feedback deleted", "feedback_id", feedbackID)
	}

	return nil
}
