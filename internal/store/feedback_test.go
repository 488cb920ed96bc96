package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booknest/booknest-server/internal/domain"
)

func newTestFeedback(id, fbType, message string, createdAt time.Time) *domain.Feedback {
	return &domain.Feedback{
		ID:          id,
		Type:        fbType,
		Message:     message,
		UUID:        "uuid-" + id,
		CreatedDate: createdAt,
	}
}

func TestCreateFeedback(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	fb := newTestFeedback("fb1", "bug", "search is broken", time.Now().UTC())
	require.NoError(t, s.CreateFeedback(ctx, fb))

	fetched, err := s.GetFeedback(ctx, "fb1")
	require.NoError(t, err)
	assert.Equal(t, "bug", fetched.Type)
	assert.Equal(t, "search is broken", fetched.Message)
}

func TestGetFeedback_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetFeedback(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFeedback_NewestFirst(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateFeedback(ctx, newTestFeedback("fb1", "bug", "first", base)))
	require.NoError(t, s.CreateFeedback(ctx, newTestFeedback("fb2", "idea", "second", base.Add(time.Hour))))
	require.NoError(t, s.CreateFeedback(ctx, newTestFeedback("fb3", "praise", "third", base.Add(2*time.Hour))))

	all, err := s.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "fb3", all[0].ID)
	assert.Equal(t, "fb2", all[1].ID)
	assert.Equal(t, "fb1", all[2].ID)
}

func TestDeleteFeedback_Idempotent(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	fb := newTestFeedback("fb1", "bug", "first", time.Now().UTC())
	require.NoError(t, s.CreateFeedback(ctx, fb))

	require.NoError(t, s.DeleteFeedback(ctx, "fb1"))
	_, err := s.GetFeedback(ctx, "fb1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.DeleteFeedback(ctx, "fb1"))
}
