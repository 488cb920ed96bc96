package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booknest/booknest-server/internal/domain"
	domainerrors "github.com/booknest/booknest-server/internal/errors"
	"github.com/booknest/booknest-server/internal/id"
	"github.com/booknest/booknest-server/internal/store"
	"github.com/booknest/booknest-server/internal/validation"
)

func setupFeedbackService(t *testing.T) (*FeedbackService, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "booknest-feedback-test-*")
	require.NoError(t, err)

	st, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewFeedbackService(st, validation.New(), nil, logger)

	cleanup := func() {
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return svc, cleanup
}

func TestFeedbackCreate(t *testing.T) {
	svc, cleanup := setupFeedbackService(t)
	defer cleanup()

	ctx := context.Background()

	fb, err := svc.Create(ctx, &domain.FeedbackInput{
		Type:    "bug",
		Message: "search returns nothing for hyphenated titles",
	})
	require.NoError(t, err)

	assert.Len(t, fb.ID, id.ShortIDLength)
	assert.Equal(t, fb.UUID[:id.ShortIDLength], fb.ID)
	assert.False(t, fb.CreatedDate.IsZero())
	assert.Equal(t, "bug", fb.Type)

	fetched, err := svc.GetByID(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, fb.Message, fetched.Message)
}

func TestFeedbackCreate_MissingFields(t *testing.T) {
	svc, cleanup := setupFeedbackService(t)
	defer cleanup()

	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.FeedbackInput{Type: "bug"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.Create(ctx, &domain.FeedbackInput{Message: "no type"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestFeedbackGetAll_NewestFirst(t *testing.T) {
	svc, cleanup := setupFeedbackService(t)
	defer cleanup()

	ctx := context.Background()

	for _, msg := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, &domain.FeedbackInput{Type: "idea", Message: msg})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Message)
	assert.Equal(t, "first", all[2].Message)
}

func TestFeedbackDelete(t *testing.T) {
	svc, cleanup := setupFeedbackService(t)
	defer cleanup()

	ctx := context.Background()

	fb, err := svc.Create(ctx, &domain.FeedbackInput{Type: "bug", Message: "oops"})
	require.NoError(t, err)

	result, err := svc.Delete(ctx, fb.ID)
	require.NoError(t, err)
	assert.True(t, result.Deleted)

	_, err = svc.GetByID(ctx, fb.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestFeedbackDelete_NotFound(t *testing.T) {
	svc, cleanup := setupFeedbackService(t)
	defer cleanup()

	_, err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
