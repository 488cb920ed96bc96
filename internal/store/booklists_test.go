package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booknest/booknest-server/internal/domain"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "booknest-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := New(dbPath, nil)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func newTestRecord(id, title, authorLast string, createdAt time.Time) *domain.BookList {
	return &domain.BookList{
		ID:             id,
		Title:          title,
		AuthorLastName: authorLast,
		Tracking: domain.Tracking{
			UUID:        "uuid-" + id,
			CreatedDate: createdAt,
		},
	}
}

func TestCreateBookList(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	record := newTestRecord("abc123", "Dune", "Herbert", time.Now().UTC())
	err := s.CreateBookList(ctx, record)
	require.NoError(t, err)

	fetched, err := s.GetBookList(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Dune", fetched.Title)
	assert.Equal(t, "Herbert", fetched.AuthorLastName)
	assert.Equal(t, "uuid-abc123", fetched.Tracking.UUID)
}

func TestCreateBookList_DuplicateID(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	first := newTestRecord("abc123", "Dune", "Herbert", time.Now().UTC())
	require.NoError(t, s.CreateBookList(ctx, first))

	second := newTestRecord("abc123", "Hyperion", "Simmons", time.Now().UTC())
	err := s.CreateBookList(ctx, second)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGetBookList_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetBookList(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBookList(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	record := newTestRecord("abc123", "Dune", "Herbert", time.Now().UTC())
	require.NoError(t, s.CreateBookList(ctx, record))

	record.Title = "Dune Messiah"
	record.IsPotentialDuplicate = true
	require.NoError(t, s.UpdateBookList(ctx, record))

	fetched, err := s.GetBookList(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", fetched.Title)
	assert.True(t, fetched.IsPotentialDuplicate)
}

func TestUpdateBookList_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	record := newTestRecord("missing", "Dune", "Herbert", time.Now().UTC())
	err := s.UpdateBookList(context.Background(), record)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBookList_Idempotent(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	record := newTestRecord("abc123", "Dune", "Herbert", time.Now().UTC())
	require.NoError(t, s.CreateBookList(ctx, record))

	require.NoError(t, s.DeleteBookList(ctx, "abc123"))
	_, err := s.GetBookList(ctx, "abc123")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, s.DeleteBookList(ctx, "abc123"))
}

func TestListBookLists_SortedNewestFirst(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateBookList(ctx, newTestRecord("one", "Dune", "Herbert", base)))
	require.NoError(t, s.CreateBookList(ctx, newTestRecord("two", "Hyperion", "Simmons", base.Add(time.Hour))))
	require.NoError(t, s.CreateBookList(ctx, newTestRecord("three", "Foundation", "Asimov", base.Add(2*time.Hour))))

	records, err := s.ListBookLists(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "three", records[0].ID)
	assert.Equal(t, "two", records[1].ID)
	assert.Equal(t, "one", records[2].ID)
}

func TestListBookLists_Paging(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"one", "two", "three", "four"} {
		record := newTestRecord(id, "Book "+id, "Author", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, s.CreateBookList(ctx, record))
	}

	records, err := s.ListBookLists(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "three", records[0].ID)
	assert.Equal(t, "two", records[1].ID)

	// Skip past the end returns nothing.
	records, err = s.ListBookLists(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearchBookLists(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.CreateBookList(ctx, newTestRecord("one", "Dune", "Herbert", now)))

	two := newTestRecord("two", "Hyperion", "Simmons", now.Add(time.Minute))
	two.SeriesName = "Hyperion Cantos"
	require.NoError(t, s.CreateBookList(ctx, two))

	three := newTestRecord("three", "Foundation", "Asimov", now.Add(2*time.Minute))
	three.AuthorFirstName = "Isaac"
	require.NoError(t, s.CreateBookList(ctx, three))

	// Case-insensitive substring over the title.
	records, err := s.SearchBookLists(ctx, "dUn", 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "one", records[0].ID)

	// Matches on series name.
	records, err = s.SearchBookLists(ctx, "cantos", 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "two", records[0].ID)

	// Matches on author first name.
	records, err = s.SearchBookLists(ctx, "isaac", 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "three", records[0].ID)

	// Empty query matches everything.
	records, err = s.SearchBookLists(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	// No match.
	records, err = s.SearchBookLists(ctx, "zelazny", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFindByTitleAuthor(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.CreateBookList(ctx, newTestRecord("one", "Dune", "Herbert", now)))
	require.NoError(t, s.CreateBookList(ctx, newTestRecord("two", "  DUNE  ", "herbert", now)))
	require.NoError(t, s.CreateBookList(ctx, newTestRecord("three", "Dune Messiah", "Herbert", now)))

	matches, err := s.FindByTitleAuthor(ctx, "dune", "HERBERT", "")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	ids := []string{matches[0].ID, matches[1].ID}
	assert.ElementsMatch(t, []string{"one", "two"}, ids)
}

func TestFindByTitleAuthor_ExcludesSelf(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.CreateBookList(ctx, newTestRecord("one", "Dune", "Herbert", now)))
	require.NoError(t, s.CreateBookList(ctx, newTestRecord("two", "Dune", "Herbert", now)))

	matches, err := s.FindByTitleAuthor(ctx, "Dune", "Herbert", "one")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "two", matches[0].ID)
}

func TestFindByTitleAuthor_EmptyFieldsNeverMatch(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	// Record with no author last name.
	require.NoError(t, s.CreateBookList(ctx, newTestRecord("one", "Dune", "", now)))

	matches, err := s.FindByTitleAuthor(ctx, "Dune", "", "")
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = s.FindByTitleAuthor(ctx, "", "Herbert", "")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestBookListISBNIndex(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	record := newTestRecord("one", "Dune", "Herbert", now)
	record.ISBN = "9780441013593"
	require.NoError(t, s.CreateBookList(ctx, record))

	// Two records may share an ISBN.
	sibling := newTestRecord("two", "Dune", "Herbert", now)
	sibling.ISBN = "9780441013593"
	require.NoError(t, s.CreateBookList(ctx, sibling))

	matches, err := s.FindBookListsByISBN(ctx, "9780441013593")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = s.FindBookListsByISBN(ctx, "9999999999999")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestListYieldsTransactionError(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	record := newTestRecord("one", "Dune", "Herbert", time.Now().UTC())
	require.NoError(t, s.CreateBookList(ctx, record))
	require.NoError(t, s.Close())

	var iterErr error
	count := 0
	for _, err := range s.BookLists.List(ctx) {
		if err != nil {
			iterErr = err
			continue
		}
		count++
	}

	require.Error(t, iterErr)
	assert.Zero(t, count)
}

func TestCountBookLists(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	count, err := s.CountBookLists(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, s.CreateBookList(ctx, newTestRecord("one", "Dune", "Herbert", now)))
	require.NoError(t, s.CreateBookList(ctx, newTestRecord("two", "Hyperion", "Simmons", now)))

	count, err = s.CountBookLists(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
