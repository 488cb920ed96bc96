package validation

import (
	"testing"

	"github.com/booknest/booknest-server/internal/domain"
	domainerrors "github.com/booknest/booknest-server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidBookList(t *testing.T) {
	v := New()

	book := &domain.BookList{
		ID:              "abc123",
		Title:           "Dune",
		AuthorLastName:  "Herbert",
		PublicationYear: 1965,
		Comments:        []domain.Comment{},
		Tracking:        domain.Tracking{UUID: "11111111-1111-4111-8111-111111111111"},
	}

	assert.NoError(t, v.Validate(book))
}

func TestValidate_MissingTitle(t *testing.T) {
	v := New()

	book := &domain.BookList{
		ID:       "abc123",
		Tracking: domain.Tracking{UUID: "11111111-1111-4111-8111-111111111111"},
	}

	err := v.Validate(book)
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	// Field errors are keyed by JSON tag name.
	fields, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", fields["title"])
}

func TestValidate_PublicationYearRange(t *testing.T) {
	v := New()

	book := &domain.BookList{
		Title:           "Dune",
		PublicationYear: 12000,
		Tracking:        domain.Tracking{UUID: "11111111-1111-4111-8111-111111111111"},
	}

	err := v.Validate(book)
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	fields := domainErr.Details.(map[string]string)
	assert.Contains(t, fields, "publication_year")
}

func TestValidate_EmptyCommentText(t *testing.T) {
	v := New()

	book := &domain.BookList{
		Title:    "Dune",
		Comments: []domain.Comment{{CommentID: "c1", Text: ""}},
		Tracking: domain.Tracking{UUID: "11111111-1111-4111-8111-111111111111"},
	}

	err := v.Validate(book)
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	fields := domainErr.Details.(map[string]string)
	assert.Equal(t, "is required", fields["comment"])
}

func TestValidate_Feedback(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&domain.Feedback{
		ID:      "abc123",
		Type:    "bug",
		Message: "Something is broken",
	}))

	err := v.Validate(&domain.Feedback{ID: "abc123", Type: "bug"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	fields := domainErr.Details.(map[string]string)
	assert.Contains(t, fields, "message")
}
