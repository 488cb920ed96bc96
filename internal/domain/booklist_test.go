package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemoveComment(t *testing.T) {
	b := &BookList{
		Comments: []Comment{
			{CommentID: "c1", Text: "first"},
			{CommentID: "c2", Text: "second"},
			{CommentID: "c3", Text: "third"},
		},
	}

	removed := b.RemoveComment("c2")
	assert.True(t, removed)
	assert.Len(t, b.Comments, 2)
	assert.Equal(t, "c1", b.Comments[0].CommentID)
	assert.Equal(t, "c3", b.Comments[1].CommentID)
}

func TestRemoveComment_NotFound(t *testing.T) {
	b := &BookList{
		Comments: []Comment{{CommentID: "c1", Text: "only"}},
	}

	removed := b.RemoveComment("missing")
	assert.False(t, removed)
	assert.Len(t, b.Comments, 1)
}

func TestAppendComment_PreservesOrder(t *testing.T) {
	b := &BookList{}
	b.EnsureComments()

	b.AppendComment(Comment{CommentID: "c1"})
	b.AppendComment(Comment{CommentID: "c2"})

	assert.Equal(t, "c1", b.Comments[0].CommentID)
	assert.Equal(t, "c2", b.Comments[1].CommentID)
}

func TestEnsureComments(t *testing.T) {
	b := &BookList{}
	assert.Nil(t, b.Comments)

	b.EnsureComments()
	assert.NotNil(t, b.Comments)
	assert.Empty(t, b.Comments)
}

func TestCommentInput_AliasPriority(t *testing.T) {
	s := func(v string) *string { return &v }

	tests := []struct {
		name     string
		in       CommentInput
		wantText string
		wantName string
	}{
		{
			name:     "primary aliases win",
			in:       CommentInput{Comment: s("a"), Text: s("b"), Message: s("c"), Name: s("x"), User: s("y"), Author: s("z")},
			wantText: "a",
			wantName: "x",
		},
		{
			name:     "second alias",
			in:       CommentInput{Text: s("b"), Message: s("c"), User: s("y"), Author: s("z")},
			wantText: "b",
			wantName: "y",
		},
		{
			name:     "third alias",
			in:       CommentInput{Message: s("c"), Author: s("z")},
			wantText: "c",
			wantName: "z",
		},
		{
			name:     "nothing set",
			in:       CommentInput{},
			wantText: "",
			wantName: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantText, tt.in.NormalizedText())
			assert.Equal(t, tt.wantName, tt.in.NormalizedName())
		})
	}
}

func TestBookListInput_ApplyTo(t *testing.T) {
	s := func(v string) *string { return &v }
	year := 1965

	existing := &BookList{
		ID:              "abc123",
		Title:           "Dune",
		AuthorLastName:  "Herbert",
		PublicationYear: 1900,
		Location:        "Shelf A",
		Tracking:        Tracking{UUID: "u-1", CreatedDate: time.Now()},
	}

	in := &BookListInput{
		Title:           s("Dune Messiah"),
		PublicationYear: &year,
	}
	in.ApplyTo(existing)

	assert.Equal(t, "Dune Messiah", existing.Title)
	assert.Equal(t, 1965, existing.PublicationYear)
	// Untouched fields survive the overlay.
	assert.Equal(t, "Herbert", existing.AuthorLastName)
	assert.Equal(t, "Shelf A", existing.Location)
	assert.Equal(t, "abc123", existing.ID)
}

func TestBookListInput_TouchesDuplicateKey(t *testing.T) {
	s := func(v string) *string { return &v }

	assert.False(t, (&BookListInput{Location: s("B2")}).TouchesDuplicateKey())
	assert.True(t, (&BookListInput{Title: s("Dune")}).TouchesDuplicateKey())
	assert.True(t, (&BookListInput{AuthorLastName: s("Herbert")}).TouchesDuplicateKey())
}
