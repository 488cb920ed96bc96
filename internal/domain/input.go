package domain

// BookListInput is a client-supplied book payload. Pointer fields distinguish
// "absent" from "zero" so the same shape serves create (POST), partial update
// (PATCH), and replace (PUT) merges.
type BookListInput struct {
	Title           *string `json:"title"`
	AuthorFirstName *string `json:"author_first_name"`
	AuthorLastName  *string `json:"author_last_name"`
	PublicationYear *int    `json:"publication_year"`
	SeriesName      *string `json:"series_name"`
	EditionNote     *string `json:"edition_note"`
	ISBN            *string `json:"isbn"`
	Location        *string `json:"location"`
	Bookcase        *string `json:"bookcase"`
	ImagePath       *string `json:"imagePath"`
}

// ApplyTo overlays the input's present fields onto a record. The record's ID,
// tracking, comments, and duplicate flag are never touched here; those are
// owned by the write path.
func (in *BookListInput) ApplyTo(b *BookList) {
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.AuthorFirstName != nil {
		b.AuthorFirstName = *in.AuthorFirstName
	}
	if in.AuthorLastName != nil {
		b.AuthorLastName = *in.AuthorLastName
	}
	if in.PublicationYear != nil {
		b.PublicationYear = *in.PublicationYear
	}
	if in.SeriesName != nil {
		b.SeriesName = *in.SeriesName
	}
	if in.EditionNote != nil {
		b.EditionNote = *in.EditionNote
	}
	if in.ISBN != nil {
		b.ISBN = *in.ISBN
	}
	if in.Location != nil {
		b.Location = *in.Location
	}
	if in.Bookcase != nil {
		b.Bookcase = *in.Bookcase
	}
	if in.ImagePath != nil {
		b.ImagePath = *in.ImagePath
	}
}

// EffectiveTitle returns the post-merge title: the patch value when present,
// otherwise the existing one.
func (in *BookListInput) EffectiveTitle(existing string) string {
	if in.Title != nil {
		return *in.Title
	}
	return existing
}

// EffectiveAuthorLastName returns the post-merge author last name.
func (in *BookListInput) EffectiveAuthorLastName(existing string) string {
	if in.AuthorLastName != nil {
		return *in.AuthorLastName
	}
	return existing
}

// TouchesDuplicateKey reports whether the input carries either half of the
// (title, author_last_name) duplicate key.
func (in *BookListInput) TouchesDuplicateKey() bool {
	return in.Title != nil || in.AuthorLastName != nil
}

// CommentInput is a raw comment payload. The body text and author name are
// each accepted under three aliases for legacy clients; NormalizedText and
// NormalizedName resolve them in priority order.
type CommentInput struct {
	Comment *string `json:"comment"`
	Text    *string `json:"text"`
	Message *string `json:"message"`

	Name   *string `json:"name"`
	User   *string `json:"user"`
	Author *string `json:"author"`
}

// NormalizedText resolves the comment body: comment, then text, then message.
// The first present alias wins, even when blank.
func (in *CommentInput) NormalizedText() string {
	switch {
	case in.Comment != nil:
		return *in.Comment
	case in.Text != nil:
		return *in.Text
	case in.Message != nil:
		return *in.Message
	}
	return ""
}

// NormalizedName resolves the author name: name, then user, then author.
func (in *CommentInput) NormalizedName() string {
	switch {
	case in.Name != nil:
		return *in.Name
	case in.User != nil:
		return *in.User
	case in.Author != nil:
		return *in.Author
	}
	return ""
}
