// Package domain contains the core business entities for the BookNest catalog.
package domain

import "time"

// BookList represents a single catalogued book.
//
// The visible ID is a short prefix of the full tracking UUID and is immutable
// after creation. IsPotentialDuplicate is derived server-side and never
// client-authoritative.
type BookList struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title" validate:"required"`
	AuthorFirstName      string    `json:"author_first_name,omitempty"`
	AuthorLastName       string    `json:"author_last_name,omitempty"`
	PublicationYear      int       `json:"publication_year,omitempty" validate:"omitempty,gte=0,lte=9999"`
	SeriesName           string    `json:"series_name,omitempty"`
	EditionNote          string    `json:"edition_note,omitempty"`
	ISBN                 string    `json:"isbn,omitempty"`
	Location             string    `json:"location,omitempty"`
	Bookcase             string    `json:"bookcase,omitempty"`
	ImagePath            string    `json:"imagePath,omitempty"`
	IsPotentialDuplicate bool      `json:"isPotentialDuplicate"`
	Comments             []Comment `json:"comments" validate:"dive"`
	Tracking             Tracking  `json:"tracking"`
}

// Comment is a reader comment embedded in a BookList. Comments are
// append-only: created with a server-assigned ID and timestamp, removed by
// ID, never edited in place.
type Comment struct {
	CommentID   string    `json:"commentId"`
	Text        string    `json:"comment" validate:"required"`
	Name        string    `json:"name,omitempty"`
	CommentDate time.Time `json:"commentDate"`
}

// Tracking holds server-assigned record metadata. UUID is the full unique
// identifier the short ID is derived from.
type Tracking struct {
	UUID        string    `json:"uuid" validate:"required"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate,omitzero"`
}

// Helper Methods.

// GetComment finds a comment by its ID.
func (b *BookList) GetComment(commentID string) *Comment {
	for i := range b.Comments {
		if b.Comments[i].CommentID == commentID {
			return &b.Comments[i]
		}
	}
	return nil
}

// AppendComment adds a comment at the end of the sequence, preserving
// insertion order.
func (b *BookList) AppendComment(c Comment) {
	b.Comments = append(b.Comments, c)
}

// RemoveComment removes the comment with the given ID.
// Returns true if a comment was removed.
func (b *BookList) RemoveComment(commentID string) bool {
	for i := range b.Comments {
		if b.Comments[i].CommentID == commentID {
			b.Comments = append(b.Comments[:i], b.Comments[i+1:]...)
			return true
		}
	}
	return false
}

// EnsureComments guarantees the comments sequence is present. Records always
// serialize with a comments array, never null.
func (b *BookList) EnsureComments() {
	if b.Comments == nil {
		b.Comments = []Comment{}
	}
}

// Touch refreshes the last-updated timestamp.
func (b *BookList) Touch(now time.Time) {
	b.Tracking.UpdatedDate = now
}
