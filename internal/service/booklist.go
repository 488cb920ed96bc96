// Package service provides the business logic layer for the catalog:
// book-list consistency maintenance, comment handling, and feedback intake.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/booknest/booknest-server/internal/domain"
	domainerrors "github.com/booknest/booknest-server/internal/errors"
	"github.com/booknest/booknest-server/internal/id"
	"github.com/booknest/booknest-server/internal/metrics"
	"github.com/booknest/booknest-server/internal/normalize"
	"github.com/booknest/booknest-server/internal/store"
	"github.com/booknest/booknest-server/internal/validation"
)

// createIDAttempts bounds how many times a short ID is regenerated when it
// collides with an existing record.
const createIDAttempts = 3

// DuplicateMatch is a compact view of a record sharing a duplicate key,
// returned to callers for display alongside the created record.
type DuplicateMatch struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	AuthorLastName string `json:"author_last_name,omitempty"`
	ISBN           string `json:"isbn,omitempty"`
}

// CreateResult bundles a newly created record with the pre-insert duplicate
// matches that informed its flag.
type CreateResult struct {
	Book                *domain.BookList `json:"book"`
	PotentialDuplicates []DuplicateMatch `json:"potentialDuplicates"`
}

// DeleteResult confirms a completed delete.
type DeleteResult struct {
	Deleted bool `json:"deleted"`
}

// BookListService implements the book-list write path with duplicate-flag
// maintenance. Multi-step sequences (read-then-write, delete fix-up) are
// deliberately not atomic; a concurrent writer on the same key can leave a
// transiently stale flag, corrected by the next write touching that key.
type BookListService struct {
	store    *store.Store
	validate *validation.Validator
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewBookListService creates a new book-list service.
func NewBookListService(st *store.Store, v *validation.Validator, m *metrics.Metrics, logger *slog.Logger) *BookListService {
	return &BookListService{
		store:    st,
		validate: v,
		metrics:  m,
		logger:   logger,
	}
}

// List returns records, optionally filtered by a case-insensitive substring
// search over title, author names, and series name.
func (s *BookListService) List(ctx context.Context, query string, skip, limit int) ([]*domain.BookList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := s.store.SearchBookLists(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list book records: %w", err)
	}

	for _, record := range records {
		record.EnsureComments()
	}
	return records, nil
}

// FindByISBN returns every record stored under the given ISBN.
func (s *BookListService) FindByISBN(ctx context.Context, isbn string) ([]*domain.BookList, error) {
	records, err := s.store.FindBookListsByISBN(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("find book records by isbn: %w", err)
	}

	for _, record := range records {
		record.EnsureComments()
	}
	return records, nil
}

// Get retrieves a single record by ID.
func (s *BookListService) Get(ctx context.Context, recordID string) (*domain.BookList, error) {
	record, err := s.store.GetBookList(ctx, recordID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("book record %q not found", recordID)
		}
		return nil, fmt.Errorf("get book record: %w", err)
	}

	record.EnsureComments()
	return record, nil
}

// Create assembles and persists a new record. The duplicate flag is computed
// against the pre-insert record set with no self-exclusion; the matches that
// set it are returned alongside the record.
func (s *BookListService) Create(ctx context.Context, input *domain.BookListInput) (*CreateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.EffectiveTitle("")) == "" {
		s.metrics.IncrementRecordWrite("create", "rejected")
		return nil, domainerrors.Validation("title is required")
	}

	now := time.Now().UTC()
	record := &domain.BookList{
		Tracking: domain.Tracking{CreatedDate: now},
	}
	input.ApplyTo(record)
	record.EnsureComments()

	matches, err := s.store.FindByTitleAuthor(ctx, record.Title, record.AuthorLastName, "")
	if err != nil {
		return nil, fmt.Errorf("resolve duplicates: %w", err)
	}
	record.IsPotentialDuplicate = len(matches) > 0
	s.metrics.IncrementDuplicateRecompute()

	record.ID, record.Tracking.UUID = id.NewRecordID()

	if err := s.validate.Validate(record); err != nil {
		s.metrics.IncrementRecordWrite("create", "rejected")
		return nil, err
	}

	// The short ID is a prefix of the full identifier, so collisions are
	// possible. Regenerate a bounded number of times before giving up.
	for attempt := 0; ; attempt++ {
		err = s.store.CreateBookList(ctx, record)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			s.metrics.IncrementRecordWrite("create", "error")
			return nil, fmt.Errorf("create book record: %w", err)
		}
		if attempt+1 >= createIDAttempts {
			s.metrics.IncrementRecordWrite("create", "error")
			return nil, domainerrors.Conflict("could not allocate a unique record id")
		}
		record.ID, record.Tracking.UUID = id.NewRecordID()
	}

	s.metrics.IncrementRecordWrite("create", "ok")
	s.logger.Info("book record created",
		"record_id", record.ID,
		"title", record.Title,
		"potential_duplicate", record.IsPotentialDuplicate,
	)

	return &CreateResult{
		Book:                record,
		PotentialDuplicates: toDuplicateMatches(matches),
	}, nil
}

// Update applies a partial patch to a record. The duplicate flag is
// recomputed only when the patch touches the title or author last name,
// using the effective post-patch values with self-exclusion.
func (s *BookListService) Update(ctx context.Context, recordID string, input *domain.BookListInput) (*domain.BookList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record, err := s.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		s.metrics.IncrementRecordWrite("update", "rejected")
		return nil, domainerrors.Validation("title cannot be blank")
	}

	if input.TouchesDuplicateKey() {
		title := input.EffectiveTitle(record.Title)
		author := input.EffectiveAuthorLastName(record.AuthorLastName)

		matches, err := s.store.FindByTitleAuthor(ctx, title, author, record.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve duplicates: %w", err)
		}
		record.IsPotentialDuplicate = len(matches) > 0
		s.metrics.IncrementDuplicateRecompute()
	}

	input.ApplyTo(record)
	record.Touch(time.Now().UTC())

	if err := s.validate.Validate(record); err != nil {
		s.metrics.IncrementRecordWrite("update", "rejected")
		return nil, err
	}

	if err := s.store.UpdateBookList(ctx, record); err != nil {
		s.metrics.IncrementRecordWrite("update", "error")
		return nil, fmt.Errorf("update book record: %w", err)
	}

	s.metrics.IncrementRecordWrite("update", "ok")
	s.logger.Info("book record updated", "record_id", record.ID)

	return record, nil
}

// Replace performs a full replacement (PUT). Fields absent from the input
// fall back to the existing record; the ID, tracking UUID, and creation
// timestamp are always preserved. The duplicate flag is always recomputed
// against the merged key with self-exclusion.
func (s *BookListService) Replace(ctx context.Context, recordID string, input *domain.BookListInput) (*domain.BookList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record, err := s.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.EffectiveTitle(record.Title)) == "" {
		s.metrics.IncrementRecordWrite("replace", "rejected")
		return nil, domainerrors.Validation("title cannot be blank")
	}

	input.ApplyTo(record)
	record.Touch(time.Now().UTC())

	matches, err := s.store.FindByTitleAuthor(ctx, record.Title, record.AuthorLastName, record.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve duplicates: %w", err)
	}
	record.IsPotentialDuplicate = len(matches) > 0
	s.metrics.IncrementDuplicateRecompute()

	if err := s.validate.Validate(record); err != nil {
		s.metrics.IncrementRecordWrite("replace", "rejected")
		return nil, err
	}

	if err := s.store.UpdateBookList(ctx, record); err != nil {
		s.metrics.IncrementRecordWrite("replace", "error")
		return nil, fmt.Errorf("replace book record: %w", err)
	}

	s.metrics.IncrementRecordWrite("replace", "ok")
	s.logger.Info("book record replaced", "record_id", record.ID)

	return record, nil
}

// Delete removes a record, then runs a best-effort fix-up pass over every
// other record sharing the deleted record's duplicate key. Per-record fix-up
// failures are logged and never abort the delete, which has already
// succeeded.
func (s *BookListService) Delete(ctx context.Context, recordID string) (*DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record, err := s.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteBookList(ctx, recordID); err != nil {
		s.metrics.IncrementRecordWrite("delete", "error")
		return nil, fmt.Errorf("delete book record: %w", err)
	}

	s.metrics.IncrementRecordWrite("delete", "ok")
	s.logger.Info("book record deleted", "record_id", recordID)

	if normalize.HasKey(record.Title, record.AuthorLastName) {
		s.fixupSiblings(ctx, record)
	}

	return &DeleteResult{Deleted: true}, nil
}

// fixupSiblings recomputes the duplicate flag for every record that shared
// the deleted record's key. Each sibling is handled independently.
func (s *BookListService) fixupSiblings(ctx context.Context, deleted *domain.BookList) {
	siblings, err := s.store.FindByTitleAuthor(ctx, deleted.Title, deleted.AuthorLastName, deleted.ID)
	if err != nil {
		s.logger.Error("duplicate fix-up scan failed",
			"record_id", deleted.ID,
			"error", err,
		)
		return
	}

	for _, sibling := range siblings {
		others, err := s.store.FindByTitleAuthor(ctx, sibling.Title, sibling.AuthorLastName, sibling.ID)
		if err != nil {
			s.logger.Error("duplicate fix-up query failed",
				"record_id", sibling.ID,
				"error", err,
			)
			continue
		}

		flag := len(others) > 0
		if flag == sibling.IsPotentialDuplicate {
			continue
		}

		sibling.IsPotentialDuplicate = flag
		if err := s.store.UpdateBookList(ctx, sibling); err != nil {
			s.logger.Error("duplicate fix-up write failed",
				"record_id", sibling.ID,
				"error", err,
			)
			continue
		}
		s.metrics.IncrementDuplicateRecompute()
	}
}

// FindPotentialDuplicates returns the records sharing a stored record's
// duplicate key, excluding the record itself.
func (s *BookListService) FindPotentialDuplicates(ctx context.Context, recordID string) ([]DuplicateMatch, error) {
	record, err := s.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	matches, err := s.store.FindByTitleAuthor(ctx, record.Title, record.AuthorLastName, record.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve duplicates: %w", err)
	}

	return toDuplicateMatches(matches), nil
}

// AddComment normalizes a raw comment payload, stamps server-assigned
// fields, and appends it to the record.
func (s *BookListService) AddComment(ctx context.Context, recordID string, input *domain.CommentInput) (*domain.BookList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record, err := s.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(input.NormalizedText())
	if text == "" {
		return nil, domainerrors.Validation("comment text is required")
	}

	commentID, err := id.Generate("cmt")
	if err != nil {
		return nil, fmt.Errorf("generate comment ID: %w", err)
	}

	now := time.Now().UTC()
	record.AppendComment(domain.Comment{
		CommentID:   commentID,
		Text:        text,
		Name:        strings.TrimSpace(input.NormalizedName()),
		CommentDate: now,
	})
	record.Touch(now)

	if err := s.validate.Validate(record); err != nil {
		return nil, err
	}

	if err := s.store.UpdateBookList(ctx, record); err != nil {
		return nil, fmt.Errorf("append comment: %w", err)
	}

	s.metrics.IncrementCommentAdded()
	s.logger.Info("comment added", "record_id", recordID, "comment_id", commentID)

	return record, nil
}

// GetComments returns a record's comments in insertion order.
func (s *BookListService) GetComments(ctx context.Context, recordID string) ([]domain.Comment, error) {
	record, err := s.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return record.Comments, nil
}

// DeleteComment removes a comment by ID.
func (s *BookListService) DeleteComment(ctx context.Context, recordID, commentID string) (*domain.BookList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record, err := s.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if !record.RemoveComment(commentID) {
		return nil, domainerrors.NotFoundf("comment %q not found", commentID)
	}
	record.Touch(time.Now().UTC())

	if err := s.store.UpdateBookList(ctx, record); err != nil {
		return nil, fmt.Errorf("remove comment: %w", err)
	}

	s.logger.Info("comment removed", "record_id", recordID, "comment_id", commentID)

	return record, nil
}

func toDuplicateMatches(records []*domain.BookList) []DuplicateMatch {
	matches := make([]DuplicateMatch, 0, len(records))
	for _, r := range records {
		matches = append(matches, DuplicateMatch{
			ID:             r.ID,
			Title:          r.Title,
			AuthorLastName: r.AuthorLastName,
			ISBN:           r.ISBN,
		})
	}
	return matches
}
