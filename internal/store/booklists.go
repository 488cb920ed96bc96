package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/booknest/booknest-server/internal/domain"
	"github.com/booknest/booknest-server/internal/normalize"
)

// CreateBookList persists a new book-list record.
// The record's ID must already be assigned. Returns ErrAlreadyExists when
// another record holds the same ID.
func (s *Store) CreateBookList(ctx context.Context, record *domain.BookList) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.BookLists.Create(ctx, record.ID, record); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("book list record created",
			"record_id", record.ID,
			"title", record.Title,
		)
	}

	return nil
}

// GetBookList retrieves a book-list record by ID.
func (s *Store) GetBookList(ctx context.Context, recordID string) (*domain.BookList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record, err := s.BookLists.Get(ctx, recordID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get book list record: %w", err)
	}

	return record, nil
}

// UpdateBookList replaces a stored record wholesale.
func (s *Store) UpdateBookList(ctx context.Context, record *domain.BookList) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.BookLists.Update(ctx, record.ID, record); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update book list record: %w", err)
	}

	return nil
}

// DeleteBookList removes a record by ID. Idempotent.
func (s *Store) DeleteBookList(ctx context.Context, recordID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.BookLists.Delete(ctx, recordID); err != nil {
		return fmt.Errorf("delete book list record: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("book list record deleted", "record_id", recordID)
	}

	return nil
}

// ListBookLists returns every record, sorted by creation date descending
// (newest first), with optional skip/limit paging. A limit of 0 means no cap.
func (s *Store) ListBookLists(ctx context.Context, skip, limit int) ([]*domain.BookList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []*domain.BookList
	for record, err := range s.BookLists.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list book list records: %w", err)
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Tracking.CreatedDate.After(records[j].Tracking.CreatedDate)
	})

	return page(records, skip, limit), nil
}

// SearchBookLists returns records where the query appears as a
// case-insensitive substring of the title, author names, or series name.
// An empty query matches everything.
func (s *Store) SearchBookLists(ctx context.Context, query string, skip, limit int) ([]*domain.BookList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	needle := normalize.Key(query)

	var matches []*domain.BookList
	for record, err := range s.BookLists.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("search book list records: %w", err)
		}
		if needle == "" || recordMatches(record, needle) {
			matches = append(matches, record)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Tracking.CreatedDate.After(matches[j].Tracking.CreatedDate)
	})

	return page(matches, skip, limit), nil
}

func recordMatches(record *domain.BookList, needle string) bool {
	fields := []string{
		record.Title,
		record.AuthorFirstName,
		record.AuthorLastName,
		record.SeriesName,
	}
	for _, field := range fields {
		if strings.Contains(normalize.Key(field), needle) {
			return true
		}
	}
	return false
}

// FindByTitleAuthor returns every record whose normalized title and author
// last name both equal the given values. Records with an empty title or
// author last name never match, and neither do empty inputs. The record with
// ID excludeID is omitted; pass "" to include everything.
func (s *Store) FindByTitleAuthor(ctx context.Context, title, authorLastName, excludeID string) ([]*domain.BookList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !normalize.HasKey(title, authorLastName) {
		return nil, nil
	}

	titleKey := normalize.Key(title)
	authorKey := normalize.Key(authorLastName)

	var matches []*domain.BookList
	for record, err := range s.BookLists.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("scan book list records: %w", err)
		}
		if record.ID == excludeID {
			continue
		}
		if normalize.Key(record.Title) == titleKey && normalize.Key(record.AuthorLastName) == authorKey {
			matches = append(matches, record)
		}
	}

	return matches, nil
}

// FindBookListsByISBN returns every record stored under the given ISBN,
// resolved through the secondary index rather than a full scan.
func (s *Store) FindBookListsByISBN(ctx context.Context, isbn string) ([]*domain.BookList, error) {
	records, err := s.BookLists.FindByIndex(ctx, "isbn", isbn)
	if err != nil {
		return nil, fmt.Errorf("find book list records by isbn: %w", err)
	}
	return records, nil
}

// CountBookLists returns the total number of stored records.
func (s *Store) CountBookLists(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	for _, err := range s.BookLists.List(ctx) {
		if err != nil {
			return 0, fmt.Errorf("count book list records: %w", err)
		}
		count++
	}
	return count, nil
}

// page applies skip/limit to an already-sorted slice.
func page[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
