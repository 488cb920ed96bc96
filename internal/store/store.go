package store

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/booknest/booknest-server/internal/domain"
	"github.com/booknest/booknest-server/internal/normalize"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Generic entities
	BookLists *Entity[domain.BookList]
	Feedback  *Entity[domain.Feedback]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	// Initialize generic entities
	store.initBookLists()
	store.initFeedback()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// initBookLists initializes the BookLists entity on the store.
// Records are indexed by ISBN (advisory, non-unique) so metadata-sourced
// entries can be located without a full scan.
func (s *Store) initBookLists() {
	s.BookLists = NewEntity[domain.BookList](s, "booklist:").
		WithIndexTransform("isbn",
			func(b *domain.BookList) []string {
				if b.ISBN == "" {
					return nil
				}
				return []string{normalize.Key(b.ISBN)}
			},
			normalize.Key,
		)
}

// initFeedback initializes the Feedback entity on the store.
func (s *Store) initFeedback() {
	s.Feedback = NewEntity[domain.Feedback](s, "feedback:")
}
