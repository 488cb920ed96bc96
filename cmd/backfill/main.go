// Command backfill recomputes the duplicate flag for every stored book
// record in one pass. Run it after importing records from another system or
// after the flag logic changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/booknest/booknest-server/internal/domain"
	"github.com/booknest/booknest-server/internal/logger"
	"github.com/booknest/booknest-server/internal/normalize"
	"github.com/booknest/booknest-server/internal/store"
)

func main() {
	dataPath := flag.String("data-path", "", "Base path for the document store (default: ~/BookNest/data)")
	dryRun := flag.Bool("dry-run", false, "Report changes without writing them")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(*logLevel),
		Environment: "development",
	})

	path := *dataPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal("Failed to resolve home directory", "error", err)
		}
		path = filepath.Join(home, "BookNest", "data")
	}

	st, err := store.New(filepath.Join(path, "db"), log.Logger)
	if err != nil {
		log.Fatal("Failed to open store", "error", err)
	}
	defer st.Close()

	ctx := context.Background()

	total, err := st.CountBookLists(ctx)
	if err != nil {
		log.Fatal("Failed to count records", "error", err)
	}

	updated, err := run(ctx, st, log.Logger, *dryRun)
	if err != nil {
		log.Fatal("Backfill failed", "error", err)
	}

	log.Info("Backfill complete",
		"records_scanned", total,
		"records_updated", updated,
		"dry_run", *dryRun,
	)
}

// run scans the whole collection once, counts records per duplicate key,
// and rewrites every record whose flag disagrees with the count.
func run(ctx context.Context, st *store.Store, log *slog.Logger, dryRun bool) (int, error) {
	records, err := st.ListBookLists(ctx, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("list records: %w", err)
	}

	keyCounts := make(map[string]int)
	for _, record := range records {
		if !normalize.HasKey(record.Title, record.AuthorLastName) {
			continue
		}
		keyCounts[recordKey(record)]++
	}

	updated := 0
	for _, record := range records {
		want := false
		if normalize.HasKey(record.Title, record.AuthorLastName) {
			want = keyCounts[recordKey(record)] > 1
		}

		if record.IsPotentialDuplicate == want {
			continue
		}

		log.Info("flag out of date",
			"record_id", record.ID,
			"title", record.Title,
			"current", record.IsPotentialDuplicate,
			"want", want,
		)

		if dryRun {
			updated++
			continue
		}

		record.IsPotentialDuplicate = want
		if err := st.UpdateBookList(ctx, record); err != nil {
			return updated, fmt.Errorf("update record %s: %w", record.ID, err)
		}
		updated++
	}

	return updated, nil
}

func recordKey(record *domain.BookList) string {
	return normalize.Key(record.Title) + "|" + normalize.Key(record.AuthorLastName)
}
