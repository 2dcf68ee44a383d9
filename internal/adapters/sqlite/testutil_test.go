package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/salondesk/internal/adapters/sqlite"
	"github.com/example/salondesk/internal/db"
	"github.com/example/salondesk/internal/ports/secondary"
)

// setupTestDB opens an in-memory database carrying the real schema, so a
// repository referencing a column that does not exist fails loudly here.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := database.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}

// createTestRequest creates a pending help request with the given ID.
func createTestRequest(t *testing.T, repo *sqlite.HelpRequestRepository, ctx context.Context, id, question string) {
	t.Helper()

	err := repo.Create(ctx, &secondary.HelpRequestRecord{
		ID:            id,
		Question:      question,
		CustomerPhone: "+15550100",
		Channel:       "voice",
	})
	if err != nil {
		t.Fatalf("failed to create help request: %v", err)
	}
}

// createTestEntry creates a knowledge entry with the given ID and question.
func createTestEntry(t *testing.T, repo *sqlite.KnowledgeRepository, ctx context.Context, id, question, normalized string) {
	t.Helper()

	err := repo.Create(ctx, &secondary.KnowledgeEntryRecord{
		ID:                 id,
		Question:           question,
		NormalizedQuestion: normalized,
		Answer:             "an answer",
		Tags:               []string{"test"},
		Source:             "seed",
	})
	if err != nil {
		t.Fatalf("failed to create knowledge entry: %v", err)
	}
}
