package sqlite_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/example/salondesk/internal/adapters/sqlite"
	"github.com/example/salondesk/internal/core/fault"
	"github.com/example/salondesk/internal/ports/secondary"
)

func TestKnowledgeRepository_CreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewKnowledgeRepository(database)
	ctx := context.Background()

	err := repo.Create(ctx, &secondary.KnowledgeEntryRecord{
		ID:                 "KB-001",
		Question:           "What are your hours?",
		NormalizedQuestion: "what are your hours?",
		Answer:             "9-6 Mon-Sat",
		Tags:               []string{"hours", "basics"},
		Source:             "seed",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	record, err := repo.GetByID(ctx, "KB-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.Question != "What are your hours?" || record.Answer != "9-6 Mon-Sat" {
		t.Errorf("fields not round-tripped: %+v", record)
	}
	if !reflect.DeepEqual(record.Tags, []string{"hours", "basics"}) {
		t.Errorf("expected tags round-tripped, got %v", record.Tags)
	}
	if record.Source != "seed" {
		t.Errorf("expected source 'seed', got %q", record.Source)
	}
	if record.CreatedAt == "" || record.UpdatedAt == "" {
		t.Error("expected timestamps")
	}
}

func TestKnowledgeRepository_NilTagsStoredAsEmpty(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewKnowledgeRepository(database)
	ctx := context.Background()

	err := repo.Create(ctx, &secondary.KnowledgeEntryRecord{
		ID:                 "KB-001",
		Question:           "Where are you?",
		NormalizedQuestion: "where are you?",
		Answer:             "123 Main St",
		Source:             "human",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	record, err := repo.GetByID(ctx, "KB-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(record.Tags) != 0 {
		t.Errorf("expected no tags, got %v", record.Tags)
	}
}

func TestKnowledgeRepository_Create_DuplicateKeyConflicts(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewKnowledgeRepository(database)
	ctx := context.Background()

	createTestEntry(t, repo, ctx, "KB-001", "What are your hours?", "what are your hours?")

	err := repo.Create(ctx, &secondary.KnowledgeEntryRecord{
		ID:                 "KB-002",
		Question:           "what ARE your hours?",
		NormalizedQuestion: "what are your hours?",
		Answer:             "a different answer",
		Source:             "human",
	})
	if !fault.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestKnowledgeRepository_GetByNormalizedQuestion(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewKnowledgeRepository(database)
	ctx := context.Background()

	createTestEntry(t, repo, ctx, "KB-001", "What are your hours?", "what are your hours?")

	record, err := repo.GetByNormalizedQuestion(ctx, "what are your hours?")
	if err != nil {
		t.Fatalf("GetByNormalizedQuestion failed: %v", err)
	}
	if record.ID != "KB-001" {
		t.Errorf("expected KB-001, got %s", record.ID)
	}

	if _, err := repo.GetByNormalizedQuestion(ctx, "unknown key"); !fault.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestKnowledgeRepository_Update(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewKnowledgeRepository(database)
	ctx := context.Background()

	createTestEntry(t, repo, ctx, "KB-001", "What are your hours?", "what are your hours?")

	entry, err := repo.GetByID(ctx, "KB-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	entry.Answer = "9-7 now, closed Sundays"
	entry.Tags = []string{"hours", "updated"}
	entry.Source = "human"

	if err := repo.Update(ctx, entry); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	updated, err := repo.GetByID(ctx, "KB-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if updated.Answer != "9-7 now, closed Sundays" {
		t.Errorf("expected answer replaced, got %q", updated.Answer)
	}
	if !reflect.DeepEqual(updated.Tags, []string{"hours", "updated"}) {
		t.Errorf("expected tags replaced, got %v", updated.Tags)
	}
	if updated.Source != "human" {
		t.Errorf("expected source replaced, got %q", updated.Source)
	}
	if updated.CreatedAt != entry.CreatedAt {
		t.Error("expected createdAt untouched by update")
	}
}

func TestKnowledgeRepository_Update_NotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewKnowledgeRepository(database)
	ctx := context.Background()

	err := repo.Update(ctx, &secondary.KnowledgeEntryRecord{
		ID:                 "KB-missing",
		Question:           "q?",
		NormalizedQuestion: "q?",
		Answer:             "a",
		Source:             "human",
	})
	if !fault.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestKnowledgeRepository_List(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewKnowledgeRepository(database)
	ctx := context.Background()

	createTestEntry(t, repo, ctx, "KB-001", "First?", "first?")
	createTestEntry(t, repo, ctx, "KB-002", "Second?", "second?")
	createTestEntry(t, repo, ctx, "KB-003", "Third?", "third?")

	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Same-second timestamps fall back to rowid, newest insert first.
	if entries[0].ID != "KB-003" {
		t.Errorf("expected newest first, got %s", entries[0].ID)
	}
}

func TestKnowledgeRepository_GetByID_NotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewKnowledgeRepository(database)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "KB-missing"); !fault.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}
