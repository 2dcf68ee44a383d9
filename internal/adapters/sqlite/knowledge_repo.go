package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/example/salondesk/internal/core/fault"
	"github.com/example/salondesk/internal/ports/secondary"
)

// KnowledgeRepository implements secondary.KnowledgeRepository with SQLite.
// The normalized_question column carries a UNIQUE constraint, so a racing
// create for the same key fails with a ConflictError instead of
// duplicating the entry.
type KnowledgeRepository struct {
	db *sql.DB
}

// NewKnowledgeRepository creates a new SQLite knowledge repository.
func NewKnowledgeRepository(db *sql.DB) *KnowledgeRepository {
	return &KnowledgeRepository{db: db}
}

// Create persists a new knowledge entry.
func (r *KnowledgeRepository) Create(ctx context.Context, entry *secondary.KnowledgeEntryRecord) error {
	tags, err := encodeTags(entry.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO knowledge_entries (id, question, normalized_question, answer, tags, source) VALUES (?, ?, ?, ?, ?, ?)",
		entry.ID, entry.Question, entry.NormalizedQuestion, entry.Answer, tags, entry.Source,
	)
	if isConstraintViolation(err) {
		return &fault.ConflictError{Op: "create knowledge entry"}
	}
	if err != nil {
		return &fault.StoreUnavailableError{Op: "create knowledge entry", Err: err}
	}
	return nil
}

// Update replaces an existing entry by ID and bumps updated_at.
func (r *KnowledgeRepository) Update(ctx context.Context, entry *secondary.KnowledgeEntryRecord) error {
	tags, err := encodeTags(entry.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE knowledge_entries
		SET question = ?, normalized_question = ?, answer = ?, tags = ?, source = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		entry.Question, entry.NormalizedQuestion, entry.Answer, tags, entry.Source, entry.ID,
	)
	if isConstraintViolation(err) {
		return &fault.ConflictError{Op: "update knowledge entry"}
	}
	if err != nil {
		return &fault.StoreUnavailableError{Op: "update knowledge entry", Err: err}
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return &fault.NotFoundError{Kind: "knowledge entry", ID: entry.ID}
	}
	return nil
}

const knowledgeColumns = "id, question, normalized_question, answer, tags, source, created_at, updated_at"

// GetByID retrieves a knowledge entry by its ID.
func (r *KnowledgeRepository) GetByID(ctx context.Context, id string) (*secondary.KnowledgeEntryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+knowledgeColumns+" FROM knowledge_entries WHERE id = ?",
		id,
	)

	record, err := scanKnowledgeEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &fault.NotFoundError{Kind: "knowledge entry", ID: id}
	}
	if err != nil {
		return nil, &fault.StoreUnavailableError{Op: "get knowledge entry", Err: err}
	}
	return record, nil
}

// GetByNormalizedQuestion retrieves the entry holding the given dedup key.
func (r *KnowledgeRepository) GetByNormalizedQuestion(ctx context.Context, key string) (*secondary.KnowledgeEntryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+knowledgeColumns+" FROM knowledge_entries WHERE normalized_question = ?",
		key,
	)

	record, err := scanKnowledgeEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &fault.NotFoundError{Kind: "knowledge entry", ID: key}
	}
	if err != nil {
		return nil, &fault.StoreUnavailableError{Op: "get knowledge entry by question", Err: err}
	}
	return record, nil
}

// List retrieves all knowledge entries, newest updated first.
func (r *KnowledgeRepository) List(ctx context.Context) ([]*secondary.KnowledgeEntryRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+knowledgeColumns+" FROM knowledge_entries ORDER BY updated_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, &fault.StoreUnavailableError{Op: "list knowledge entries", Err: err}
	}
	defer rows.Close()

	var entries []*secondary.KnowledgeEntryRecord
	for rows.Next() {
		record, err := scanKnowledgeEntry(rows.Scan)
		if err != nil {
			return nil, &fault.StoreUnavailableError{Op: "scan knowledge entry", Err: err}
		}
		entries = append(entries, record)
	}
	if err := rows.Err(); err != nil {
		return nil, &fault.StoreUnavailableError{Op: "list knowledge entries", Err: err}
	}

	return entries, nil
}

func scanKnowledgeEntry(scan func(...any) error) (*secondary.KnowledgeEntryRecord, error) {
	var (
		tags      string
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.KnowledgeEntryRecord{}
	err := scan(&record.ID, &record.Question, &record.NormalizedQuestion, &record.Answer, &tags, &record.Source,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &record.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// encodeTags stores tags as a JSON array; nil becomes the empty array so
// the column is never NULL.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

// Ensure KnowledgeRepository implements the interface
var _ secondary.KnowledgeRepository = (*KnowledgeRepository)(nil)
