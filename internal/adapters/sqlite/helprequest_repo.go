// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/salondesk/internal/core/fault"
	"github.com/example/salondesk/internal/ports/secondary"
)

// HelpRequestRepository implements secondary.HelpRequestRepository with
// SQLite. Terminal transitions compare-and-swap on status in the UPDATE's
// WHERE clause, so exactly one of resolve/timeout ever wins a race.
type HelpRequestRepository struct {
	db *sql.DB
}

// NewHelpRequestRepository creates a new SQLite help request repository.
func NewHelpRequestRepository(db *sql.DB) *HelpRequestRepository {
	return &HelpRequestRepository{db: db}
}

// Create persists a new pending help request.
func (r *HelpRequestRepository) Create(ctx context.Context, request *secondary.HelpRequestRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO help_requests (id, question, customer_name, customer_phone, channel, status) VALUES (?, ?, ?, ?, ?, 'pending')",
		request.ID, request.Question, nullable(request.CustomerName), nullable(request.CustomerPhone), nullable(request.Channel),
	)
	if err != nil {
		return &fault.StoreUnavailableError{Op: "create help request", Err: err}
	}
	return nil
}

const helpRequestColumns = `id, question, customer_name, customer_phone, channel, status, answer,
	supervisor_name, supervisor_notes, created_at, updated_at, resolved_at, timed_out_at`

// GetByID retrieves a help request by its ID.
func (r *HelpRequestRepository) GetByID(ctx context.Context, id string) (*secondary.HelpRequestRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+helpRequestColumns+" FROM help_requests WHERE id = ?",
		id,
	)

	record, err := scanHelpRequest(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &fault.NotFoundError{Kind: "help request", ID: id}
	}
	if err != nil {
		return nil, &fault.StoreUnavailableError{Op: "get help request", Err: err}
	}
	return record, nil
}

// List retrieves help requests matching the given filters, newest created
// first.
func (r *HelpRequestRepository) List(ctx context.Context, filters secondary.HelpRequestFilters) ([]*secondary.HelpRequestRecord, error) {
	query := "SELECT " + helpRequestColumns + " FROM help_requests WHERE 1=1"
	args := []any{}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &fault.StoreUnavailableError{Op: "list help requests", Err: err}
	}
	defer rows.Close()

	var requests []*secondary.HelpRequestRecord
	for rows.Next() {
		record, err := scanHelpRequest(rows.Scan)
		if err != nil {
			return nil, &fault.StoreUnavailableError{Op: "scan help request", Err: err}
		}
		requests = append(requests, record)
	}
	if err := rows.Err(); err != nil {
		return nil, &fault.StoreUnavailableError{Op: "list help requests", Err: err}
	}

	return requests, nil
}

// MarkResolved transitions a request to resolved only if it is still
// pending. The status predicate in the WHERE clause is the swap: zero
// rows affected means the record is unknown or already terminal.
func (r *HelpRequestRepository) MarkResolved(ctx context.Context, resolution secondary.ResolutionRecord) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE help_requests
		SET status = 'resolved', answer = ?, supervisor_name = ?, supervisor_notes = ?,
			resolved_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'pending'`,
		resolution.Answer, nullable(resolution.SupervisorName), nullable(resolution.SupervisorNotes), resolution.ID,
	)
	if err != nil {
		return false, &fault.StoreUnavailableError{Op: "resolve help request", Err: err}
	}

	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

// MarkTimedOut transitions a request to timeout only if it is still
// pending.
func (r *HelpRequestRepository) MarkTimedOut(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE help_requests
		SET status = 'timeout', timed_out_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'pending'`,
		id,
	)
	if err != nil {
		return false, &fault.StoreUnavailableError{Op: "time out help request", Err: err}
	}

	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

// Reopen reverts a resolved request back to pending, clearing every
// resolution field. Only resolved records revert; a timed-out record has
// no learned answer to roll back.
func (r *HelpRequestRepository) Reopen(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE help_requests
		SET status = 'pending', answer = NULL, supervisor_name = NULL, supervisor_notes = NULL,
			resolved_at = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'resolved'`,
		id,
	)
	if err != nil {
		return &fault.StoreUnavailableError{Op: "reopen help request", Err: err}
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return &fault.NotFoundError{Kind: "help request", ID: id}
	}
	return nil
}

// scanHelpRequest reads one row through the given scan function.
func scanHelpRequest(scan func(...any) error) (*secondary.HelpRequestRecord, error) {
	var (
		customerName    sql.NullString
		customerPhone   sql.NullString
		channel         sql.NullString
		answer          sql.NullString
		supervisorName  sql.NullString
		supervisorNotes sql.NullString
		createdAt       time.Time
		updatedAt       time.Time
		resolvedAt      sql.NullTime
		timedOutAt      sql.NullTime
	)

	record := &secondary.HelpRequestRecord{}
	err := scan(&record.ID, &record.Question, &customerName, &customerPhone, &channel, &record.Status, &answer,
		&supervisorName, &supervisorNotes, &createdAt, &updatedAt, &resolvedAt, &timedOutAt)
	if err != nil {
		return nil, err
	}

	record.CustomerName = customerName.String
	record.CustomerPhone = customerPhone.String
	record.Channel = channel.String
	record.Answer = answer.String
	record.SupervisorName = supervisorName.String
	record.SupervisorNotes = supervisorNotes.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	if resolvedAt.Valid {
		record.ResolvedAt = resolvedAt.Time.Format(time.RFC3339)
	}
	if timedOutAt.Valid {
		record.TimedOutAt = timedOutAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// nullable maps empty strings to NULL columns.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure HelpRequestRepository implements the interface
var _ secondary.HelpRequestRepository = (*HelpRequestRepository)(nil)
