// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application
// drives external systems.
package secondary

import "context"

// HelpRequestRepository defines the secondary port for help request
// persistence. Terminal transitions are compare-and-swap on status so that
// exactly one of resolve/timeout ever wins on a record.
type HelpRequestRepository interface {
	// Create persists a new pending help request.
	Create(ctx context.Context, request *HelpRequestRecord) error

	// GetByID retrieves a help request by its ID.
	GetByID(ctx context.Context, id string) (*HelpRequestRecord, error)

	// List retrieves help requests matching the given filters, newest
	// created first.
	List(ctx context.Context, filters HelpRequestFilters) ([]*HelpRequestRecord, error)

	// MarkResolved transitions a request to resolved only if it is still
	// pending. Returns false when the record exists but the swap lost
	// (already terminal) or the id is unknown.
	MarkResolved(ctx context.Context, resolution ResolutionRecord) (bool, error)

	// MarkTimedOut transitions a request to timeout only if it is still
	// pending. Returns false when the swap lost or the id is unknown.
	MarkTimedOut(ctx context.Context, id string) (bool, error)

	// Reopen reverts a resolved request back to pending, clearing the
	// resolution fields. Used to roll back a resolve whose knowledge
	// commit failed.
	Reopen(ctx context.Context, id string) error
}

// HelpRequestRecord represents a help request as stored in persistence.
// Empty string means null for optional fields.
type HelpRequestRecord struct {
	ID              string
	Question        string
	CustomerName    string
	CustomerPhone   string
	Channel         string
	Status          string // pending, resolved, timeout
	Answer          string
	SupervisorName  string
	SupervisorNotes string
	CreatedAt       string
	UpdatedAt       string
	ResolvedAt      string
	TimedOutAt      string
}

// HelpRequestFilters contains filter options for querying help requests.
type HelpRequestFilters struct {
	Status string // Empty matches every status
}

// ResolutionRecord carries the fields written by a resolve transition.
type ResolutionRecord struct {
	ID              string
	Answer          string
	SupervisorName  string
	SupervisorNotes string
}

// KnowledgeRepository defines the secondary port for knowledge entry
// persistence. Writes are whole-record replace-by-id; the uniqueness of
// the normalized question is enforced at commit.
type KnowledgeRepository interface {
	// Create persists a new knowledge entry. Returns a ConflictError when
	// another entry already holds the same normalized question.
	Create(ctx context.Context, entry *KnowledgeEntryRecord) error

	// Update replaces an existing entry by ID and bumps updated_at.
	Update(ctx context.Context, entry *KnowledgeEntryRecord) error

	// GetByID retrieves a knowledge entry by its ID.
	GetByID(ctx context.Context, id string) (*KnowledgeEntryRecord, error)

	// GetByNormalizedQuestion retrieves the entry holding the given dedup
	// key, or a NotFoundError.
	GetByNormalizedQuestion(ctx context.Context, key string) (*KnowledgeEntryRecord, error)

	// List retrieves all knowledge entries, newest updated first.
	List(ctx context.Context) ([]*KnowledgeEntryRecord, error)
}

// KnowledgeEntryRecord represents a knowledge entry as stored in
// persistence.
type KnowledgeEntryRecord struct {
	ID                 string
	Question           string
	NormalizedQuestion string
	Answer             string
	Tags               []string
	Source             string // seed, human, ai
	CreatedAt          string
	UpdatedAt          string
}
