package primary

import "context"

// KnowledgeService defines the primary port for knowledge base operations.
type KnowledgeService interface {
	// GetEntry retrieves a knowledge entry by ID.
	GetEntry(ctx context.Context, entryID string) (*KnowledgeEntry, error)

	// ListEntries lists all knowledge entries, newest updated first.
	ListEntries(ctx context.Context) ([]*KnowledgeEntry, error)

	// SearchKnowledge scores entries against a free-text query. An empty
	// query returns the plain listing truncated to the limit.
	SearchKnowledge(ctx context.Context, req SearchKnowledgeRequest) ([]*KnowledgeMatch, error)

	// UpsertEntry creates a knowledge entry or merges into the existing one
	// with the same normalized question. This is the sole write path into
	// the knowledge store.
	UpsertEntry(ctx context.Context, req UpsertKnowledgeRequest) (*KnowledgeEntry, error)
}

// KnowledgeEntry represents a canonical question/answer pair at the port
// boundary.
type KnowledgeEntry struct {
	ID        string
	Question  string
	Answer    string
	Tags      []string
	Source    string // 'seed', 'human', 'ai' - informational only
	CreatedAt string
	UpdatedAt string
}

// KnowledgeMatch pairs an entry with its lexical match score. Score is
// zero for listing results (empty query).
type KnowledgeMatch struct {
	Entry *KnowledgeEntry
	Score float64
}

// SearchKnowledgeRequest contains the input for a knowledge search.
type SearchKnowledgeRequest struct {
	Query string
	Limit int // Zero means DefaultSearchLimit
}

// UpsertKnowledgeRequest contains the input for a knowledge upsert.
// Empty Tags and Source mean "leave unchanged" when merging; a merge
// never clears fields implicitly.
type UpsertKnowledgeRequest struct {
	Question string
	Answer   string
	Tags     []string
	Source   string
}

// Knowledge source constants
const (
	KnowledgeSourceSeed  = "seed"
	KnowledgeSourceHuman = "human"
	KnowledgeSourceAI    = "ai"
)

// DefaultSearchLimit caps search results when the caller does not supply
// a limit.
const DefaultSearchLimit = 5
