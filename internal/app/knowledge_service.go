package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/example/salondesk/internal/core/fault"
	"github.com/example/salondesk/internal/core/knowledge"
	"github.com/example/salondesk/internal/ports/primary"
	"github.com/example/salondesk/internal/ports/secondary"
)

// KnowledgeServiceImpl implements the KnowledgeService interface.
//
// Upserts hold a mutex across the find-merge-commit sequence so two
// concurrent upserts for the same normalized question serialize into one
// create plus one merge, never two creates. The store's uniqueness
// constraint backstops writers outside this process; a conflict there is
// retried once as a merge.
type KnowledgeServiceImpl struct {
	knowledgeRepo secondary.KnowledgeRepository

	mu sync.Mutex // guards the upsert find-or-create sequence
}

// NewKnowledgeService creates a new KnowledgeService with injected
// dependencies.
func NewKnowledgeService(knowledgeRepo secondary.KnowledgeRepository) *KnowledgeServiceImpl {
	return &KnowledgeServiceImpl{
		knowledgeRepo: knowledgeRepo,
	}
}

// GetEntry retrieves a knowledge entry by ID.
func (s *KnowledgeServiceImpl) GetEntry(ctx context.Context, entryID string) (*primary.KnowledgeEntry, error) {
	record, err := s.knowledgeRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return s.recordToEntry(record), nil
}

// ListEntries lists all knowledge entries, newest updated first.
func (s *KnowledgeServiceImpl) ListEntries(ctx context.Context) ([]*primary.KnowledgeEntry, error) {
	records, err := s.knowledgeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge entries: %w", err)
	}

	entries := make([]*primary.KnowledgeEntry, len(records))
	for i, r := range records {
		entries[i] = s.recordToEntry(r)
	}
	return entries, nil
}

// SearchKnowledge scores entries against a free-text query and returns the
// best matches. An empty query returns the plain listing truncated to the
// limit, with zero scores.
func (s *KnowledgeServiceImpl) SearchKnowledge(ctx context.Context, req primary.SearchKnowledgeRequest) ([]*primary.KnowledgeMatch, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = primary.DefaultSearchLimit
	}

	records, err := s.knowledgeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search knowledge entries: %w", err)
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		if len(records) > limit {
			records = records[:limit]
		}
		matches := make([]*primary.KnowledgeMatch, len(records))
		for i, r := range records {
			matches[i] = &primary.KnowledgeMatch{Entry: s.recordToEntry(r)}
		}
		return matches, nil
	}

	candidates := make([]knowledge.Candidate, len(records))
	for i, r := range records {
		candidates[i] = knowledge.Candidate{
			Question: r.Question,
			Answer:   r.Answer,
			Tags:     r.Tags,
		}
	}

	ranked := knowledge.Rank(candidates, query, limit)
	matches := make([]*primary.KnowledgeMatch, len(ranked))
	for i, m := range ranked {
		matches[i] = &primary.KnowledgeMatch{
			Entry: s.recordToEntry(records[m.Index]),
			Score: m.Score,
		}
	}
	return matches, nil
}

// UpsertEntry creates a knowledge entry or merges into the existing one
// holding the same normalized question. Repeated identical calls update
// the same entry; they never duplicate it.
func (s *KnowledgeServiceImpl) UpsertEntry(ctx context.Context, req primary.UpsertKnowledgeRequest) (*primary.KnowledgeEntry, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, &fault.ValidationError{Field: "question", Reason: "must not be empty"}
	}
	answer := strings.TrimSpace(req.Answer)
	if answer == "" {
		return nil, &fault.ValidationError{Field: "answer", Reason: "must not be empty"}
	}
	if err := validSource(req.Source); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.commitUpsert(ctx, question, answer, req)
	if fault.IsConflict(err) {
		// Another writer created the entry between our lookup and commit.
		// The retry finds it and merges.
		record, err = s.commitUpsert(ctx, question, answer, req)
	}
	if err != nil {
		return nil, err
	}

	committed, err := s.knowledgeRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upserted knowledge entry: %w", err)
	}
	return s.recordToEntry(committed), nil
}

// commitUpsert runs one find-or-create pass and returns the record that
// was written.
func (s *KnowledgeServiceImpl) commitUpsert(ctx context.Context, question, answer string, req primary.UpsertKnowledgeRequest) (*secondary.KnowledgeEntryRecord, error) {
	key := knowledge.Normalize(question)

	existing, err := s.knowledgeRepo.GetByNormalizedQuestion(ctx, key)
	if err != nil && !fault.IsNotFound(err) {
		return nil, fmt.Errorf("failed to look up knowledge entry: %w", err)
	}

	if existing == nil {
		source := req.Source
		if source == "" {
			source = primary.KnowledgeSourceHuman
		}
		record := &secondary.KnowledgeEntryRecord{
			ID:                 uuid.NewString(),
			Question:           question,
			NormalizedQuestion: key,
			Answer:             answer,
			Tags:               append([]string(nil), req.Tags...),
			Source:             source,
		}
		if err := s.knowledgeRepo.Create(ctx, record); err != nil {
			return nil, err
		}
		return record, nil
	}

	// Merge in place: answer always replaces, tags and source only when
	// explicitly supplied. A merge never clears fields implicitly.
	existing.Answer = answer
	if len(req.Tags) > 0 {
		existing.Tags = append([]string(nil), req.Tags...)
	}
	if req.Source != "" {
		existing.Source = req.Source
	}
	if err := s.knowledgeRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update knowledge entry: %w", err)
	}
	return existing, nil
}

func validSource(source string) error {
	switch source {
	case "", primary.KnowledgeSourceSeed, primary.KnowledgeSourceHuman, primary.KnowledgeSourceAI:
		return nil
	}
	return &fault.ValidationError{Field: "source", Reason: "must be seed, human, or ai"}
}

// Helper methods

func (s *KnowledgeServiceImpl) recordToEntry(r *secondary.KnowledgeEntryRecord) *primary.KnowledgeEntry {
	return &primary.KnowledgeEntry{
		ID:        r.ID,
		Question:  r.Question,
		Answer:    r.Answer,
		Tags:      append([]string(nil), r.Tags...),
		Source:    r.Source,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Ensure KnowledgeServiceImpl implements the interface
var _ primary.KnowledgeService = (*KnowledgeServiceImpl)(nil)
