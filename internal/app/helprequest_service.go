package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/salondesk/internal/core/fault"
	"github.com/example/salondesk/internal/core/helprequest"
	"github.com/example/salondesk/internal/ports/primary"
	"github.com/example/salondesk/internal/ports/secondary"
)

// HelpRequestServiceImpl implements the HelpRequestService interface.
// Terminal transitions are delegated to the repository's compare-and-swap
// methods so that racing resolve/timeout calls on the same record settle
// into exactly one winner.
type HelpRequestServiceImpl struct {
	requestRepo    secondary.HelpRequestRepository
	knowledge      primary.KnowledgeService
	learnByDefault bool
}

// NewHelpRequestService creates a new HelpRequestService with injected
// dependencies. learnByDefault decides whether a resolve without an
// explicit learn flag feeds the knowledge base.
func NewHelpRequestService(
	requestRepo secondary.HelpRequestRepository,
	knowledge primary.KnowledgeService,
	learnByDefault bool,
) *HelpRequestServiceImpl {
	return &HelpRequestServiceImpl{
		requestRepo:    requestRepo,
		knowledge:      knowledge,
		learnByDefault: learnByDefault,
	}
}

// CreateHelpRequest creates a new pending help request.
func (s *HelpRequestServiceImpl) CreateHelpRequest(ctx context.Context, req primary.CreateHelpRequestRequest) (*primary.CreateHelpRequestResponse, error) {
	question, err := helprequest.ValidQuestion(req.Question)
	if err != nil {
		return nil, err
	}

	record := &secondary.HelpRequestRecord{
		ID:            uuid.NewString(),
		Question:      question,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Channel:       req.Channel,
		Status:        helprequest.StatusPending,
	}

	if err := s.requestRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create help request: %w", err)
	}

	created, err := s.requestRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created help request: %w", err)
	}

	return &primary.CreateHelpRequestResponse{
		RequestID: created.ID,
		Request:   s.recordToHelpRequest(created),
	}, nil
}

// GetHelpRequest retrieves a help request by ID.
func (s *HelpRequestServiceImpl) GetHelpRequest(ctx context.Context, requestID string) (*primary.HelpRequest, error) {
	record, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.recordToHelpRequest(record), nil
}

// ListHelpRequests lists help requests with an optional status filter,
// newest first.
func (s *HelpRequestServiceImpl) ListHelpRequests(ctx context.Context, filters primary.HelpRequestFilters) ([]*primary.HelpRequest, error) {
	if err := helprequest.ValidStatusFilter(filters.Status); err != nil {
		return nil, err
	}

	status := filters.Status
	if status == "all" {
		status = ""
	}

	records, err := s.requestRepo.List(ctx, secondary.HelpRequestFilters{Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to list help requests: %w", err)
	}

	requests := make([]*primary.HelpRequest, len(records))
	for i, r := range records {
		requests[i] = s.recordToHelpRequest(r)
	}
	return requests, nil
}

// ResolveHelpRequest records a supervisor's answer on a pending request.
// When learning is on, the request transition and the knowledge upsert
// commit as one logical unit: a failed upsert reopens the request and
// fails the resolve.
func (s *HelpRequestServiceImpl) ResolveHelpRequest(ctx context.Context, req primary.ResolveHelpRequestRequest) (*primary.HelpRequest, error) {
	answer, err := helprequest.ValidAnswer(req.Answer)
	if err != nil {
		return nil, err
	}

	record, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}
	if err := helprequest.CanResolve(record.ID, record.Status); err != nil {
		return nil, err
	}

	won, err := s.requestRepo.MarkResolved(ctx, secondary.ResolutionRecord{
		ID:              req.RequestID,
		Answer:          answer,
		SupervisorName:  req.SupervisorName,
		SupervisorNotes: req.SupervisorNotes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve help request: %w", err)
	}
	if !won {
		// Lost the swap: someone resolved or timed out the record between
		// the guard check and the write.
		current, err := s.requestRepo.GetByID(ctx, req.RequestID)
		if err != nil {
			return nil, err
		}
		return nil, &fault.AlreadyTerminalError{ID: current.ID, Status: current.Status}
	}

	if s.shouldLearn(req.Learn) {
		_, err := s.knowledge.UpsertEntry(ctx, primary.UpsertKnowledgeRequest{
			Question: record.Question,
			Answer:   answer,
			Tags:     req.Tags,
			Source:   primary.KnowledgeSourceHuman,
		})
		if err != nil {
			if reopenErr := s.requestRepo.Reopen(ctx, req.RequestID); reopenErr != nil {
				return nil, fmt.Errorf("failed to record learned answer (and rollback failed: %v): %w", reopenErr, err)
			}
			return nil, fmt.Errorf("failed to record learned answer: %w", err)
		}
	}

	resolved, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resolved help request: %w", err)
	}
	return s.recordToHelpRequest(resolved), nil
}

// TimeoutHelpRequest moves a pending request to timeout. A request that is
// already terminal is returned unchanged: timeout is idempotent and loses
// any race against a prior resolve.
func (s *HelpRequestServiceImpl) TimeoutHelpRequest(ctx context.Context, requestID string) (*primary.HelpRequest, error) {
	won, err := s.requestRepo.MarkTimedOut(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to time out help request: %w", err)
	}

	record, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !won && !helprequest.IsTerminal(record.Status) {
		// The swap lost but the record is still pending: contention at the
		// store layer, safe for the caller to retry once.
		return nil, &fault.ConflictError{Op: "time out help request"}
	}
	return s.recordToHelpRequest(record), nil
}

func (s *HelpRequestServiceImpl) shouldLearn(learn *bool) bool {
	if learn == nil {
		return s.learnByDefault
	}
	return *learn
}

// Helper methods

func (s *HelpRequestServiceImpl) recordToHelpRequest(r *secondary.HelpRequestRecord) *primary.HelpRequest {
	return &primary.HelpRequest{
		ID:              r.ID,
		Question:        r.Question,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		Channel:         r.Channel,
		Status:          r.Status,
		Answer:          r.Answer,
		SupervisorName:  r.SupervisorName,
		SupervisorNotes: r.SupervisorNotes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		ResolvedAt:      r.ResolvedAt,
		TimedOutAt:      r.TimedOutAt,
	}
}

// Ensure HelpRequestServiceImpl implements the interface
var _ primary.HelpRequestService = (*HelpRequestServiceImpl)(nil)
