package agent

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/salondesk/internal/core/fault"
	"github.com/example/salondesk/internal/ports/primary"
)

// fakeRequestService implements primary.HelpRequestService with a single
// scripted record. Only the operations the poller touches do real work.
type fakeRequestService struct {
	mu           sync.Mutex
	record       *primary.HelpRequest
	gets         int
	timeoutCalls int

	// resolveAfter flips the record to resolved once this many reads have
	// happened. Zero means never.
	resolveAfter int

	// transientErrs makes the first N reads fail with a non-NotFound error.
	transientErrs int
}

func newFakeRequestService(id string) *fakeRequestService {
	return &fakeRequestService{
		record: &primary.HelpRequest{
			ID:       id,
			Question: "What are your hours?",
			Status:   primary.HelpRequestStatusPending,
		},
	}
}

func (f *fakeRequestService) GetHelpRequest(ctx context.Context, requestID string) (*primary.HelpRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.transientErrs > 0 {
		f.transientErrs--
		return nil, errors.New("store hiccup")
	}
	if requestID != f.record.ID {
		return nil, &fault.NotFoundError{Kind: "help request", ID: requestID}
	}
	if f.resolveAfter > 0 && f.gets >= f.resolveAfter && f.record.Status == primary.HelpRequestStatusPending {
		f.record.Status = primary.HelpRequestStatusResolved
		f.record.Answer = "9-6 Mon-Sat"
		f.record.ResolvedAt = "2026-01-01T00:00:10Z"
	}
	record := *f.record
	return &record, nil
}

func (f *fakeRequestService) TimeoutHelpRequest(ctx context.Context, requestID string) (*primary.HelpRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timeoutCalls++
	if requestID != f.record.ID {
		return nil, &fault.NotFoundError{Kind: "help request", ID: requestID}
	}
	if f.record.Status == primary.HelpRequestStatusPending {
		f.record.Status = primary.HelpRequestStatusTimeout
		f.record.TimedOutAt = "2026-01-01T00:03:00Z"
	}
	record := *f.record
	return &record, nil
}

func (f *fakeRequestService) CreateHelpRequest(ctx context.Context, req primary.CreateHelpRequestRequest) (*primary.CreateHelpRequestResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRequestService) ListHelpRequests(ctx context.Context, filters primary.HelpRequestFilters) ([]*primary.HelpRequest, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRequestService) ResolveHelpRequest(ctx context.Context, req primary.ResolveHelpRequestRequest) (*primary.HelpRequest, error) {
	return nil, errors.New("not implemented")
}

func TestPoller_ReturnsWhenResolved(t *testing.T) {
	svc := newFakeRequestService("REQ-1")
	svc.resolveAfter = 3
	poller := NewPoller(svc, time.Millisecond, time.Second)

	record, err := poller.Await(context.Background(), "REQ-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if record.Status != primary.HelpRequestStatusResolved {
		t.Errorf("expected status 'resolved', got %q", record.Status)
	}
	if record.Answer != "9-6 Mon-Sat" {
		t.Errorf("expected answer, got %q", record.Answer)
	}
	if svc.timeoutCalls != 0 {
		t.Errorf("expected no timeout call, got %d", svc.timeoutCalls)
	}
}

func TestPoller_ProvokesTimeoutAtDeadline(t *testing.T) {
	svc := newFakeRequestService("REQ-1")
	poller := NewPoller(svc, time.Millisecond, 10*time.Millisecond)

	record, err := poller.Await(context.Background(), "REQ-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if record.Status != primary.HelpRequestStatusTimeout {
		t.Errorf("expected status 'timeout', got %q", record.Status)
	}
	if svc.timeoutCalls != 1 {
		t.Errorf("expected exactly one timeout call, got %d", svc.timeoutCalls)
	}
}

func TestPoller_DeadlineLosesToLateResolve(t *testing.T) {
	// The deadline has already elapsed, but the read on the same iteration
	// sees the record resolved. The poller must hand back the resolved
	// record, not force a timeout.
	svc := newFakeRequestService("REQ-1")
	svc.resolveAfter = 1
	poller := NewPoller(svc, time.Millisecond, time.Second)
	poller.deadline = 0 // already elapsed on the first iteration

	record, err := poller.Await(context.Background(), "REQ-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if record.Status != primary.HelpRequestStatusResolved {
		t.Errorf("expected status 'resolved', got %q", record.Status)
	}
	if svc.timeoutCalls != 0 {
		t.Errorf("expected no timeout call, got %d", svc.timeoutCalls)
	}
}

func TestPoller_RetriesTransientErrors(t *testing.T) {
	svc := newFakeRequestService("REQ-1")
	svc.transientErrs = 3
	svc.resolveAfter = 4
	poller := NewPoller(svc, time.Millisecond, time.Second)

	record, err := poller.Await(context.Background(), "REQ-1")
	if err != nil {
		t.Fatalf("expected transient errors to be retried, got %v", err)
	}
	if record.Status != primary.HelpRequestStatusResolved {
		t.Errorf("expected status 'resolved', got %q", record.Status)
	}
}

func TestPoller_UnknownIDFailsImmediately(t *testing.T) {
	svc := newFakeRequestService("REQ-1")
	poller := NewPoller(svc, time.Millisecond, time.Second)

	_, err := poller.Await(context.Background(), "REQ-missing")
	if !fault.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if svc.gets != 1 {
		t.Errorf("expected a single read, got %d", svc.gets)
	}
	if svc.timeoutCalls != 0 {
		t.Errorf("expected no timeout call, got %d", svc.timeoutCalls)
	}
}

func TestPoller_CancelStopsWithoutMutating(t *testing.T) {
	svc := newFakeRequestService("REQ-1")
	poller := NewPoller(svc, 50*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := poller.Await(ctx, "REQ-1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if svc.record.Status != primary.HelpRequestStatusPending {
		t.Errorf("expected record untouched, got status %q", svc.record.Status)
	}
	if svc.timeoutCalls != 0 {
		t.Errorf("expected no timeout call, got %d", svc.timeoutCalls)
	}
}

func TestNewPoller_Defaults(t *testing.T) {
	poller := NewPoller(newFakeRequestService("REQ-1"), 0, -1)
	if poller.interval != DefaultPollInterval {
		t.Errorf("expected default interval, got %v", poller.interval)
	}
	if poller.deadline != DefaultPollDeadline {
		t.Errorf("expected default deadline, got %v", poller.deadline)
	}
}
