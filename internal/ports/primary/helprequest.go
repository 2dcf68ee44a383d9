package primary

import "context"

// HelpRequestService defines the primary port for the escalation lifecycle.
type HelpRequestService interface {
	// CreateHelpRequest opens a new pending escalation for a caller question.
	CreateHelpRequest(ctx context.Context, req CreateHelpRequestRequest) (*CreateHelpRequestResponse, error)

	// GetHelpRequest retrieves a help request by ID.
	GetHelpRequest(ctx context.Context, requestID string) (*HelpRequest, error)

	// ListHelpRequests lists help requests, newest first, with an optional
	// status filter (pending, resolved, timeout, or all).
	ListHelpRequests(ctx context.Context, filters HelpRequestFilters) ([]*HelpRequest, error)

	// ResolveHelpRequest records a supervisor's answer on a pending request
	// and, unless learning is disabled, folds the answer into the knowledge
	// base as a single logical commit.
	ResolveHelpRequest(ctx context.Context, req ResolveHelpRequestRequest) (*HelpRequest, error)

	// TimeoutHelpRequest moves a pending request to timeout. Already
	// terminal requests are returned unchanged; timeout never overwrites a
	// resolve.
	TimeoutHelpRequest(ctx context.Context, requestID string) (*HelpRequest, error)
}

// HelpRequest represents a caller escalation at the port boundary.
type HelpRequest struct {
	ID              string
	Question        string
	CustomerName    string // May be empty
	CustomerPhone   string // May be empty
	Channel         string // May be empty
	Status          string // 'pending', 'resolved', 'timeout'
	Answer          string // Set only on resolved
	SupervisorName  string // Set only on resolved
	SupervisorNotes string // Set only on resolved
	CreatedAt       string
	UpdatedAt       string
	ResolvedAt      string // Mutually exclusive with TimedOutAt
	TimedOutAt      string // Mutually exclusive with ResolvedAt
}

// CreateHelpRequestRequest contains the input for creating a help request.
type CreateHelpRequestRequest struct {
	Question      string
	CustomerName  string
	CustomerPhone string
	Channel       string
}

// CreateHelpRequestResponse contains the result of creating a help request.
type CreateHelpRequestResponse struct {
	RequestID string
	Request   *HelpRequest
}

// ResolveHelpRequestRequest contains the input for resolving a help request.
// Learn nil means "use the configured default" (normally: learn).
type ResolveHelpRequestRequest struct {
	RequestID       string
	Answer          string
	SupervisorName  string
	SupervisorNotes string
	Tags            []string
	Learn           *bool
}

// HelpRequestFilters contains filter options for listing help requests.
type HelpRequestFilters struct {
	Status string // Empty or "all" matches every status
}

// Help request status constants
const (
	HelpRequestStatusPending  = "pending"
	HelpRequestStatusResolved = "resolved"
	HelpRequestStatusTimeout  = "timeout"
)
