// Package agent implements the polling loop the conversational agent runs
// against the escalation lifecycle while a caller waits on the line.
package agent

import (
	"context"
	"time"

	"github.com/example/salondesk/internal/core/fault"
	"github.com/example/salondesk/internal/core/helprequest"
	"github.com/example/salondesk/internal/ports/primary"
)

// Default polling cadence. The interval matches the voice agent's
// wait-for-resolution loop; the deadline bounds how long a record may stay
// pending before the poller provokes the timeout transition.
const (
	DefaultPollInterval = 5 * time.Second
	DefaultPollDeadline = 180 * time.Second
)

// Poller watches one help request until a human resolves it or the
// deadline elapses. One Poller instance may serve many Await calls; each
// call owns its own loop.
type Poller struct {
	requests primary.HelpRequestService
	interval time.Duration
	deadline time.Duration

	now func() time.Time
}

// NewPoller creates a poller over the given lifecycle service.
// Non-positive interval or deadline fall back to the defaults.
func NewPoller(requests primary.HelpRequestService, interval, deadline time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if deadline <= 0 {
		deadline = DefaultPollDeadline
	}
	return &Poller{
		requests: requests,
		interval: interval,
		deadline: deadline,
		now:      time.Now,
	}
}

// Await polls the request until it leaves pending, then returns the
// terminal record. If the deadline elapses first, Await provokes the
// timeout transition so the record never stays pending forever. Transient
// read errors are retried silently until the deadline; an unknown ID is
// not transient and fails immediately. Cancelling the context stops the
// loop without mutating the request.
func (p *Poller) Await(ctx context.Context, requestID string) (*primary.HelpRequest, error) {
	limit := p.now().Add(p.deadline)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		record, err := p.requests.GetHelpRequest(ctx, requestID)
		switch {
		case err == nil && helprequest.IsTerminal(record.Status):
			return record, nil
		case err != nil && fault.IsNotFound(err):
			return nil, err
		}

		if !p.now().Before(limit) {
			return p.requests.TimeoutHelpRequest(ctx, requestID)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
