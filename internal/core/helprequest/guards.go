// Package helprequest contains the pure business logic for the help request
// lifecycle. Guards evaluate transition preconditions without side effects;
// the persistence layer is responsible for making the winning transition
// stick under concurrency.
package helprequest

import (
	"strings"

	"github.com/example/salondesk/internal/core/fault"
)

// Status values for a help request. A request starts pending and makes
// exactly one transition to resolved or timeout, never both.
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
	StatusTimeout  = "timeout"
)

// IsTerminal reports whether a status permits no further transitions.
func IsTerminal(status string) bool {
	return status == StatusResolved || status == StatusTimeout
}

// ValidQuestion trims the question and rejects empty input.
func ValidQuestion(question string) (string, error) {
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return "", &fault.ValidationError{Field: "question", Reason: "must not be empty"}
	}
	return trimmed, nil
}

// ValidAnswer trims the answer and rejects empty input.
func ValidAnswer(answer string) (string, error) {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return "", &fault.ValidationError{Field: "answer", Reason: "must not be empty"}
	}
	return trimmed, nil
}

// CanResolve evaluates whether a request in the given status may be
// resolved. Only pending requests can be; a second resolve is rejected,
// never silently accepted.
func CanResolve(id, status string) error {
	if status != StatusPending {
		return &fault.AlreadyTerminalError{ID: id, Status: status}
	}
	return nil
}

// CanTimeout evaluates whether a request in the given status may be timed
// out. Timing out a terminal request is not an error at the lifecycle
// level - timeout loses any race against a prior resolve - so callers
// treat AlreadyTerminal as "return the record unchanged".
func CanTimeout(id, status string) error {
	if status != StatusPending {
		return &fault.AlreadyTerminalError{ID: id, Status: status}
	}
	return nil
}

// ValidStatusFilter checks a list filter. Empty and "all" mean no filter.
func ValidStatusFilter(status string) error {
	switch status {
	case "", "all", StatusPending, StatusResolved, StatusTimeout:
		return nil
	}
	return &fault.ValidationError{Field: "status", Reason: "must be pending, resolved, timeout, or all"}
}
