// Package webhook defines the inbound callback events delivered by the
// e-signature provider when a submission changes state.
package webhook

import (
	"fmt"
	"time"

	"github.com/betterdayenergy/esign-service/internal/domain"
)

// EventType identifies the kind of state change reported by the provider.
type EventType string

const (
	EventFormViewed    EventType = "form.viewed"
	EventFormStarted   EventType = "form.started"
	EventFormCompleted EventType = "form.completed"
	EventFormDeclined  EventType = "form.declined"
)

// IsValid returns true if the event type is one of the defined constants.
func (e EventType) IsValid() bool {
	switch e {
	case EventFormViewed, EventFormStarted, EventFormCompleted, EventFormDeclined:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (e EventType) String() string {
	return string(e)
}

// Event is a provider callback describing a submission state change.
// SubmitterEmail and DocumentURL are populated only for events where the
// provider supplies them (completion events carry both).
type Event struct {
	Type           EventType
	SubmissionID   int64
	SubmitterEmail string
	DocumentURL    string
	Timestamp      *time.Time
}

// Validate checks that the event identifies a submission and carries a known
// event type. Returns a *domain.ValidationError on failure.
func (e *Event) Validate() error {
	fields := make(map[string]string)

	if !e.Type.IsValid() {
		fields["event_type"] = fmt.Sprintf("unknown event type: %q", e.Type)
	}
	if e.SubmissionID <= 0 {
		fields["submission_id"] = fmt.Sprintf("must be positive, got %d", e.SubmissionID)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
