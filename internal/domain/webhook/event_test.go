package webhook_test

import (
	"errors"
	"testing"

	"github.com/betterdayenergy/esign-service/internal/domain"
	"github.com/betterdayenergy/esign-service/internal/domain/webhook"
)

func TestEventType_IsValid(t *testing.T) {
	t.Parallel()

	valid := []webhook.EventType{
		webhook.EventFormViewed,
		webhook.EventFormStarted,
		webhook.EventFormCompleted,
		webhook.EventFormDeclined,
	}
	for _, e := range valid {
		if !e.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", e)
		}
	}

	for _, e := range []webhook.EventType{"", "form.archived", "completed"} {
		if e.IsValid() {
			t.Errorf("IsValid(%q) = true, want false", e)
		}
	}
}

func TestEvent_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		event   webhook.Event
		wantErr bool
	}{
		{
			name:  "valid completion event",
			event: webhook.Event{Type: webhook.EventFormCompleted, SubmissionID: 7},
		},
		{
			name:    "unknown event type",
			event:   webhook.Event{Type: "form.bogus", SubmissionID: 7},
			wantErr: true,
		},
		{
			name:    "missing submission id",
			event:   webhook.Event{Type: webhook.EventFormViewed},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.event.Validate()
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Validate() error = %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}
