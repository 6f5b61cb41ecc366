package dto

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/betterdayenergy/esign-service/internal/domain"
	"github.com/betterdayenergy/esign-service/internal/domain/submission"
	"github.com/betterdayenergy/esign-service/internal/domain/webhook"
	"github.com/betterdayenergy/esign-service/internal/ports"
)

const (
	msgRequired       = "is required"
	msgMustBePositive = "must be positive"
)

// maxBulkReminders caps how many reminders a single request may carry.
const maxBulkReminders = 100

// InitiateDocumentRequest represents the JSON body for starting a signing
// workflow: which template to send and who signs it. FormData carries
// optional pre-filled field values forwarded to the provider.
type InitiateDocumentRequest struct {
	TemplateID    int64             `json:"template_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	FormData      map[string]string `json:"form_data,omitempty"`
}

// Validate checks that required fields are present and the email parses.
// Returns a *domain.ValidationError if any checks fail.
func (r *InitiateDocumentRequest) Validate() error {
	fields := make(map[string]string)

	if r.TemplateID <= 0 {
		fields["template_id"] = msgMustBePositive
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		fields["customer_name"] = msgRequired
	}
	if strings.TrimSpace(r.CustomerEmail) == "" {
		fields["customer_email"] = msgRequired
	} else if _, err := mail.ParseAddress(r.CustomerEmail); err != nil {
		fields["customer_email"] = fmt.Sprintf("invalid email address: %q", r.CustomerEmail)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToInitiateRequest converts the DTO to the domain initiation request.
func (r *InitiateDocumentRequest) ToInitiateRequest() *submission.InitiateRequest {
	return &submission.InitiateRequest{
		TemplateID:  r.TemplateID,
		SignerName:  r.CustomerName,
		SignerEmail: r.CustomerEmail,
		Fields:      r.FormData,
	}
}

// ReminderItem identifies one pending submission to nudge. RecipientEmail
// overrides the signer address on file when set.
type ReminderItem struct {
	SubmissionID   int64  `json:"submission_id"`
	RecipientEmail string `json:"recipient_email,omitempty"`
}

// SendRemindersRequest represents the JSON body for the bulk reminder
// endpoint. Each item succeeds or fails independently.
type SendRemindersRequest struct {
	Reminders []ReminderItem `json:"reminders"`
}

// Validate checks that the request carries at least one reminder, no more
// than maxBulkReminders, and that any recipient overrides parse as email
// addresses. Per-item submission IDs are validated by the service so a bad
// ID fails only its own item. Returns a *domain.ValidationError on failure.
func (r *SendRemindersRequest) Validate() error {
	fields := make(map[string]string)

	if len(r.Reminders) == 0 {
		fields["reminders"] = "must contain at least one reminder"
	}
	if len(r.Reminders) > maxBulkReminders {
		fields["reminders"] = fmt.Sprintf("must contain at most %d reminders, got %d", maxBulkReminders, len(r.Reminders))
	}
	for i, item := range r.Reminders {
		if item.RecipientEmail == "" {
			continue
		}
		if _, err := mail.ParseAddress(item.RecipientEmail); err != nil {
			fields[fmt.Sprintf("reminders[%d].recipient_email", i)] = fmt.Sprintf("invalid email address: %q", item.RecipientEmail)
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToReminders converts the DTO items to the service port representation.
func (r *SendRemindersRequest) ToReminders() []ports.Reminder {
	reminders := make([]ports.Reminder, len(r.Reminders))
	for i, item := range r.Reminders {
		reminders[i] = ports.Reminder{
			SubmissionID:   item.SubmissionID,
			RecipientEmail: item.RecipientEmail,
		}
	}
	return reminders
}

// WebhookEventRequest represents the provider's callback payload: a flat
// object carrying the event type, the submission it concerns, and optional
// signer email, document URL, and timestamp.
type WebhookEventRequest struct {
	EventType      string     `json:"event_type"`
	SubmissionID   int64      `json:"submission_id"`
	SubmitterEmail string     `json:"submitter_email,omitempty"`
	DocumentURL    string     `json:"document_url,omitempty"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
}

// Validate checks that the payload names an event type and a submission.
// Unknown event types are rejected by the domain event's own validation, so
// the DTO only enforces presence. Returns a *domain.ValidationError on
// failure.
func (r *WebhookEventRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.EventType) == "" {
		fields["event_type"] = msgRequired
	}
	if r.SubmissionID <= 0 {
		fields["submission_id"] = msgMustBePositive
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToEvent converts the DTO to the domain webhook event.
func (r *WebhookEventRequest) ToEvent() *webhook.Event {
	return &webhook.Event{
		Type:           webhook.EventType(r.EventType),
		SubmissionID:   r.SubmissionID,
		SubmitterEmail: r.SubmitterEmail,
		DocumentURL:    r.DocumentURL,
		Timestamp:      r.Timestamp,
	}
}
