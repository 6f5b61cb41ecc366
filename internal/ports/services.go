package ports

import (
	"context"

	"github.com/betterdayenergy/esign-service/internal/domain/submission"
	"github.com/betterdayenergy/esign-service/internal/domain/template"
	"github.com/betterdayenergy/esign-service/internal/domain/webhook"
)

// SigningService defines the service port for signing workflow operations.
// Implemented by the application layer; called by inbound adapters (handlers).
type SigningService interface {
	// InitiateSigning validates the request and starts a signing workflow
	// with the provider. The provider emails the signer directly.
	// Returns domain.ErrValidation if the request fails validation.
	InitiateSigning(ctx context.Context, req *submission.InitiateRequest) (*submission.Submission, error)

	// GetStatus returns the current state of a submission.
	// Returns domain.ErrNotFound if the submission does not exist.
	GetStatus(ctx context.Context, id int64) (*submission.Submission, error)

	// ListSubmissions returns submissions matching the given filter.
	ListSubmissions(ctx context.Context, filter submission.Filter) ([]submission.Submission, error)

	// DownloadDocument returns metadata for the signed document.
	// Returns domain.ErrNotFound if the submission does not exist, is not
	// yet completed, or has no document attached.
	DownloadDocument(ctx context.Context, id int64) (*submission.Document, error)

	// CancelSubmission cancels a pending submission.
	// Returns domain.ErrNotFound if the submission does not exist.
	// Returns domain.ErrConflict if the submission is already terminal.
	CancelSubmission(ctx context.Context, id int64) error

	// ListTemplates returns all signing templates on the provider account.
	ListTemplates(ctx context.Context) ([]template.Template, error)

	// GetTemplate returns a single template with its field schema.
	// Returns domain.ErrNotFound if the template does not exist.
	GetTemplate(ctx context.Context, id int64) (*template.Template, error)

	// SendReminders sends reminder emails for multiple pending submissions
	// concurrently. Uses partial success semantics: each reminder succeeds
	// or fails independently. A hard error is returned only for
	// request-level failures; per-item failures are collected in
	// ReminderResult.Errors.
	SendReminders(ctx context.Context, reminders []Reminder) (*ReminderResult, error)
}

// Reminder pairs a submission ID with the recipient to nudge.
type Reminder struct {
	SubmissionID   int64
	RecipientEmail string
}

// ReminderError records a single failed reminder within a bulk operation.
type ReminderError struct {
	SubmissionID int64
	Err          error
}

// ReminderResult holds the outcomes of a bulk reminder operation.
// Sent lists submission IDs whose reminder emails went out; Errors contains
// per-item failures.
type ReminderResult struct {
	Sent   []int64
	Errors []ReminderError
}

// WebhookService defines the service port for inbound provider callbacks.
type WebhookService interface {
	// ProcessEvent validates and handles a provider webhook event.
	// Completion events trigger an asynchronous notification email; other
	// known event types are acknowledged after logging.
	// Returns domain.ErrValidation for unknown event types.
	ProcessEvent(ctx context.Context, event *webhook.Event) error
}
