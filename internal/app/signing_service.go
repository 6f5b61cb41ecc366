// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/betterdayenergy/esign-service/internal/app/fanout"
	"github.com/betterdayenergy/esign-service/internal/domain"
	"github.com/betterdayenergy/esign-service/internal/domain/submission"
	"github.com/betterdayenergy/esign-service/internal/domain/template"
	"github.com/betterdayenergy/esign-service/internal/ports"
)

// maxReminderWorkers bounds concurrent reminder sends in SendReminders.
const maxReminderWorkers = 5

// Compile-time check that SigningService implements ports.SigningService.
var _ ports.SigningService = (*SigningService)(nil)

// SigningService implements ports.SigningService by orchestrating calls to
// the e-signature provider through the SigningClient port and to the SMTP
// adapter through the Mailer port. It handles validation, structured logging,
// and multi-step coordination but contains no provider-specific logic.
type SigningService struct {
	client ports.SigningClient
	mailer ports.Mailer
	logger *slog.Logger
}

// NewSigningService creates a SigningService. The client port provides access
// to the e-signature provider; the mailer sends reminder emails. The logger
// is used for structured request/error logging.
func NewSigningService(client ports.SigningClient, mailer ports.Mailer, logger *slog.Logger) *SigningService {
	return &SigningService{
		client: client,
		mailer: mailer,
		logger: logger,
	}
}

// InitiateSigning validates the request and starts a signing workflow with
// the provider. The provider emails the signing link to the signer, so a
// successful return means the signer has been contacted.
func (s *SigningService) InitiateSigning(ctx context.Context, req *submission.InitiateRequest) (*submission.Submission, error) {
	s.logger.InfoContext(ctx, "initiating signing workflow",
		slog.Int64("template_id", req.TemplateID),
		slog.String("signer_email", req.SignerEmail),
	)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.client.CreateSubmission(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to initiate signing",
			slog.String("operation", "InitiateSigning"),
			slog.Int64("template_id", req.TemplateID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return sub, nil
}

// GetStatus returns the current provider-reported state of a submission.
func (s *SigningService) GetStatus(ctx context.Context, id int64) (*submission.Submission, error) {
	s.logger.InfoContext(ctx, "fetching submission status", slog.Int64("id", id))

	sub, err := s.client.GetSubmission(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch submission",
			slog.String("operation", "GetStatus"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return sub, nil
}

// ListSubmissions returns submissions matching the given filter. An invalid
// status value is rejected before the provider is called.
func (s *SigningService) ListSubmissions(ctx context.Context, filter submission.Filter) ([]submission.Submission, error) {
	s.logger.InfoContext(ctx, "listing submissions")

	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"status": fmt.Sprintf("unknown status %q", filter.Status),
		}}
	}

	subs, err := s.client.ListSubmissions(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list submissions",
			slog.String("operation", "ListSubmissions"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return subs, nil
}

// DownloadDocument returns metadata for the signed document of a completed
// submission. The document is only available once the submission reaches
// the completed state; before that, domain.ErrNotFound is returned.
func (s *SigningService) DownloadDocument(ctx context.Context, id int64) (*submission.Document, error) {
	s.logger.InfoContext(ctx, "fetching signed document", slog.Int64("id", id))

	sub, err := s.client.GetSubmission(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch submission for download",
			slog.String("operation", "DownloadDocument"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	if sub.Status != submission.StatusCompleted {
		return nil, fmt.Errorf("submission %d is %s, document not available: %w",
			id, sub.Status, domain.ErrNotFound)
	}
	if sub.DocumentURL == "" {
		return nil, fmt.Errorf("submission %d has no document attached: %w", id, domain.ErrNotFound)
	}

	doc, err := s.client.FetchDocument(ctx, id, sub.DocumentURL)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch document",
			slog.String("operation", "DownloadDocument"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return doc, nil
}

// CancelSubmission cancels a pending submission. Submissions in a terminal
// state (completed, declined, expired) cannot be canceled.
func (s *SigningService) CancelSubmission(ctx context.Context, id int64) error {
	s.logger.InfoContext(ctx, "canceling submission", slog.Int64("id", id))

	sub, err := s.client.GetSubmission(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch submission for cancel",
			slog.String("operation", "CancelSubmission"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return err
	}

	if sub.Status.IsTerminal() {
		return fmt.Errorf("submission %d is already %s: %w", id, sub.Status, domain.ErrConflict)
	}

	if err := s.client.CancelSubmission(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to cancel submission",
			slog.String("operation", "CancelSubmission"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// ListTemplates returns all signing templates on the provider account.
func (s *SigningService) ListTemplates(ctx context.Context) ([]template.Template, error) {
	s.logger.InfoContext(ctx, "listing templates")

	templates, err := s.client.ListTemplates(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list templates",
			slog.String("operation", "ListTemplates"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return templates, nil
}

// GetTemplate returns a single template with its field schema.
func (s *SigningService) GetTemplate(ctx context.Context, id int64) (*template.Template, error) {
	s.logger.InfoContext(ctx, "fetching template", slog.Int64("id", id))

	tpl, err := s.client.GetTemplate(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch template",
			slog.String("operation", "GetTemplate"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return tpl, nil
}

// SendReminders sends reminder emails for multiple pending submissions with
// bounded concurrency. Each reminder succeeds or fails independently; the
// result separates submissions whose reminder went out from per-item errors.
// Terminal submissions are reported as conflicts rather than emailed.
func (s *SigningService) SendReminders(ctx context.Context, reminders []ports.Reminder) (*ports.ReminderResult, error) {
	s.logger.InfoContext(ctx, "sending reminders", slog.Int("count", len(reminders)))

	results := fanout.Run(ctx, maxReminderWorkers, reminders,
		func(ctx context.Context, r ports.Reminder) (int64, error) {
			return r.SubmissionID, s.sendReminder(ctx, r)
		})

	outcome := &ports.ReminderResult{Sent: make([]int64, 0, len(reminders))}
	for i, res := range results {
		if res.Err != nil {
			outcome.Errors = append(outcome.Errors, ports.ReminderError{
				SubmissionID: reminders[i].SubmissionID,
				Err:          res.Err,
			})
			continue
		}
		outcome.Sent = append(outcome.Sent, res.Value)
	}

	s.logger.InfoContext(ctx, "reminders processed",
		slog.Int("sent", len(outcome.Sent)),
		slog.Int("failed", len(outcome.Errors)),
	)
	return outcome, nil
}

// sendReminder handles one reminder: verify the submission is still pending,
// resolve the recipient, and send the email.
func (s *SigningService) sendReminder(ctx context.Context, r ports.Reminder) error {
	if r.SubmissionID <= 0 {
		return fmt.Errorf("submission_id must be positive: %w", domain.ErrValidation)
	}

	sub, err := s.client.GetSubmission(ctx, r.SubmissionID)
	if err != nil {
		return err
	}

	if sub.Status.IsTerminal() {
		return fmt.Errorf("submission %d is already %s: %w", r.SubmissionID, sub.Status, domain.ErrConflict)
	}

	recipient := r.RecipientEmail
	if recipient == "" {
		recipient = sub.SignerEmail
	}
	if recipient == "" {
		return fmt.Errorf("no recipient for submission %d: %w", r.SubmissionID, domain.ErrValidation)
	}

	daysPending := int(time.Since(sub.CreatedAt).Hours() / 24)

	return s.mailer.SendReminder(ctx, recipient, sub, daysPending)
}
