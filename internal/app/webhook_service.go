package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"

	"github.com/betterdayenergy/esign-service/internal/app/notify"
	"github.com/betterdayenergy/esign-service/internal/domain/webhook"
	"github.com/betterdayenergy/esign-service/internal/platform/telemetry"
	"github.com/betterdayenergy/esign-service/internal/ports"
)

// Compile-time check that WebhookService implements ports.WebhookService.
var _ ports.WebhookService = (*WebhookService)(nil)

// WebhookService implements ports.WebhookService. It validates provider
// callbacks and reacts to state changes: completion events trigger an
// asynchronous notification email via the dispatcher, other known events are
// logged and acknowledged. The provider retries undelivered webhooks, so
// handlers must return quickly; all slow work is deferred to the dispatcher.
type WebhookService struct {
	client     ports.SigningClient
	mailer     ports.Mailer
	dispatcher *notify.Dispatcher
	metrics    *telemetry.Metrics
	logger     *slog.Logger
}

// NewWebhookService creates a WebhookService. The dispatcher runs completion
// emails off the request path; metrics may be nil to disable recording.
func NewWebhookService(
	client ports.SigningClient,
	mailer ports.Mailer,
	dispatcher *notify.Dispatcher,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *WebhookService {
	return &WebhookService{
		client:     client,
		mailer:     mailer,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// ProcessEvent validates and handles a provider webhook event. Completion
// events enqueue a notification email task; viewed, started, and declined
// events are acknowledged after logging. Returns domain.ErrValidation
// (wrapped) for malformed or unknown events.
func (s *WebhookService) ProcessEvent(ctx context.Context, event *webhook.Event) error {
	if err := event.Validate(); err != nil {
		s.logger.WarnContext(ctx, "rejected webhook event",
			slog.String("event_type", event.Type.String()),
			slog.Int64("submission_id", event.SubmissionID),
			slog.Any("error", err),
		)
		return err
	}

	s.recordEvent(ctx, event.Type)
	s.logger.InfoContext(ctx, "webhook event received",
		slog.String("event_type", event.Type.String()),
		slog.Int64("submission_id", event.SubmissionID),
	)

	if event.Type == webhook.EventFormCompleted {
		s.enqueueCompletionEmail(event)
	}

	return nil
}

// enqueueCompletionEmail schedules the completion notification. The task
// re-fetches the submission so the email carries the authoritative document
// URL and completion time rather than whatever the webhook payload included.
func (s *WebhookService) enqueueCompletionEmail(event *webhook.Event) {
	submissionID := event.SubmissionID
	fallbackEmail := event.SubmitterEmail

	s.dispatcher.Enqueue(notify.Task{
		Name: "completion-email",
		Run: func(ctx context.Context) error {
			sub, err := s.client.GetSubmission(ctx, submissionID)
			if err != nil {
				return fmt.Errorf("fetching submission %d for completion email: %w", submissionID, err)
			}

			recipient := sub.SignerEmail
			if recipient == "" {
				recipient = fallbackEmail
			}
			if recipient == "" {
				return fmt.Errorf("submission %d has no signer email, skipping completion email", submissionID)
			}

			return s.mailer.SendCompletion(ctx, recipient, sub)
		},
	})
}

// recordEvent increments the webhook.event.total counter when metrics are
// enabled.
func (s *WebhookService) recordEvent(ctx context.Context, eventType webhook.EventType) {
	if s.metrics == nil {
		return
	}
	s.metrics.WebhookEventTotal.Add(ctx, 1,
		metric.WithAttributes(telemetry.AttrEventType.String(eventType.String())))
}
