// Package mail implements the outbound SMTP adapter for signer notification
// emails. Messages are sent as multipart/alternative with plain text and HTML
// bodies.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
	"go.opentelemetry.io/otel/metric"

	"github.com/betterdayenergy/esign-service/internal/domain/submission"
	"github.com/betterdayenergy/esign-service/internal/platform/config"
	"github.com/betterdayenergy/esign-service/internal/platform/telemetry"
	"github.com/betterdayenergy/esign-service/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.Mailer        = (*Mailer)(nil)
	_ ports.HealthChecker = (*Mailer)(nil)
)

// Email kinds recorded on the email.sent.total metric.
const (
	kindCompletion = "completion"
	kindReminder   = "reminder"
)

// sender abstracts the go-mail client so tests can capture messages without
// a live SMTP server.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
	DialWithContext(ctx context.Context) error
	Close() error
}

// Mailer sends signer notification emails over SMTP. It implements
// [ports.Mailer] and registers as the "smtp" health check.
type Mailer struct {
	client  sender
	from    string
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New creates a Mailer from SMTP configuration. The connection uses STARTTLS
// when the server offers it and PLAIN authentication when credentials are
// configured. Returns an error if the configuration is rejected by the
// underlying client.
func New(cfg *config.SMTPConfig, metrics *telemetry.Metrics, logger *slog.Logger) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating SMTP client: %w", err)
	}

	return &Mailer{
		client:  client,
		from:    cfg.From,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// SendCompletion notifies the signer that their document has been signed and
// completed. The message includes the submission ID, completion time, and a
// download link when the submission carries a document URL.
func (m *Mailer) SendCompletion(ctx context.Context, recipient string, sub *submission.Submission) error {
	completedAt := time.Now().UTC()
	if sub.CompletedAt != nil {
		completedAt = sub.CompletedAt.UTC()
	}

	text := completionText(sub.ID, sub.DocumentURL, completedAt)
	html := completionHTML(sub.ID, sub.DocumentURL, completedAt)

	if err := m.send(ctx, recipient, "Document Signing Completed - Better Day Energy", text, html); err != nil {
		return fmt.Errorf("sending completion email for submission %d: %w", sub.ID, err)
	}

	m.recordSent(ctx, kindCompletion)
	m.logger.InfoContext(ctx, "completion email sent",
		slog.Int64("submission_id", sub.ID),
		slog.String("recipient", recipient),
	)
	return nil
}

// SendReminder nudges a signer about a pending submission. daysPending is
// rendered into the message; the signing link comes from the submission.
func (m *Mailer) SendReminder(ctx context.Context, recipient string, sub *submission.Submission, daysPending int) error {
	text := reminderText(sub.ID, sub.SigningURL, daysPending)
	html := reminderHTML(sub.ID, sub.SigningURL, daysPending)

	if err := m.send(ctx, recipient, "Reminder: Document Signing Pending - Better Day Energy", text, html); err != nil {
		return fmt.Errorf("sending reminder email for submission %d: %w", sub.ID, err)
	}

	m.recordSent(ctx, kindReminder)
	m.logger.InfoContext(ctx, "reminder email sent",
		slog.Int64("submission_id", sub.ID),
		slog.String("recipient", recipient),
		slog.Int("days_pending", daysPending),
	)
	return nil
}

// send builds and delivers a multipart/alternative message.
func (m *Mailer) send(ctx context.Context, recipient, subject, text, html string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("setting sender %q: %w", m.from, err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("setting recipient %q: %w", recipient, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)

	return m.client.DialAndSendWithContext(ctx, msg)
}

// recordSent increments the email.sent.total counter when metrics are enabled.
func (m *Mailer) recordSent(ctx context.Context, kind string) {
	if m.metrics == nil {
		return
	}
	m.metrics.EmailSentTotal.Add(ctx, 1, metric.WithAttributes(telemetry.AttrEmailKind.String(kind)))
}

// Name returns the identifier used when this component is registered with a
// [ports.HealthRegistry].
func (m *Mailer) Name() string {
	return "smtp"
}

// HealthCheck verifies SMTP reachability by dialing the server and closing
// the connection. STARTTLS and authentication run as part of the dial, so a
// nil return means the full login handshake succeeded.
func (m *Mailer) HealthCheck(ctx context.Context) error {
	if err := m.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("smtp: dial failed: %w", err)
	}
	if err := m.client.Close(); err != nil {
		return fmt.Errorf("smtp: close failed: %w", err)
	}
	return nil
}
