package ports

import (
	"context"

	"github.com/betterdayenergy/esign-service/internal/domain/submission"
)

// Mailer defines the outbound port for signer notification emails.
// Implemented by the SMTP adapter; called by the application layer.
type Mailer interface {
	// SendCompletion notifies the signer that their document is complete.
	// The submission supplies the document URL and completion time rendered
	// into the message body.
	SendCompletion(ctx context.Context, recipient string, sub *submission.Submission) error

	// SendReminder nudges a signer about a pending submission. daysPending
	// is rendered into the message body; signingURL is the provider link
	// the signer follows to finish.
	SendReminder(ctx context.Context, recipient string, sub *submission.Submission, daysPending int) error
}
