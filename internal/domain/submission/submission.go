// Package submission defines the signing submission entity and its lifecycle.
// A submission tracks one document sent to one signer through the external
// e-signature provider, from initiation until completion or decline.
package submission

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/betterdayenergy/esign-service/internal/domain"
)

// Submission represents a signing workflow for a single document and signer.
// The provider owns the authoritative state; this entity is the translated
// view our service exposes.
type Submission struct {
	ID           int64
	TemplateID   int64
	TemplateName string
	Status       Status
	SignerName   string
	SignerEmail  string
	SigningURL   string
	DocumentURL  string
	CompletedAt  *time.Time
	CreatedAt    time.Time
}

// InitiateRequest carries the parameters needed to start a signing workflow:
// which template to send, who signs it, and optional pre-filled field values.
type InitiateRequest struct {
	TemplateID  int64
	SignerName  string
	SignerEmail string
	Fields      map[string]string
}

// Validate checks business rules for initiating a signing workflow.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (r *InitiateRequest) Validate() error {
	fields := make(map[string]string)

	if r.TemplateID <= 0 {
		fields["template_id"] = fmt.Sprintf("must be positive, got %d", r.TemplateID)
	}
	if strings.TrimSpace(r.SignerName) == "" {
		fields["signer_name"] = domain.MsgRequired
	}
	if strings.TrimSpace(r.SignerEmail) == "" {
		fields["signer_email"] = domain.MsgRequired
	} else if _, err := mail.ParseAddress(r.SignerEmail); err != nil {
		fields["signer_email"] = fmt.Sprintf("invalid email address: %q", r.SignerEmail)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Document holds metadata about a completed, downloadable signed document.
type Document struct {
	SubmissionID int64
	DownloadURL  string
	Filename     string
	SizeBytes    int64
	ContentType  string
}
