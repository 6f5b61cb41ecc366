package ports

import (
	"context"

	"github.com/betterdayenergy/esign-service/internal/domain/submission"
	"github.com/betterdayenergy/esign-service/internal/domain/template"
)

// SigningClient defines the client port for the downstream e-signature
// provider API. Implemented by the ACL adapter; called by the application
// layer. Methods map 1:1 to provider endpoints using domain terminology.
// The ACL translates between our "submission" concept and the provider's
// wire representation.
type SigningClient interface {
	// CreateSubmission sends a template to a signer and returns the created
	// submission including the provider-issued signing URL.
	// Returns domain.ErrNotFound if the template does not exist and
	// domain.ErrValidation if the provider rejects the payload.
	CreateSubmission(ctx context.Context, req *submission.InitiateRequest) (*submission.Submission, error)

	// GetSubmission returns a single submission by ID.
	// Returns domain.ErrNotFound if the submission does not exist.
	GetSubmission(ctx context.Context, id int64) (*submission.Submission, error)

	// ListSubmissions returns submissions matching the given filter.
	// Pass a zero-value Filter to list all submissions.
	ListSubmissions(ctx context.Context, filter submission.Filter) ([]submission.Submission, error)

	// CancelSubmission cancels a pending submission.
	// Returns domain.ErrNotFound if the submission does not exist.
	CancelSubmission(ctx context.Context, id int64) error

	// FetchDocument retrieves metadata for the signed document at the given
	// provider URL. The returned Document carries the download URL, size,
	// and content type.
	FetchDocument(ctx context.Context, submissionID int64, documentURL string) (*submission.Document, error)

	// ListTemplates returns all templates available on the provider account.
	ListTemplates(ctx context.Context) ([]template.Template, error)

	// GetTemplate returns a single template by ID including its field schema.
	// Returns domain.ErrNotFound if the template does not exist.
	GetTemplate(ctx context.Context, id int64) (*template.Template, error)
}
