package acl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	aclsub "github.com/betterdayenergy/esign-service/internal/adapters/clients/acl/submission"
	acltpl "github.com/betterdayenergy/esign-service/internal/adapters/clients/acl/template"
	"github.com/betterdayenergy/esign-service/internal/domain/submission"
	"github.com/betterdayenergy/esign-service/internal/domain/template"
	"github.com/betterdayenergy/esign-service/internal/platform/httpclient"
	"github.com/betterdayenergy/esign-service/internal/ports"
)

// Compile-time interface check.
var _ ports.SigningClient = (*SigningClient)(nil)

// defaultContentType is assumed for signed documents when the provider omits
// a Content-Type header on the download response.
const defaultContentType = "application/pdf"

// SigningClient is the outbound adapter for the e-signature provider API.
// It implements [ports.SigningClient].
//
// All methods translate between our domain types and the provider's wire
// representations via the ACL translators in sub-packages [aclsub] and
// [acltpl]. HTTP errors are mapped to domain errors (ErrNotFound,
// ErrValidation, etc.) by [TranslateHTTPError].
//
// The underlying [httpclient.Client] provides auth header injection, circuit
// breaking, rate limiting, retry with exponential backoff, OpenTelemetry
// tracing, and health checking ([ports.HealthChecker]) for every outbound
// call.
type SigningClient struct {
	client *httpclient.Client
	req    *Requester
	logger *slog.Logger
}

// NewSigningClient creates a SigningClient that sends requests through the
// given [httpclient.Client]. The client's BaseURL should point to the
// provider's API root (e.g. "https://docuseal.co"). The logger is used for
// error-level diagnostics on failed or unexpected responses.
func NewSigningClient(client *httpclient.Client, logger *slog.Logger) *SigningClient {
	return &SigningClient{
		client: client,
		req:    NewRequester(client, logger),
		logger: logger,
	}
}

// CreateSubmission sends a POST /api/submissions with the translated request
// body. The provider creates the submission, emails the signing link to the
// signer, and responds 201 with the created submission including the signer's
// embedded signing URL. Returns domain.ErrValidation if the provider
// rejects the payload and domain.ErrNotFound if the template is unknown.
func (c *SigningClient) CreateSubmission(ctx context.Context, req *submission.InitiateRequest) (*submission.Submission, error) {
	reqDTO := aclsub.ToCreateSubmissionRequest(req)

	var respDTO aclsub.SubmissionDTO
	if err := c.req.Do(ctx, http.MethodPost, "/api/submissions", http.StatusCreated, reqDTO, &respDTO); err != nil {
		return nil, err
	}
	result := aclsub.ToDomainSubmission(&respDTO)
	return &result, nil
}

// GetSubmission fetches a single submission by ID from
// GET /api/submissions/{id}. Returns domain.ErrNotFound if the provider
// returns 404.
func (c *SigningClient) GetSubmission(ctx context.Context, id int64) (*submission.Submission, error) {
	path := fmt.Sprintf("/api/submissions/%d", id)

	var dto aclsub.SubmissionDTO
	if err := c.req.Do(ctx, http.MethodGet, path, http.StatusOK, nil, &dto); err != nil {
		return nil, err
	}
	result := aclsub.ToDomainSubmission(&dto)
	return &result, nil
}

// ListSubmissions fetches submissions from GET /api/submissions, optionally
// filtered by status and template. A zero-value [submission.Filter] returns
// all submissions.
func (c *SigningClient) ListSubmissions(ctx context.Context, filter submission.Filter) ([]submission.Submission, error) {
	path := "/api/submissions" + filterQuery(filter)

	var dto aclsub.SubmissionListResponseDTO
	if err := c.req.Do(ctx, http.MethodGet, path, http.StatusOK, nil, &dto); err != nil {
		return nil, err
	}
	return aclsub.ToDomainSubmissionList(dto), nil
}

// CancelSubmission sends a DELETE /api/submissions/{id} to cancel a pending
// submission. Returns domain.ErrNotFound if the submission does not exist.
func (c *SigningClient) CancelSubmission(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/submissions/%d", id)
	return c.req.Do(ctx, http.MethodDelete, path, http.StatusOK, nil, nil)
}

// FetchDocument retrieves the signed document from the provider-issued
// document URL and returns its metadata: size, content type, and a
// deterministic filename derived from the submission ID. The document bytes
// themselves are discarded; callers hand the download URL to the consumer.
// Returns domain.ErrNotFound if the document is gone.
func (c *SigningClient) FetchDocument(ctx context.Context, submissionID int64, documentURL string) (*submission.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, documentURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating document request: %w", err)
	}

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		if resp != nil {
			defer func() { _ = resp.Body.Close() }()
			return nil, TranslateHTTPError(resp)
		}
		return nil, fmt.Errorf("fetching document for submission %d: %w", submissionID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, TranslateHTTPError(resp)
	}

	size, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading document for submission %d: %w", submissionID, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	return &submission.Document{
		SubmissionID: submissionID,
		DownloadURL:  documentURL,
		Filename:     fmt.Sprintf("document_%d.pdf", submissionID),
		SizeBytes:    size,
		ContentType:  contentType,
	}, nil
}

// ListTemplates fetches all templates from GET /api/templates.
func (c *SigningClient) ListTemplates(ctx context.Context) ([]template.Template, error) {
	var dtos []acltpl.TemplateDTO
	if err := c.req.Do(ctx, http.MethodGet, "/api/templates", http.StatusOK, nil, &dtos); err != nil {
		return nil, err
	}
	return acltpl.ToDomainTemplateList(dtos), nil
}

// GetTemplate fetches a single template by ID from GET /api/templates/{id},
// including its field schema. Returns domain.ErrNotFound if the provider
// returns 404.
func (c *SigningClient) GetTemplate(ctx context.Context, id int64) (*template.Template, error) {
	path := fmt.Sprintf("/api/templates/%d", id)

	var dto acltpl.TemplateDTO
	if err := c.req.Do(ctx, http.MethodGet, path, http.StatusOK, nil, &dto); err != nil {
		return nil, err
	}
	result := acltpl.ToDomainTemplate(&dto)
	return &result, nil
}

// filterQuery converts a [submission.Filter] to a URL query string (including
// the leading "?"). Returns an empty string if no filters are set.
func filterQuery(f submission.Filter) string {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", f.Status.String())
	}
	if f.TemplateID != nil {
		v.Set("template_id", fmt.Sprintf("%d", *f.TemplateID))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
