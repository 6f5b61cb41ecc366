package app_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/betterdayenergy/esign-service/internal/app"
	"github.com/betterdayenergy/esign-service/internal/domain"
	"github.com/betterdayenergy/esign-service/internal/domain/submission"
	"github.com/betterdayenergy/esign-service/internal/domain/template"
	"github.com/betterdayenergy/esign-service/internal/ports"
)

// stubSigningClient implements ports.SigningClient with function fields so
// each test overrides only what it needs.
type stubSigningClient struct {
	createSubmission func(ctx context.Context, req *submission.InitiateRequest) (*submission.Submission, error)
	getSubmission    func(ctx context.Context, id int64) (*submission.Submission, error)
	listSubmissions  func(ctx context.Context, filter submission.Filter) ([]submission.Submission, error)
	cancelSubmission func(ctx context.Context, id int64) error
	fetchDocument    func(ctx context.Context, submissionID int64, documentURL string) (*submission.Document, error)
	listTemplates    func(ctx context.Context) ([]template.Template, error)
	getTemplate      func(ctx context.Context, id int64) (*template.Template, error)
}

func (s *stubSigningClient) CreateSubmission(ctx context.Context, req *submission.InitiateRequest) (*submission.Submission, error) {
	return s.createSubmission(ctx, req)
}

func (s *stubSigningClient) GetSubmission(ctx context.Context, id int64) (*submission.Submission, error) {
	return s.getSubmission(ctx, id)
}

func (s *stubSigningClient) ListSubmissions(ctx context.Context, filter submission.Filter) ([]submission.Submission, error) {
	return s.listSubmissions(ctx, filter)
}

func (s *stubSigningClient) CancelSubmission(ctx context.Context, id int64) error {
	return s.cancelSubmission(ctx, id)
}

func (s *stubSigningClient) FetchDocument(ctx context.Context, submissionID int64, documentURL string) (*submission.Document, error) {
	return s.fetchDocument(ctx, submissionID, documentURL)
}

func (s *stubSigningClient) ListTemplates(ctx context.Context) ([]template.Template, error) {
	return s.listTemplates(ctx)
}

func (s *stubSigningClient) GetTemplate(ctx context.Context, id int64) (*template.Template, error) {
	return s.getTemplate(ctx, id)
}

// stubMailer implements ports.Mailer, recording sent reminders.
type stubMailer struct {
	mu            sync.Mutex
	completions   []int64
	reminders     []int64
	completionErr error
	reminderErr   error
}

func (m *stubMailer) SendCompletion(_ context.Context, _ string, sub *submission.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completionErr != nil {
		return m.completionErr
	}
	m.completions = append(m.completions, sub.ID)
	return nil
}

func (m *stubMailer) SendReminder(_ context.Context, _ string, sub *submission.Submission, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reminderErr != nil {
		return m.reminderErr
	}
	m.reminders = append(m.reminders, sub.ID)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func validInitiateRequest() *submission.InitiateRequest {
	return &submission.InitiateRequest{
		TemplateID:  7,
		SignerName:  "Jo Smith",
		SignerEmail: "jo@example.com",
	}
}

func pendingSubmission(id int64) *submission.Submission {
	return &submission.Submission{
		ID:          id,
		TemplateID:  7,
		Status:      submission.StatusPending,
		SignerEmail: "jo@example.com",
		SigningURL:  "https://sign.example.com/s/abc",
		CreatedAt:   time.Now().Add(-72 * time.Hour),
	}
}

func TestInitiateSigning(t *testing.T) {
	t.Parallel()

	client := &stubSigningClient{
		createSubmission: func(_ context.Context, req *submission.InitiateRequest) (*submission.Submission, error) {
			sub := pendingSubmission(42)
			sub.TemplateID = req.TemplateID
			return sub, nil
		},
	}
	svc := app.NewSigningService(client, &stubMailer{}, testLogger())

	sub, err := svc.InitiateSigning(context.Background(), validInitiateRequest())
	if err != nil {
		t.Fatalf("InitiateSigning() error = %v", err)
	}
	if sub.ID != 42 {
		t.Errorf("ID = %d, want 42", sub.ID)
	}
}

func TestInitiateSigning_ValidationFailure(t *testing.T) {
	t.Parallel()

	called := false
	client := &stubSigningClient{
		createSubmission: func(context.Context, *submission.InitiateRequest) (*submission.Submission, error) {
			called = true
			return nil, nil
		},
	}
	svc := app.NewSigningService(client, &stubMailer{}, testLogger())

	_, err := svc.InitiateSigning(context.Background(), &submission.InitiateRequest{
		TemplateID:  0,
		SignerEmail: "not-an-email",
	})

	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if called {
		t.Error("client was called despite validation failure")
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error is not *ValidationError: %v", err)
	}
	for _, field := range []string{"template_id", "signer_name", "signer_email"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("Fields missing %q: %v", field, verr.Fields)
		}
	}
}

func TestGetStatus_PropagatesNotFound(t *testing.T) {
	t.Parallel()

	client := &stubSigningClient{
		getSubmission: func(context.Context, int64) (*submission.Submission, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := app.NewSigningService(client, &stubMailer{}, testLogger())

	_, err := svc.GetStatus(context.Background(), 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListSubmissions_InvalidStatus(t *testing.T) {
	t.Parallel()

	client := &stubSigningClient{
		listSubmissions: func(context.Context, submission.Filter) ([]submission.Submission, error) {
			t.Error("client was called despite invalid filter")
			return nil, nil
		},
	}
	svc := app.NewSigningService(client, &stubMailer{}, testLogger())

	_, err := svc.ListSubmissions(context.Background(), submission.Filter{Status: "bogus"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestListSubmissions_ForwardsFilter(t *testing.T) {
	t.Parallel()

	templateID := int64(7)
	var gotFilter submission.Filter
	client := &stubSigningClient{
		listSubmissions: func(_ context.Context, filter submission.Filter) ([]submission.Submission, error) {
			gotFilter = filter
			return []submission.Submission{*pendingSubmission(1)}, nil
		},
	}
	svc := app.NewSigningService(client, &stubMailer{}, testLogger())

	subs, err := svc.ListSubmissions(context.Background(), submission.Filter{
		Status:     submission.StatusPending,
		TemplateID: &templateID,
	})
	if err != nil {
		t.Fatalf("ListSubmissions() error = %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("len(subs) = %d, want 1", len(subs))
	}
	if gotFilter.Status != submission.StatusPending {
		t.Errorf("forwarded Status = %q, want pending", gotFilter.Status)
	}
	if gotFilter.TemplateID == nil || *gotFilter.TemplateID != 7 {
		t.Errorf("forwarded TemplateID = %v, want 7", gotFilter.TemplateID)
	}
}

func TestDownloadDocument(t *testing.T) {
	t.Parallel()

	completedAt := time.Now()
	client := &stubSigningClient{
		getSubmission: func(_ context.Context, id int64) (*submission.Submission, error) {
			sub := pendingSubmission(id)
			sub.Status = submission.StatusCompleted
			sub.CompletedAt = &completedAt
			sub.DocumentURL = "https://docs.example.com/signed.pdf"
			return sub, nil
		},
		fetchDocument: func(_ context.Context, submissionID int64, documentURL string) (*submission.Document, error) {
			return &submission.Document{
				SubmissionID: submissionID,
				DownloadURL:  documentURL,
				Filename:     "document_42.pdf",
				SizeBytes:    1024,
				ContentType:  "application/pdf",
			}, nil
		},
	}
	svc := app.NewSigningService(client, &stubMailer{}, testLogger())

	doc, err := svc.DownloadDocument(context.Background(), 42)
	if err != nil {
		t.Fatalf("DownloadDocument() error = %v", err)
	}
	if doc.DownloadURL != "https://docs.example.com/signed.pdf" {
		t.Errorf("DownloadURL = %q, want signed document URL", doc.DownloadURL)
	}
}

func TestDownloadDocument_NotCompleted(t *testing.T) {
	t.Parallel()

	client := &stubSigningClient{
		getSubmission: func(_ context.Context, id int64) (*submission.Submission, error) {
			return pendingSubmission(id), nil
		},
		fetchDocument: func(context.Context, int64, string) (*submission.Document, error) {
			t.Error("FetchDocument called for a pending submission")
			return nil, nil
		},
	}
	svc := app.NewSigningService(client, &stubMailer{}, testLogger())

	_, err := svc.DownloadDocument(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDownloadDocument_NoDocumentURL(t *testing.T) {
	t.Parallel()

	client := &stubSigningClient{
		getSubmission: func(_ context.Context, id int64) (*submission.Submission, error) {
			sub := pendingSubmission(id)
			sub.Status = submission.StatusCompleted
			return sub, nil
		},
	}
	svc := app.NewSigningService(client, &stubMailer{}, testLogger())

	_, err := svc.DownloadDocument(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCancelSubmission(t *testing.T) {
	t.Parallel()

	var canceled int64
	client := &stubSigningClient{
		getSubmission: func(_ context.Context, id int64) (*submission.Submission, error) {
			return pendingSubmission(id), nil
		},
		cancelSubmission: func(_ context.Context, id int64) error {
			canceled = id
			return nil
		},
	}
	svc := app.NewSigningService(client, &stubMailer{}, testLogger())

	if err := svc.CancelSubmission(context.Background(), 42); err != nil {
		t.Fatalf("CancelSubmission() error = %v", err)
	}
	if canceled != 42 {
		t.Errorf("canceled = %d, want 42", canceled)
	}
}

func TestCancelSubmission_TerminalConflict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status submission.Status
	}{
		{name: "completed", status: submission.StatusCompleted},
		{name: "declined", status: submission.StatusDeclined},
		{name: "expired", status: submission.StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := &stubSigningClient{
				getSubmission: func(_ context.Context, id int64) (*submission.Submission, error) {
					sub := pendingSubmission(id)
					sub.Status = tt.status
					return sub, nil
				},
				cancelSubmission: func(context.Context, int64) error {
					t.Error("CancelSubmission called for a terminal submission")
					return nil
				},
			}
			svc := app.NewSigningService(client, &stubMailer{}, testLogger())

			err := svc.CancelSubmission(context.Background(), 42)
			if !errors.Is(err, domain.ErrConflict) {
				t.Errorf("error = %v, want ErrConflict", err)
			}
		})
	}
}

func TestListTemplates(t *testing.T) {
	t.Parallel()

	client := &stubSigningClient{
		listTemplates: func(context.Context) ([]template.Template, error) {
			return []template.Template{{ID: 7, Name: "Enrollment Agreement"}}, nil
		},
	}
	svc := app.NewSigningService(client, &stubMailer{}, testLogger())

	templates, err := svc.ListTemplates(context.Background())
	if err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}
	if len(templates) != 1 || templates[0].ID != 7 {
		t.Errorf("templates = %v, want single template with ID 7", templates)
	}
}

func TestGetTemplate_PropagatesNotFound(t *testing.T) {
	t.Parallel()

	client := &stubSigningClient{
		getTemplate: func(context.Context, int64) (*template.Template, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := app.NewSigningService(client, &stubMailer{}, testLogger())

	_, err := svc.GetTemplate(context.Background(), 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSendReminders_PartialSuccess(t *testing.T) {
	t.Parallel()

	client := &stubSigningClient{
		getSubmission: func(_ context.Context, id int64) (*submission.Submission, error) {
			switch id {
			case 1, 2:
				return pendingSubmission(id), nil
			case 3:
				sub := pendingSubmission(id)
				sub.Status = submission.StatusCompleted
				return sub, nil
			default:
				return nil, domain.ErrNotFound
			}
		},
	}
	mailer := &stubMailer{}
	svc := app.NewSigningService(client, mailer, testLogger())

	result, err := svc.SendReminders(context.Background(), []ports.Reminder{
		{SubmissionID: 1},
		{SubmissionID: 2, RecipientEmail: "alt@example.com"},
		{SubmissionID: 3},
		{SubmissionID: 999},
	})
	if err != nil {
		t.Fatalf("SendReminders() error = %v", err)
	}

	if len(result.Sent) != 2 {
		t.Errorf("len(Sent) = %d, want 2", len(result.Sent))
	}
	if len(result.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(result.Errors))
	}

	errsByID := make(map[int64]error, len(result.Errors))
	for _, re := range result.Errors {
		errsByID[re.SubmissionID] = re.Err
	}
	if !errors.Is(errsByID[3], domain.ErrConflict) {
		t.Errorf("submission 3 error = %v, want ErrConflict", errsByID[3])
	}
	if !errors.Is(errsByID[999], domain.ErrNotFound) {
		t.Errorf("submission 999 error = %v, want ErrNotFound", errsByID[999])
	}
	if len(mailer.reminders) != 2 {
		t.Errorf("sent %d reminder emails, want 2", len(mailer.reminders))
	}
}

func TestSendReminders_InvalidID(t *testing.T) {
	t.Parallel()

	client := &stubSigningClient{
		getSubmission: func(context.Context, int64) (*submission.Submission, error) {
			t.Error("GetSubmission called for invalid reminder")
			return nil, nil
		},
	}
	svc := app.NewSigningService(client, &stubMailer{}, testLogger())

	result, err := svc.SendReminders(context.Background(), []ports.Reminder{{SubmissionID: 0}})
	if err != nil {
		t.Fatalf("SendReminders() error = %v", err)
	}
	if len(result.Errors) != 1 || !errors.Is(result.Errors[0].Err, domain.ErrValidation) {
		t.Errorf("Errors = %v, want single ErrValidation", result.Errors)
	}
}

func TestSendReminders_Empty(t *testing.T) {
	t.Parallel()

	svc := app.NewSigningService(&stubSigningClient{}, &stubMailer{}, testLogger())

	result, err := svc.SendReminders(context.Background(), nil)
	if err != nil {
		t.Fatalf("SendReminders() error = %v", err)
	}
	if len(result.Sent) != 0 || len(result.Errors) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}
