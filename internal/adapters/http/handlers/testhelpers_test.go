package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/betterdayenergy/esign-service/internal/domain/submission"
	"github.com/betterdayenergy/esign-service/internal/domain/template"
	"github.com/betterdayenergy/esign-service/internal/domain/webhook"
	"github.com/betterdayenergy/esign-service/internal/ports"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func validSubmission() submission.Submission {
	return submission.Submission{
		ID:          42,
		TemplateID:  7,
		Status:      submission.StatusPending,
		SignerName:  "Jo Smith",
		SignerEmail: "jo@example.com",
		SigningURL:  "https://sign.example.com/s/abc",
		CreatedAt:   testTime,
	}
}

func validTemplate() template.Template {
	return template.Template{
		ID:   7,
		Name: "Enrollment Agreement",
		Slug: "enrollment-agreement",
		Fields: []template.Field{
			{Name: "customer_name", Type: "text", Required: true},
		},
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

// stubSigningService implements ports.SigningService with function fields so
// each test overrides only what it needs.
type stubSigningService struct {
	initiateSigning  func(ctx context.Context, req *submission.InitiateRequest) (*submission.Submission, error)
	getStatus        func(ctx context.Context, id int64) (*submission.Submission, error)
	listSubmissions  func(ctx context.Context, filter submission.Filter) ([]submission.Submission, error)
	downloadDocument func(ctx context.Context, id int64) (*submission.Document, error)
	cancelSubmission func(ctx context.Context, id int64) error
	listTemplates    func(ctx context.Context) ([]template.Template, error)
	getTemplate      func(ctx context.Context, id int64) (*template.Template, error)
	sendReminders    func(ctx context.Context, reminders []ports.Reminder) (*ports.ReminderResult, error)
}

func (s *stubSigningService) InitiateSigning(ctx context.Context, req *submission.InitiateRequest) (*submission.Submission, error) {
	return s.initiateSigning(ctx, req)
}

func (s *stubSigningService) GetStatus(ctx context.Context, id int64) (*submission.Submission, error) {
	return s.getStatus(ctx, id)
}

func (s *stubSigningService) ListSubmissions(ctx context.Context, filter submission.Filter) ([]submission.Submission, error) {
	return s.listSubmissions(ctx, filter)
}

func (s *stubSigningService) DownloadDocument(ctx context.Context, id int64) (*submission.Document, error) {
	return s.downloadDocument(ctx, id)
}

func (s *stubSigningService) CancelSubmission(ctx context.Context, id int64) error {
	return s.cancelSubmission(ctx, id)
}

func (s *stubSigningService) ListTemplates(ctx context.Context) ([]template.Template, error) {
	return s.listTemplates(ctx)
}

func (s *stubSigningService) GetTemplate(ctx context.Context, id int64) (*template.Template, error) {
	return s.getTemplate(ctx, id)
}

func (s *stubSigningService) SendReminders(ctx context.Context, reminders []ports.Reminder) (*ports.ReminderResult, error) {
	return s.sendReminders(ctx, reminders)
}

// stubWebhookService implements ports.WebhookService.
type stubWebhookService struct {
	processEvent func(ctx context.Context, event *webhook.Event) error
}

func (s *stubWebhookService) ProcessEvent(ctx context.Context, event *webhook.Event) error {
	return s.processEvent(ctx, event)
}

// stubHealthRegistry implements ports.HealthRegistry with canned results.
type stubHealthRegistry struct {
	results map[string]error
}

func (s *stubHealthRegistry) Register(ports.HealthChecker) {}

func (s *stubHealthRegistry) CheckAll(context.Context) map[string]error {
	return s.results
}
