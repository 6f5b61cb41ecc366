package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/betterdayenergy/esign-service/internal/app"
	"github.com/betterdayenergy/esign-service/internal/app/notify"
	"github.com/betterdayenergy/esign-service/internal/domain"
	"github.com/betterdayenergy/esign-service/internal/domain/submission"
	"github.com/betterdayenergy/esign-service/internal/domain/webhook"
)

func newTestDispatcher(t *testing.T) *notify.Dispatcher {
	t.Helper()

	d := notify.New(1, 8, time.Second, testLogger())
	d.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = d.Stop(ctx)
	})
	return d
}

func completionEvent() *webhook.Event {
	return &webhook.Event{
		Type:           webhook.EventFormCompleted,
		SubmissionID:   42,
		SubmitterEmail: "jo@example.com",
	}
}

func TestProcessEvent_UnknownType(t *testing.T) {
	t.Parallel()

	svc := app.NewWebhookService(&stubSigningClient{}, &stubMailer{}, newTestDispatcher(t), nil, testLogger())

	err := svc.ProcessEvent(context.Background(), &webhook.Event{
		Type:         "form.sneezed",
		SubmissionID: 42,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestProcessEvent_MissingSubmissionID(t *testing.T) {
	t.Parallel()

	svc := app.NewWebhookService(&stubSigningClient{}, &stubMailer{}, newTestDispatcher(t), nil, testLogger())

	err := svc.ProcessEvent(context.Background(), &webhook.Event{Type: webhook.EventFormViewed})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestProcessEvent_NonCompletionEventsAcknowledged(t *testing.T) {
	t.Parallel()

	tests := []webhook.EventType{
		webhook.EventFormViewed,
		webhook.EventFormStarted,
		webhook.EventFormDeclined,
	}

	for _, eventType := range tests {
		t.Run(eventType.String(), func(t *testing.T) {
			t.Parallel()

			mailer := &stubMailer{}
			client := &stubSigningClient{
				getSubmission: func(context.Context, int64) (*submission.Submission, error) {
					t.Error("GetSubmission called for non-completion event")
					return nil, nil
				},
			}
			svc := app.NewWebhookService(client, mailer, newTestDispatcher(t), nil, testLogger())

			err := svc.ProcessEvent(context.Background(), &webhook.Event{
				Type:         eventType,
				SubmissionID: 42,
			})
			if err != nil {
				t.Fatalf("ProcessEvent() error = %v", err)
			}
			if len(mailer.completions) != 0 {
				t.Errorf("sent %d completion emails, want 0", len(mailer.completions))
			}
		})
	}
}

func TestProcessEvent_CompletionSendsEmail(t *testing.T) {
	t.Parallel()

	fetched := make(chan int64, 1)
	completedAt := time.Now()
	client := &stubSigningClient{
		getSubmission: func(_ context.Context, id int64) (*submission.Submission, error) {
			fetched <- id
			sub := pendingSubmission(id)
			sub.Status = submission.StatusCompleted
			sub.CompletedAt = &completedAt
			sub.DocumentURL = "https://docs.example.com/signed.pdf"
			return sub, nil
		},
	}
	mailer := &stubMailer{}
	dispatcher := newTestDispatcher(t)
	svc := app.NewWebhookService(client, mailer, dispatcher, nil, testLogger())

	if err := svc.ProcessEvent(context.Background(), completionEvent()); err != nil {
		t.Fatalf("ProcessEvent() error = %v", err)
	}

	select {
	case id := <-fetched:
		if id != 42 {
			t.Errorf("fetched submission %d, want 42", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("completion email task never ran")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := dispatcher.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if len(mailer.completions) != 1 || mailer.completions[0] != 42 {
		t.Errorf("completions = %v, want [42]", mailer.completions)
	}
}

func TestProcessEvent_CompletionEmailFallbackRecipient(t *testing.T) {
	t.Parallel()

	// The refreshed submission has no signer email, so the task falls back
	// to the address carried in the webhook payload.
	client := &stubSigningClient{
		getSubmission: func(_ context.Context, id int64) (*submission.Submission, error) {
			sub := pendingSubmission(id)
			sub.Status = submission.StatusCompleted
			sub.SignerEmail = ""
			return sub, nil
		},
	}
	mailer := &stubMailer{}
	dispatcher := newTestDispatcher(t)
	svc := app.NewWebhookService(client, mailer, dispatcher, nil, testLogger())

	if err := svc.ProcessEvent(context.Background(), completionEvent()); err != nil {
		t.Fatalf("ProcessEvent() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := dispatcher.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if len(mailer.completions) != 1 {
		t.Fatalf("sent %d completion emails, want 1", len(mailer.completions))
	}
}

func TestProcessEvent_CompletionFetchFailureDoesNotSend(t *testing.T) {
	t.Parallel()

	client := &stubSigningClient{
		getSubmission: func(context.Context, int64) (*submission.Submission, error) {
			return nil, domain.ErrUnavailable
		},
	}
	mailer := &stubMailer{}
	dispatcher := newTestDispatcher(t)
	svc := app.NewWebhookService(client, mailer, dispatcher, nil, testLogger())

	if err := svc.ProcessEvent(context.Background(), completionEvent()); err != nil {
		t.Fatalf("ProcessEvent() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := dispatcher.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if len(mailer.completions) != 0 {
		t.Errorf("sent %d completion emails, want 0", len(mailer.completions))
	}
}
