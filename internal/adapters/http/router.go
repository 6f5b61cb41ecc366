// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/betterdayenergy/esign-service/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	signingHandler *handlers.SigningHandler,
	templateHandler *handlers.TemplateHandler,
	webhookHandler *handlers.WebhookHandler,
	healthHandler *handlers.HealthHandler,
	infoHandler *handlers.InfoHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Service info and health endpoints (outside /api/v1 prefix).
	r.Get("/", infoHandler.Info)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Signing workflow.
		r.Post("/documents", signingHandler.InitiateDocument)
		r.Get("/documents", signingHandler.ListDocuments)
		r.Post("/documents/reminders", signingHandler.SendReminders)
		r.Get("/documents/{id}/status", signingHandler.GetDocumentStatus)
		r.Get("/documents/{id}/download", signingHandler.DownloadDocument)
		r.Delete("/documents/{id}", signingHandler.CancelDocument)

		// Template catalog (read-only).
		r.Get("/templates", templateHandler.ListTemplates)
		r.Get("/templates/{id}", templateHandler.GetTemplate)

		// Provider callbacks.
		r.Post("/webhooks/docuseal", webhookHandler.HandleEvent)
	})

	return r
}
