package handlers

import (
	"net/http"

	"github.com/betterdayenergy/esign-service/internal/adapters/http/dto"
	"github.com/betterdayenergy/esign-service/internal/ports"
)

// SigningHandler handles HTTP requests for the document signing workflow.
type SigningHandler struct {
	service ports.SigningService
}

// NewSigningHandler creates a new SigningHandler with the given service port.
func NewSigningHandler(service ports.SigningService) *SigningHandler {
	return &SigningHandler{service: service}
}

// InitiateDocument handles POST /api/v1/documents.
func (h *SigningHandler) InitiateDocument(w http.ResponseWriter, r *http.Request) {
	var req dto.InitiateDocumentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sub, err := h.service.InitiateSigning(r.Context(), req.ToInitiateRequest())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToSubmissionResponse(sub))
}

// ListDocuments handles GET /api/v1/documents.
func (h *SigningHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSubmissionFilter(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	subs, err := h.service.ListSubmissions(r.Context(), filter)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSubmissionListResponse(subs))
}

// GetDocumentStatus handles GET /api/v1/documents/{id}/status.
func (h *SigningHandler) GetDocumentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	sub, err := h.service.GetStatus(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSubmissionResponse(sub))
}

// DownloadDocument handles GET /api/v1/documents/{id}/download. It returns
// metadata including the provider download URL rather than the document
// bytes; 404 until the submission completes.
func (h *SigningHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	doc, err := h.service.DownloadDocument(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToDocumentResponse(doc))
}

// CancelDocument handles DELETE /api/v1/documents/{id}.
func (h *SigningHandler) CancelDocument(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.service.CancelSubmission(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SendReminders handles POST /api/v1/documents/reminders. Partial success
// returns 200 with per-item errors in the body.
func (h *SigningHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	var req dto.SendRemindersRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.service.SendReminders(r.Context(), req.ToReminders())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSendRemindersResponse(result))
}
