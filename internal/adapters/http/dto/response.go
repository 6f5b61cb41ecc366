// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/betterdayenergy/esign-service/internal/domain/submission"
	"github.com/betterdayenergy/esign-service/internal/domain/template"
	"github.com/betterdayenergy/esign-service/internal/ports"
)

// SubmissionResponse represents a single signing submission in HTTP responses.
// SigningURL is present while the provider link is live; DocumentURL and
// CompletedAt are set once the submission completes.
type SubmissionResponse struct {
	ID           int64  `json:"id"`
	TemplateID   int64  `json:"template_id"`
	TemplateName string `json:"template_name,omitempty"`
	Status       string `json:"status"`
	SignerName   string `json:"signer_name,omitempty"`
	SignerEmail  string `json:"signer_email,omitempty"`
	SigningURL   string `json:"signing_url,omitempty"`
	DocumentURL  string `json:"document_url,omitempty"`
	CompletedAt  string `json:"completed_at,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// SubmissionListResponse represents a list of submissions in HTTP responses.
type SubmissionListResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
	Count       int                  `json:"count"`
}

// ToSubmissionResponse converts a domain Submission to an HTTP response DTO.
func ToSubmissionResponse(s *submission.Submission) SubmissionResponse {
	resp := SubmissionResponse{
		ID:           s.ID,
		TemplateID:   s.TemplateID,
		TemplateName: s.TemplateName,
		Status:       s.Status.String(),
		SignerName:   s.SignerName,
		SignerEmail:  s.SignerEmail,
		SigningURL:   s.SigningURL,
		DocumentURL:  s.DocumentURL,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}
	if s.CompletedAt != nil {
		resp.CompletedAt = s.CompletedAt.Format(time.RFC3339)
	}
	return resp
}

// ToSubmissionListResponse converts a slice of domain Submissions to an HTTP
// list response DTO.
func ToSubmissionListResponse(subs []submission.Submission) SubmissionListResponse {
	items := make([]SubmissionResponse, len(subs))
	for i := range subs {
		items[i] = ToSubmissionResponse(&subs[i])
	}
	return SubmissionListResponse{
		Submissions: items,
		Count:       len(items),
	}
}

// DocumentResponse represents signed-document metadata in HTTP responses.
// Clients fetch the bytes from DownloadURL directly.
type DocumentResponse struct {
	SubmissionID int64  `json:"submission_id"`
	DownloadURL  string `json:"download_url"`
	Filename     string `json:"filename"`
	SizeBytes    int64  `json:"size_bytes"`
	ContentType  string `json:"content_type"`
}

// ToDocumentResponse converts a domain Document to an HTTP response DTO.
func ToDocumentResponse(d *submission.Document) DocumentResponse {
	return DocumentResponse{
		SubmissionID: d.SubmissionID,
		DownloadURL:  d.DownloadURL,
		Filename:     d.Filename,
		SizeBytes:    d.SizeBytes,
		ContentType:  d.ContentType,
	}
}

// TemplateFieldResponse represents one fillable field of a template schema.
type TemplateFieldResponse struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// TemplateResponse represents a single signing template in HTTP responses.
type TemplateResponse struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	Slug        string                  `json:"slug,omitempty"`
	Description string                  `json:"description,omitempty"`
	Fields      []TemplateFieldResponse `json:"fields,omitempty"`
	FieldCount  int                     `json:"field_count"`
	CreatedAt   string                  `json:"created_at,omitempty"`
	UpdatedAt   string                  `json:"updated_at,omitempty"`
}

// TemplateListResponse represents a list of templates in HTTP responses.
type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
	Count     int                `json:"count"`
}

// ToTemplateResponse converts a domain Template to an HTTP response DTO.
func ToTemplateResponse(t *template.Template) TemplateResponse {
	resp := TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		FieldCount:  t.FieldCount(),
	}
	if len(t.Fields) > 0 {
		resp.Fields = make([]TemplateFieldResponse, len(t.Fields))
		for i, f := range t.Fields {
			resp.Fields[i] = TemplateFieldResponse{
				Name:     f.Name,
				Type:     f.Type,
				Required: f.Required,
			}
		}
	}
	if !t.CreatedAt.IsZero() {
		resp.CreatedAt = t.CreatedAt.Format(time.RFC3339)
	}
	if !t.UpdatedAt.IsZero() {
		resp.UpdatedAt = t.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

// ToTemplateListResponse converts a slice of domain Templates to an HTTP
// list response DTO.
func ToTemplateListResponse(templates []template.Template) TemplateListResponse {
	items := make([]TemplateResponse, len(templates))
	for i := range templates {
		items[i] = ToTemplateResponse(&templates[i])
	}
	return TemplateListResponse{
		Templates: items,
		Count:     len(items),
	}
}

// SendRemindersResponse represents the result of a bulk reminder operation.
// It includes the submissions whose reminders were sent and per-item errors.
type SendRemindersResponse struct {
	Sent      []int64             `json:"sent"`
	Errors    []ReminderErrorItem `json:"errors"`
	Total     int                 `json:"total"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// ReminderErrorItem represents a single failed reminder within a bulk
// operation.
type ReminderErrorItem struct {
	SubmissionID int64  `json:"submission_id"`
	Message      string `json:"message"`
}

// ToSendRemindersResponse converts a ports.ReminderResult to an HTTP response
// DTO.
func ToSendRemindersResponse(result *ports.ReminderResult) SendRemindersResponse {
	sent := result.Sent
	if sent == nil {
		sent = []int64{}
	}

	errs := make([]ReminderErrorItem, len(result.Errors))
	for i, e := range result.Errors {
		errs[i] = ReminderErrorItem{
			SubmissionID: e.SubmissionID,
			Message:      e.Err.Error(),
		}
	}

	return SendRemindersResponse{
		Sent:      sent,
		Errors:    errs,
		Total:     len(sent) + len(errs),
		Succeeded: len(sent),
		Failed:    len(errs),
	}
}

// WebhookAckResponse acknowledges a processed webhook event.
type WebhookAckResponse struct {
	Status    string `json:"status"`
	EventType string `json:"event_type"`
}

// ServiceInfoResponse represents the root service-info endpoint body.
type ServiceInfoResponse struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
