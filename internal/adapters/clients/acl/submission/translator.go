package submission

import (
	"time"

	"github.com/betterdayenergy/esign-service/internal/domain/submission"
)

// submitterRole is the role assigned to every signer. Submissions created by
// this service always have exactly one submitter.
const submitterRole = "Customer"

// ToDomainSubmission converts a provider SubmissionDTO to a domain
// Submission entity. Timestamps are RFC3339; a missing or unparsable
// completed_at yields a nil CompletedAt.
func ToDomainSubmission(dto *SubmissionDTO) submission.Submission {
	createdAt, _ := time.Parse(time.RFC3339, dto.CreatedAt)

	var completedAt *time.Time
	if dto.CompletedAt != "" {
		if t, err := time.Parse(time.RFC3339, dto.CompletedAt); err == nil {
			completedAt = &t
		}
	}

	sub := submission.Submission{
		ID:           dto.ID,
		TemplateID:   dto.Template.ID,
		TemplateName: dto.Template.Name,
		Status:       submission.Status(dto.Status),
		CompletedAt:  completedAt,
		CreatedAt:    createdAt,
	}

	if len(dto.Submitters) > 0 {
		sub.SignerName = dto.Submitters[0].Name
		sub.SignerEmail = dto.Submitters[0].Email
		sub.SigningURL = dto.Submitters[0].EmbedSrc
	}
	if len(dto.Documents) > 0 {
		sub.DocumentURL = dto.Documents[0].URL
	}

	return sub
}

// ToDomainSubmissionList converts a provider listing response to a slice of
// domain Submission entities.
func ToDomainSubmissionList(dto SubmissionListResponseDTO) []submission.Submission {
	subs := make([]submission.Submission, len(dto.Data))
	for i := range dto.Data {
		subs[i] = ToDomainSubmission(&dto.Data[i])
	}
	return subs
}

// ToCreateSubmissionRequest converts a domain InitiateRequest to the
// provider's creation schema. The provider is instructed to email the
// signing link (send_email) so this service never handles signing URLs
// over email itself.
func ToCreateSubmissionRequest(req *submission.InitiateRequest) CreateSubmissionRequestDTO {
	return CreateSubmissionRequestDTO{
		TemplateID: req.TemplateID,
		SendEmail:  true,
		Submitters: []SubmitterDTO{
			{
				Role:  submitterRole,
				Email: req.SignerEmail,
				Name:  req.SignerName,
			},
		},
		Fields: req.Fields,
	}
}
