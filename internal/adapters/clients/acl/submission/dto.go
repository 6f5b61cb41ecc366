// Package submission implements the Anti-Corruption Layer translators for
// the e-signature provider's submission resources.
package submission

// SubmitterDTO matches the provider's submitter schema. One submitter is
// created per submission with the fixed role "Customer".
type SubmitterDTO struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	EmbedSrc string `json:"embed_src,omitempty"`
	Status   string `json:"status,omitempty"`
}

// DocumentDTO matches the provider's signed document schema.
type DocumentDTO struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

// TemplateRefDTO is the abbreviated template reference embedded in
// submission responses.
type TemplateRefDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SubmissionDTO matches the provider's submission schema.
type SubmissionDTO struct {
	ID          int64          `json:"id"`
	Status      string         `json:"status"`
	CreatedAt   string         `json:"created_at"`
	CompletedAt string         `json:"completed_at,omitempty"`
	Submitters  []SubmitterDTO `json:"submitters"`
	Documents   []DocumentDTO  `json:"documents"`
	Template    TemplateRefDTO `json:"template"`
}

// SubmissionListResponseDTO matches the provider's paginated submission
// listing schema.
type SubmissionListResponseDTO struct {
	Data       []SubmissionDTO `json:"data"`
	Pagination PaginationDTO   `json:"pagination"`
}

// PaginationDTO carries the provider's cursor pagination metadata.
type PaginationDTO struct {
	Count int64 `json:"count"`
	Next  int64 `json:"next"`
	Prev  int64 `json:"prev"`
}

// CreateSubmissionRequestDTO matches the provider's submission creation
// schema. SendEmail is always true: the provider emails the signing link
// to the signer directly. Fields carries optional pre-filled values keyed
// by field name.
type CreateSubmissionRequestDTO struct {
	TemplateID int64             `json:"template_id"`
	SendEmail  bool              `json:"send_email"`
	Submitters []SubmitterDTO    `json:"submitters"`
	Fields     map[string]string `json:"fields,omitempty"`
}
