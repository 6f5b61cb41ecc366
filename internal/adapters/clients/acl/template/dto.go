// Package template implements the Anti-Corruption Layer translators for
// the e-signature provider's template resources.
package template

// FieldDTO matches the provider's template field schema.
type FieldDTO struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// TemplateDTO matches the provider's template schema. Fields carries the
// fillable field definitions; Schema lists the source document pages and is
// only used for its length when the provider omits Fields.
type TemplateDTO struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Fields      []FieldDTO `json:"fields"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
}
