package template

import (
	"time"

	"github.com/betterdayenergy/esign-service/internal/domain/template"
)

// ToDomainTemplate converts a provider TemplateDTO to a domain Template
// entity. Timestamps are RFC3339; unparsable values yield zero times.
func ToDomainTemplate(dto *TemplateDTO) template.Template {
	createdAt, _ := time.Parse(time.RFC3339, dto.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, dto.UpdatedAt)

	fields := make([]template.Field, len(dto.Fields))
	for i, f := range dto.Fields {
		fields[i] = template.Field{
			Name:     f.Name,
			Type:     f.Type,
			Required: f.Required,
		}
	}

	return template.Template{
		ID:          dto.ID,
		Name:        dto.Name,
		Slug:        dto.Slug,
		Description: dto.Description,
		Fields:      fields,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// ToDomainTemplateList converts a provider template listing to a slice of
// domain Template entities.
func ToDomainTemplateList(dtos []TemplateDTO) []template.Template {
	templates := make([]template.Template, len(dtos))
	for i := range dtos {
		templates[i] = ToDomainTemplate(&dtos[i])
	}
	return templates
}
