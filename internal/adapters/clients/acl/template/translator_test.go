package template

import (
	"testing"
	"time"
)

func TestToDomainTemplate_FieldMapping(t *testing.T) {
	t.Parallel()

	dto := &TemplateDTO{
		ID:          7,
		Name:        "Enrollment Agreement",
		Slug:        "enrollment-agreement",
		Description: "Standard customer enrollment contract",
		Fields: []FieldDTO{
			{Name: "signature", Type: "signature", Required: true},
			{Name: "account_number", Type: "text", Required: false},
		},
		CreatedAt: "2026-01-05T10:00:00Z",
		UpdatedAt: "2026-02-01T12:30:00Z",
	}

	got := ToDomainTemplate(dto)

	if got.ID != 7 {
		t.Errorf("ID = %d, want 7", got.ID)
	}
	if got.Name != "Enrollment Agreement" {
		t.Errorf("Name = %q, want %q", got.Name, "Enrollment Agreement")
	}
	if got.Slug != "enrollment-agreement" {
		t.Errorf("Slug = %q, want %q", got.Slug, "enrollment-agreement")
	}
	if got.Description != "Standard customer enrollment contract" {
		t.Errorf("Description = %q, want %q", got.Description, "Standard customer enrollment contract")
	}
	if got.FieldCount() != 2 {
		t.Fatalf("FieldCount() = %d, want 2", got.FieldCount())
	}
	if got.Fields[0].Name != "signature" || got.Fields[0].Type != "signature" || !got.Fields[0].Required {
		t.Errorf("Fields[0] = %+v, want required signature field", got.Fields[0])
	}
	if !got.CreatedAt.Equal(time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v, want 2026-01-05T10:00:00Z", got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(time.Date(2026, 2, 1, 12, 30, 0, 0, time.UTC)) {
		t.Errorf("UpdatedAt = %v, want 2026-02-01T12:30:00Z", got.UpdatedAt)
	}
}

func TestToDomainTemplate_EmptyFields(t *testing.T) {
	t.Parallel()

	got := ToDomainTemplate(&TemplateDTO{ID: 1, Name: "Blank"})

	if got.FieldCount() != 0 {
		t.Errorf("FieldCount() = %d, want 0", got.FieldCount())
	}
	if !got.CreatedAt.IsZero() {
		t.Errorf("CreatedAt = %v, want zero time", got.CreatedAt)
	}
}

func TestToDomainTemplateList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		dtos      []TemplateDTO
		wantLen   int
		wantFirst int64
	}{
		{
			name: "converts multiple templates",
			dtos: []TemplateDTO{
				{ID: 1, Name: "A"},
				{ID: 2, Name: "B"},
			},
			wantLen:   2,
			wantFirst: 1,
		},
		{
			name:    "empty list",
			dtos:    []TemplateDTO{},
			wantLen: 0,
		},
		{
			name:    "nil slice",
			dtos:    nil,
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ToDomainTemplateList(tt.dtos)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0].ID != tt.wantFirst {
				t.Errorf("first ID = %d, want %d", got[0].ID, tt.wantFirst)
			}
		})
	}
}
