// Package template defines document template entities mirrored from the
// e-signature provider. Templates are read-only in this service: the provider
// owns creation and editing, we list and inspect them.
package template

import "time"

// Template represents a reusable signing document with its field schema.
type Template struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Fields      []Field
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Field describes a single fillable field within a template's schema.
type Field struct {
	Name     string
	Type     string
	Required bool
}

// FieldCount returns the number of fillable fields in the template schema.
func (t *Template) FieldCount() int {
	return len(t.Fields)
}
