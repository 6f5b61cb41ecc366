// Package domain holds the types shared by every entity package. The
// entities themselves live in sub-packages (domain/submission,
// domain/template, domain/webhook); this root carries the error sentinels
// and the validation error they all report through.
package domain
