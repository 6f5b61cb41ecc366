package submission

// Filter holds optional criteria for listing submissions.
// Zero values mean "no filtering on this field".
type Filter struct {
	Status     Status
	TemplateID *int64
}
