package submission

// Status represents the provider-reported state of a submission.
type Status string

const (
	StatusPending   Status = "pending"
	StatusOpened    Status = "opened"
	StatusCompleted Status = "completed"
	StatusDeclined  Status = "declined"
	StatusExpired   Status = "expired"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusOpened, StatusCompleted, StatusDeclined, StatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the submission can no longer change state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusDeclined, StatusExpired:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
