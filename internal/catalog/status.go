package catalog

// Status is the display-time state of a borrow record. It is derived from
// the record and the current date and is never stored.
type Status string

const (
	StatusReturned Status = "returned"
	StatusOverdue  Status = "overdue"
	StatusNormal   Status = "normal"
)

// DeriveStatus classifies a record as of today. A returned record is
// returned regardless of its deadline; otherwise it is overdue only when the
// deadline is strictly before today.
func DeriveStatus(returned bool, deadline, today Date) Status {
	switch {
	case returned:
		return StatusReturned
	case deadline.Before(today):
		return StatusOverdue
	default:
		return StatusNormal
	}
}
