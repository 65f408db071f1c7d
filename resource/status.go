package resource

// Status is the lifecycle state of a Resource.
type Status int

const (
	// Available resources can be claimed.
	Available Status = iota

	// Borrowed resources have exactly one holder.
	Borrowed

	// Maintenance resources are withdrawn by an external authority and cannot be claimed.
	Maintenance
)

// Statuses lists all states in declaration order.
func Statuses() []Status {
	return []Status{Available, Borrowed, Maintenance}
}

// String provides a string representation of Status for rendering and logging.
func (s Status) String() string {
	switch s {
	case Available:
		return "available"
	case Borrowed:
		return "borrowed"
	case Maintenance:
		return "maintenance"
	default:
		return "unknown"
	}
}
