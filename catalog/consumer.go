package catalog

import "github.com/AntonStoeckl/campus-resource-hub/core"

// Consumer is the capability contract a requester must satisfy to take part in allocation.
type Consumer interface {
	// ConsumerID returns a stable, non-empty identity.
	ConsumerID() core.ConsumerID

	// NeedsAllocation reports whether the consumer currently needs a resource.
	NeedsAllocation() bool
}
