package catalog

import (
	"github.com/AntonStoeckl/campus-resource-hub/core"
	"github.com/AntonStoeckl/campus-resource-hub/resource"
)

// Outcome describes the result of an allocation request.
type Outcome int

const (
	// OutcomeAllocated means a resource was claimed for the consumer.
	OutcomeAllocated Outcome = iota

	// OutcomeNotNeeded means the consumer did not need a resource, nothing changed.
	OutcomeNotNeeded

	// OutcomeNoneAvailable means no resource was available, nothing changed.
	OutcomeNoneAvailable
)

// String provides a string representation of Outcome for logging and debugging.
func (o Outcome) String() string {
	switch o {
	case OutcomeAllocated:
		return "allocated"
	case OutcomeNotNeeded:
		return "not_needed"
	case OutcomeNoneAvailable:
		return "none_available"
	default:
		return "unknown"
	}
}

// Allocation is the result of Catalog.Allocate.
//
// It should only be constructed with the factory functions in this package.
type Allocation struct {
	Outcome  Outcome
	Consumer core.ConsumerID
	Resource *resource.Resource // nil unless Outcome is OutcomeAllocated
}

func allocated(consumer core.ConsumerID, r *resource.Resource) Allocation {
	return Allocation{Outcome: OutcomeAllocated, Consumer: consumer, Resource: r}
}

func notNeeded(consumer core.ConsumerID) Allocation {
	return Allocation{Outcome: OutcomeNotNeeded, Consumer: consumer}
}

func noneAvailable(consumer core.ConsumerID) Allocation {
	return Allocation{Outcome: OutcomeNoneAvailable, Consumer: consumer}
}

// Succeeded reports whether a resource was bound to the consumer.
func (a Allocation) Succeeded() bool {
	return a.Outcome == OutcomeAllocated
}
