// Package catalog implements the allocation catalog: an ordered collection of resources
// that matches consumers to the first available resource.
//
// Consumers take part in allocation by implementing the Consumer capability contract.
// Allocation is first-fit in insertion order. "Not needed" and "none available" are
// ordinary outcomes reported through Allocation, not errors.
// Only a consumer that breaks the contract (nil or without identity) is reported as ErrInvalidConsumer.
//
//	c := catalog.New()
//	c.Add(printer)
//	c.Add(laptop)
//
//	allocation, err := c.Allocate(student)
//	if err != nil {
//		// programming error
//	}
//
//	if !allocation.Succeeded() {
//		// queue, retry later or report unavailability
//	}
//
// A Catalog is not safe for concurrent use.
package catalog
