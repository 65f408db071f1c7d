package catalog

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/AntonStoeckl/campus-resource-hub/actionlog"
	"github.com/AntonStoeckl/campus-resource-hub/core"
	"github.com/AntonStoeckl/campus-resource-hub/resource"
)

const emptyCatalogRendering = "Catalog (empty)"

// ErrInvalidConsumer is returned by Allocate for a nil consumer or one without identity.
var ErrInvalidConsumer = errors.New("consumer must be non-nil and expose a non-empty identity")

// Catalog is an ordered collection of resources without duplicate identifiers.
type Catalog struct {
	resources []*resource.Resource
	log       *actionlog.Log
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithActionLog attaches an action log that records allocations and releases.
func WithActionLog(log *actionlog.Log) Option {
	return func(c *Catalog) {
		c.log = log
	}
}

// New creates an empty Catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		resources: make([]*resource.Resource, 0),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Add appends r unless a resource with the same identifier is already present.
// It reports whether r was added. Adding a duplicate or nil is a no-op.
func (c *Catalog) Add(r *resource.Resource) bool {
	if r == nil || c.indexOf(r.ID()) >= 0 {
		return false
	}

	c.resources = append(c.resources, r)

	return true
}

// Remove removes the resource with the given identifier and reports whether anything was removed.
func (c *Catalog) Remove(id core.ResourceID) bool {
	idx := c.indexOf(id)
	if idx < 0 {
		return false
	}

	c.resources = slices.Delete(c.resources, idx, idx+1)

	return true
}

// Lookup returns the resource with exactly the given identifier.
func (c *Catalog) Lookup(id core.ResourceID) (*resource.Resource, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return nil, false
	}

	return c.resources[idx], true
}

// Len returns the number of resources in the catalog.
func (c *Catalog) Len() int {
	return len(c.resources)
}

// All yields every resource in catalog order.
func (c *Catalog) All() iter.Seq[*resource.Resource] {
	return func(yield func(*resource.Resource) bool) {
		for _, r := range c.resources {
			if !yield(r) {
				return
			}
		}
	}
}

// Available yields the resources that are currently available, in catalog order.
// The sequence is lazy and can be ranged over repeatedly, each pass sees the current state.
func (c *Catalog) Available() iter.Seq[*resource.Resource] {
	return func(yield func(*resource.Resource) bool) {
		for _, r := range c.resources {
			if r.IsAvailable() && !yield(r) {
				return
			}
		}
	}
}

// CountByStatus returns the number of resources per status. Every status is present in the result.
func (c *Catalog) CountByStatus() map[resource.Status]int {
	counts := make(map[resource.Status]int, len(resource.Statuses()))
	for _, status := range resource.Statuses() {
		counts[status] = 0
	}

	for _, r := range c.resources {
		counts[r.Status()]++
	}

	return counts
}

// Allocate claims the first available resource for consumer.
//
// The returned error is non-nil only when consumer breaks the Consumer contract.
// Otherwise, the Allocation tells whether a resource was bound, not needed, or not available.
func (c *Catalog) Allocate(consumer Consumer) (Allocation, error) {
	if isNilConsumer(consumer) || core.IsBlank(consumer.ConsumerID()) {
		return Allocation{}, core.ValidationError(ErrInvalidConsumer)
	}

	consumerID := consumer.ConsumerID()

	if !consumer.NeedsAllocation() {
		return notNeeded(consumerID), nil
	}

	for r := range c.Available() {
		if r.Claim(consumerID) {
			c.record(actionlog.KindAllocation, fmt.Sprintf("%s allocated to %s", r.ID(), consumerID))
			return allocated(consumerID, r), nil
		}
	}

	return noneAvailable(consumerID), nil
}

// ReleaseResource releases the resource with the given identifier and reports whether it was borrowed.
func (c *Catalog) ReleaseResource(id core.ResourceID) bool {
	r, ok := c.Lookup(id)
	if !ok {
		return false
	}

	holder, _ := r.Holder()
	if !r.Release() {
		return false
	}

	c.record(actionlog.KindRelease, fmt.Sprintf("%s released by %s", id, holder))

	return true
}

// ReleaseFor releases the resource with the given identifier only when consumer holds it,
// and reports whether it was released.
func (c *Catalog) ReleaseFor(id core.ResourceID, consumer core.ConsumerID) bool {
	r, ok := c.Lookup(id)
	if !ok {
		return false
	}

	if holder, borrowed := r.Holder(); !borrowed || holder != consumer {
		return false
	}

	return c.ReleaseResource(id)
}

// History returns a snapshot of the attached action log, or nil if no log is attached.
func (c *Catalog) History() []actionlog.Entry {
	if c.log == nil {
		return nil
	}

	return c.log.History()
}

// String renders the catalog, e.g. "Catalog (2 items): 3D Printer (Lab, available), Laptop (Equipment, borrowed)".
func (c *Catalog) String() string {
	if len(c.resources) == 0 {
		return emptyCatalogRendering
	}

	items := make([]string, 0, len(c.resources))
	for _, r := range c.resources {
		items = append(items, r.String())
	}

	return fmt.Sprintf("Catalog (%d items): %s", len(c.resources), strings.Join(items, ", "))
}

func (c *Catalog) indexOf(id core.ResourceID) int {
	return slices.IndexFunc(c.resources, func(r *resource.Resource) bool {
		return r.ID() == id
	})
}

func (c *Catalog) record(kind actionlog.Kind, detail string) {
	if c.log == nil {
		return
	}

	_, _ = c.log.Record(kind, detail) // kinds are non-empty constants
}

// isNilConsumer also catches typed nil pointers wrapped in the interface.
func isNilConsumer(consumer Consumer) bool {
	if consumer == nil {
		return true
	}

	v := reflect.ValueOf(consumer)

	return v.Kind() == reflect.Ptr && v.IsNil()
}
