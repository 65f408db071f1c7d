package resource

import (
	"errors"
	"fmt"

	"github.com/AntonStoeckl/campus-resource-hub/core"
)

var (
	// ErrInvalidName is returned when a resource is built without a name.
	ErrInvalidName = errors.New("resource name must be a non-empty string")

	// ErrInvalidType is returned when a resource is built without a type tag.
	ErrInvalidType = errors.New("resource type must be a non-empty string")
)

// Resource is a single allocatable unit, e.g. a lab or a laptop.
//
// Resource is not safe for concurrent use.
type Resource struct {
	id     core.ResourceID
	name   string
	rtype  string
	status Status
	holder core.ConsumerID
}

// Option configures a Resource at construction.
type Option func(*Resource)

// InMaintenance builds the resource in the Maintenance state instead of Available.
func InMaintenance() Option {
	return func(r *Resource) {
		r.status = Maintenance
	}
}

// New builds an Available resource. All fields must be non-empty.
func New(id core.ResourceID, name string, resourceType string, opts ...Option) (*Resource, error) {
	if core.IsBlank(id) {
		return nil, core.ValidationError(core.ErrInvalidIdentifier)
	}

	if core.IsBlank(name) {
		return nil, core.ValidationError(ErrInvalidName)
	}

	if core.IsBlank(resourceType) {
		return nil, core.ValidationError(ErrInvalidType)
	}

	r := &Resource{
		id:     id,
		name:   name,
		rtype:  resourceType,
		status: Available,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// ID returns the immutable identifier.
func (r *Resource) ID() core.ResourceID {
	return r.id
}

// Name returns the display name.
func (r *Resource) Name() string {
	return r.name
}

// Type returns the category tag, e.g. "Lab" or "Equipment".
func (r *Resource) Type() string {
	return r.rtype
}

// Status returns the current state.
func (r *Resource) Status() Status {
	return r.status
}

// Holder returns the consumer currently holding the resource and whether there is one.
func (r *Resource) Holder() (core.ConsumerID, bool) {
	return r.holder, r.holder != ""
}

// IsAvailable is the single availability predicate used for claiming.
func (r *Resource) IsAvailable() bool {
	return r.status == Available
}

// Claim binds the resource to consumer. It returns false, changing nothing,
// when the resource is not available or the consumer identity is empty.
func (r *Resource) Claim(consumer core.ConsumerID) bool {
	if !r.IsAvailable() || core.IsBlank(consumer) {
		return false
	}

	r.status = Borrowed
	r.holder = consumer

	return true
}

// Release returns a borrowed resource and clears its holder.
// On any other state it is a no-op and returns false.
func (r *Resource) Release() bool {
	if r.status != Borrowed {
		return false
	}

	r.status = Available
	r.holder = ""

	return true
}

// EnterMaintenance takes an available resource out of circulation.
func (r *Resource) EnterMaintenance() bool {
	if r.status != Available {
		return false
	}

	r.status = Maintenance

	return true
}

// ExitMaintenance puts a resource in maintenance back into circulation.
func (r *Resource) ExitMaintenance() bool {
	if r.status != Maintenance {
		return false
	}

	r.status = Available

	return true
}

// Equals compares resources by identifier.
func (r *Resource) Equals(other *Resource) bool {
	if r == nil || other == nil {
		return r == other
	}

	return r.id == other.id
}

// String renders a human-readable description, e.g. "Laptop (Equipment, borrowed)".
func (r *Resource) String() string {
	return fmt.Sprintf("%s (%s, %s)", r.name, r.rtype, r.status)
}
