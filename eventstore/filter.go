package eventstore

import (
	"slices"
	"time"
)

type FilterKindString = string
type FilterOwnerString = string

/***** Filter *****/

// Filter matches entries whose items match with OR and whose OccurredAt lies in the optional time range.
type Filter struct {
	items         []FilterItem
	occurredFrom  time.Time
	occurredUntil time.Time
}

func (f Filter) Items() []FilterItem {
	return f.items
}

// OccurredFrom returns a copy of the filter that only matches entries at or after t.
func (f Filter) OccurredFrom(t time.Time) Filter {
	f.occurredFrom = t
	return f
}

// OccurredUntil returns a copy of the filter that only matches entries at or before t.
func (f Filter) OccurredUntil(t time.Time) Filter {
	f.occurredUntil = t
	return f
}

// From returns the lower time bound, the zero time means unbounded.
func (f Filter) From() time.Time {
	return f.occurredFrom
}

// Until returns the upper time bound, the zero time means unbounded.
func (f Filter) Until() time.Time {
	return f.occurredUntil
}

// Matches reports whether entry satisfies the filter.
// Engines that cannot push the filter down to a query language use it directly.
func (f Filter) Matches(entry StorableEntry) bool {
	if !f.occurredFrom.IsZero() && entry.OccurredAt.Before(f.occurredFrom) {
		return false
	}

	if !f.occurredUntil.IsZero() && entry.OccurredAt.After(f.occurredUntil) {
		return false
	}

	if len(f.items) == 0 {
		return true
	}

	return slices.ContainsFunc(f.items, func(item FilterItem) bool {
		return item.matches(entry)
	})
}

/***** FilterItem *****/

// FilterItem matches entries with ANY of its kinds AND ANY of its owners. An empty list matches everything.
type FilterItem struct {
	kinds  []FilterKindString
	owners []FilterOwnerString
}

func (fi FilterItem) Kinds() []FilterKindString {
	return fi.kinds
}

func (fi FilterItem) Owners() []FilterOwnerString {
	return fi.owners
}

func (fi FilterItem) matches(entry StorableEntry) bool {
	if len(fi.kinds) > 0 && !slices.Contains(fi.kinds, entry.Kind) {
		return false
	}

	if len(fi.owners) > 0 && !slices.Contains(fi.owners, entry.Owner) {
		return false
	}

	return true
}

/***** FilterBuilder *****/

// FilterBuilder builds a generic entry filter to be used in engine-specific implementations to build queries for
// the specific query language, or to match entries in memory.
// It only allows these combinations:
//
//   - empty filter
//   - (kind OR kind...)
//   - (owner OR owner...)
//   - ((kind OR kind...) AND (owner OR owner...))
//   - multiple of the above joined with OR -> multiple FilterItem(s)
type FilterBuilder interface {
	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnyEntry directly creates an empty Filter.
	MatchingAnyEntry() Filter
}

type EmptyFilterItemBuilder interface {
	// AnyKindOf adds one or multiple kinds to the current FilterItem.
	//
	// It sanitizes the input:
	//	- removing empty kinds ("")
	//	- sorting the kinds
	//	- removing duplicate kinds
	AnyKindOf(kind FilterKindString, kinds ...FilterKindString) FilterItemBuilderLackingOwners

	// ForOwners adds one or multiple owners to the current FilterItem, sanitized like the kinds.
	ForOwners(owner FilterOwnerString, owners ...FilterOwnerString) FilterItemBuilderLackingKinds
}

type FilterItemBuilderLackingOwners interface {
	// AndForOwners adds one or multiple owners to the current FilterItem.
	AndForOwners(owner FilterOwnerString, owners ...FilterOwnerString) CompletedFilterItemBuilder

	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

type FilterItemBuilderLackingKinds interface {
	// AndAnyKindOf adds one or multiple kinds to the current FilterItem.
	AndAnyKindOf(kind FilterKindString, kinds ...FilterKindString) CompletedFilterItemBuilder

	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

type CompletedFilterItemBuilder interface {
	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

// filterBuilder implements all the interfaces of FilterBuilder
type filterBuilder struct {
	filter            Filter
	currentFilterItem FilterItem
}

// BuildEntryFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnyEntry().
func BuildEntryFilter() FilterBuilder {
	return filterBuilder{}
}

// Matching starts a new FilterItem.
func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.currentFilterItem = FilterItem{}

	return fb
}

// AnyKindOf adds one or multiple kinds to the current FilterItem expecting ANY kind to match.
func (fb filterBuilder) AnyKindOf(kind FilterKindString, kinds ...FilterKindString) FilterItemBuilderLackingOwners {
	fb.currentFilterItem.kinds = sanitize(append(slices.Clone(fb.currentFilterItem.kinds), append([]string{kind}, kinds...)...))

	return fb
}

// AndAnyKindOf adds one or multiple kinds to the current FilterItem expecting ANY kind to match.
func (fb filterBuilder) AndAnyKindOf(kind FilterKindString, kinds ...FilterKindString) CompletedFilterItemBuilder {
	return fb.AnyKindOf(kind, kinds...)
}

// ForOwners adds one or multiple owners to the current FilterItem expecting ANY owner to match.
func (fb filterBuilder) ForOwners(owner FilterOwnerString, owners ...FilterOwnerString) FilterItemBuilderLackingKinds {
	fb.currentFilterItem.owners = sanitize(append(slices.Clone(fb.currentFilterItem.owners), append([]string{owner}, owners...)...))

	return fb
}

// AndForOwners adds one or multiple owners to the current FilterItem expecting ANY owner to match.
func (fb filterBuilder) AndForOwners(owner FilterOwnerString, owners ...FilterOwnerString) CompletedFilterItemBuilder {
	return fb.ForOwners(owner, owners...)
}

// OrMatching finalizes the current FilterItem and starts a new one.
func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.currentFilterItem)
	fb.currentFilterItem = FilterItem{}

	return fb
}

// MatchingAnyEntry directly creates an empty filter.
func (fb filterBuilder) MatchingAnyEntry() Filter {
	return fb.filter
}

// Finalize returns the Filter. A FilterItem that ended up empty after sanitizing is dropped.
func (fb filterBuilder) Finalize() Filter {
	items := append(slices.Clone(fb.filter.items), fb.currentFilterItem)
	fb.filter.items = slices.DeleteFunc(items, func(item FilterItem) bool {
		return len(item.kinds) == 0 && len(item.owners) == 0
	})

	return fb.filter
}

// sanitize removes empty values, sorts, and removes duplicates.
func sanitize(values []string) []string {
	values = slices.DeleteFunc(values, func(v string) bool { return v == "" })
	slices.Sort(values)
	values = slices.Compact(values)

	return slices.Clip(values)
}
