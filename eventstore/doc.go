// Package eventstore provides the archive boundary for action log entries.
//
// Entries leave the in-memory core as StorableEntry DTOs built on scalars and JSON,
// so the engines stay agnostic of the domain types.
//
// Engines can be queried with a Filter:
//   - Entry kinds
//   - Owners
//   - Time ranges (occurred from/until)
//
// Key types:
//   - Filter: Defines criteria for querying entries
//   - StorableEntry: Represents an entry that can be stored and retrieved
//   - StorableEntries: Collection of storable entries
//
// Common usage pattern:
//
//	filter := BuildEntryFilter().
//		Matching().
//		AnyKindOf(actionlog.KindDeposit, actionlog.KindWithdrawal).
//		AndForOwners("S001").
//		Finalize().
//		OccurredFrom(since)
//
//	entries, maxSeq, err := archive.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	entry, err := eventstore.BuildStorableEntry(kind, owner, occurredAt, payload, metadata)
//	err = archive.Append(ctx, entry)
package eventstore
