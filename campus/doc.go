// Package campus holds the people, courses and head count around the resource hub.
//
// People are composed from a ledger.Account and an actionlog.Log instead of inheriting behavior.
// Students implement catalog.Consumer and Borrow ties allocation to mentor approval.
package campus
