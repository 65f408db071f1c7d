// Package core contains the shared primitives of the campus resource hub:
// identifier types, monetary amounts, error classes and time handling.
//
// The ledger, resource, catalog and action log packages build on these
// primitives without depending on each other's internals.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
