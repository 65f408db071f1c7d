// Package resource models a single allocatable unit with a three-state status machine.
//
// State machine:
//
//	Available --Claim(consumer)--> Borrowed
//	Borrowed  --Release()-------> Available
//	Available --EnterMaintenance--> Maintenance   (external authority)
//	Maintenance --ExitMaintenance--> Available    (external authority)
//
// The holder is set if and only if the status is Borrowed.
// Claim on a Borrowed or Maintenance resource returns false without side effects.
// Release on a resource that is not Borrowed is a no-op returning false.
package resource
