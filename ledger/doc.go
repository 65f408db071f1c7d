// Package ledger implements balance-holding accounts with deposit, withdraw and transfer semantics.
//
// The balance of an Account is never negative at any observable point.
// Transfers check every precondition before either balance changes, so the source decreases
// by exactly the amount and the destination increases by exactly the amount, or neither happens.
//
// Error classes:
//   - ErrInvalidAmount, ErrInvalidDestination, ErrInvalidSecret, ... are joined with core.ErrValidation
//   - ErrInsufficientFunds is joined with core.ErrStateConflict
//
// Accounts are not safe for concurrent use.
package ledger
