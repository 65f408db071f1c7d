// Package actionlog provides an append-only, per-entity record of actions.
//
// An entity that wants action history owns a *Log and delegates to it:
//
//	log := actionlog.New()
//	account, _ := ledger.NewAccount("S001", core.MustAmount("500.00"), ledger.WithActionLog(log))
//	_ = account.Deposit(core.MustAmount("10.00"))
//
//	entries := log.History() // a snapshot, later appends do not affect it
//	fmt.Print(log.Render())
//
// Insertion order is the only ordering guarantee. Timestamps are informational.
package actionlog
