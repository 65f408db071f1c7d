package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/campus-resource-hub/actionlog"
	"github.com/AntonStoeckl/campus-resource-hub/core"
)

var (
	// ErrInvalidAmount is returned for non-positive amounts and negative initial balances.
	ErrInvalidAmount = core.ErrInvalidAmount

	// ErrInsufficientFunds is returned when a withdrawal or transfer exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidDestination is returned when a transfer has no destination or targets the source itself.
	ErrInvalidDestination = errors.New("transfer destination must be another account")
)

// Account holds a non-negative balance for exactly one owner.
type Account struct {
	owner      core.OwnerID
	balance    core.Amount
	log        *actionlog.Log
	secretHash []byte
}

// Option configures an Account at construction.
type Option func(*Account) error

// WithActionLog attaches an action log. Every successful mutation is recorded into it.
func WithActionLog(log *actionlog.Log) Option {
	return func(a *Account) error {
		a.log = log
		return nil
	}
}

// NewAccount opens an account for owner with an initial balance which must not be negative.
func NewAccount(owner core.OwnerID, initialBalance core.Amount, opts ...Option) (*Account, error) {
	if core.IsBlank(owner) {
		return nil, core.ValidationError(core.ErrInvalidIdentifier)
	}

	if initialBalance.IsNegative() {
		return nil, core.ValidationError(fmt.Errorf("%w: initial balance %s is negative", ErrInvalidAmount, initialBalance))
	}

	a := &Account{
		owner:   owner,
		balance: initialBalance,
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Owner returns the identity the account is attributed to.
func (a *Account) Owner() core.OwnerID {
	return a.owner
}

// Balance returns the current balance.
func (a *Account) Balance() core.Amount {
	return a.balance
}

// History returns a snapshot of the attached action log, or nil if no log is attached.
func (a *Account) History() []actionlog.Entry {
	if a.log == nil {
		return nil
	}

	return a.log.History()
}

// Deposit increases the balance by amount, which must be positive.
func (a *Account) Deposit(amount core.Amount) error {
	if err := validatePositive(amount); err != nil {
		return err
	}

	a.balance = a.balance.Add(amount)
	a.record(actionlog.KindDeposit, fmt.Sprintf("%s deposited %s", a.owner, core.FormatAmount(amount)))

	return nil
}

// Withdraw decreases the balance by amount, which must be positive and not exceed the balance.
// A failed withdrawal leaves the balance unchanged.
func (a *Account) Withdraw(amount core.Amount) error {
	if err := a.validateWithdrawal(amount); err != nil {
		return err
	}

	a.balance = a.balance.Sub(amount)
	a.record(actionlog.KindWithdrawal, fmt.Sprintf("%s withdrew %s", a.owner, core.FormatAmount(amount)))

	return nil
}

// Transfer moves amount from this account to destination as one logical unit.
func (a *Account) Transfer(destination *Account, amount core.Amount) error {
	if destination == nil || destination == a {
		return core.ValidationError(ErrInvalidDestination)
	}

	if err := a.validateWithdrawal(amount); err != nil {
		return err
	}

	// Both preconditions hold, nothing below can fail.
	a.balance = a.balance.Sub(amount)
	destination.balance = destination.balance.Add(amount)

	formatted := core.FormatAmount(amount)
	a.record(actionlog.KindTransferOut, fmt.Sprintf("%s transferred %s to %s", a.owner, formatted, destination.owner))
	destination.record(actionlog.KindTransferIn, fmt.Sprintf("%s received %s from %s", destination.owner, formatted, a.owner))

	return nil
}

// String renders the account, e.g. "Account(owner=S001, balance=350.00)".
func (a *Account) String() string {
	return fmt.Sprintf("Account(owner=%s, balance=%s)", a.owner, core.FormatAmount(a.balance))
}

func (a *Account) validateWithdrawal(amount core.Amount) error {
	if err := validatePositive(amount); err != nil {
		return err
	}

	if amount.GreaterThan(a.balance) {
		return core.StateConflictError(
			fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, core.FormatAmount(a.balance), core.FormatAmount(amount)),
		)
	}

	return nil
}

func (a *Account) record(kind actionlog.Kind, detail string) {
	if a.log == nil {
		return
	}

	_, _ = a.log.Record(kind, detail) // kinds are non-empty constants
}

func validatePositive(amount core.Amount) error {
	if !amount.GreaterThan(decimal.Zero) {
		return core.ValidationError(fmt.Errorf("%w: %s must be positive", ErrInvalidAmount, amount))
	}

	return nil
}
