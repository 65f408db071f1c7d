package ledger

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/campus-resource-hub/core"
)

var (
	// ErrInvalidSecret is returned when a supplied secret does not match the account's secret.
	ErrInvalidSecret = errors.New("invalid secret")

	// ErrNoSecretConfigured is returned for authorized operations on an account without a secret.
	ErrNoSecretConfigured = errors.New("account has no secret configured")

	// ErrEmptySecret is returned when an empty secret is configured.
	ErrEmptySecret = errors.New("secret must not be empty")
)

// WithSecret protects authorized operations with a shared secret, e.g. a PIN.
// Only a bcrypt hash of the secret is kept.
func WithSecret(secret string) Option {
	return func(a *Account) error {
		if secret == "" {
			return core.ValidationError(ErrEmptySecret)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
		if err != nil {
			return core.ValidationError(errors.Join(ErrEmptySecret, err))
		}

		a.secretHash = hash

		return nil
	}
}

// HasSecret reports whether the account is protected by a secret.
func (a *Account) HasSecret() bool {
	return len(a.secretHash) > 0
}

// Authorize checks secret against the configured one.
func (a *Account) Authorize(secret string) error {
	if !a.HasSecret() {
		return core.ValidationError(ErrNoSecretConfigured)
	}

	if err := bcrypt.CompareHashAndPassword(a.secretHash, []byte(secret)); err != nil {
		return core.ValidationError(ErrInvalidSecret)
	}

	return nil
}

// AuthorizedWithdraw checks the secret before withdrawing. A wrong secret leaves the balance unchanged.
func (a *Account) AuthorizedWithdraw(secret string, amount core.Amount) error {
	if err := a.Authorize(secret); err != nil {
		return err
	}

	return a.Withdraw(amount)
}

// AuthorizedBalance returns the balance after checking the secret.
func (a *Account) AuthorizedBalance(secret string) (core.Amount, error) {
	if err := a.Authorize(secret); err != nil {
		return core.Amount{}, err
	}

	return a.balance, nil
}
