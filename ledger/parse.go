package ledger

import (
	"errors"
	"strings"

	"github.com/AntonStoeckl/campus-resource-hub/core"
)

const accountLineFields = 3

// ErrMalformedAccountLine is returned when an account line does not have the form "owner, balance, secret".
var ErrMalformedAccountLine = errors.New("account line must have the form: owner, balance, secret")

// ParseAccountLine builds a secret-protected account from a line like "Zahra, 500.00, 4321".
func ParseAccountLine(line string, opts ...Option) (*Account, error) {
	parts := strings.Split(line, ",")
	if len(parts) != accountLineFields {
		return nil, core.ValidationError(ErrMalformedAccountLine)
	}

	owner := strings.TrimSpace(parts[0])
	secret := strings.TrimSpace(parts[2])

	if owner == "" || secret == "" {
		return nil, core.ValidationError(ErrMalformedAccountLine)
	}

	balance, err := core.ParseAmount(parts[1])
	if err != nil {
		return nil, err
	}

	allOpts := append([]Option{WithSecret(secret)}, opts...)

	return NewAccount(owner, balance, allOpts...)
}
