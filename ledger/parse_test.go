package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/campus-resource-hub/core"
	"github.com/AntonStoeckl/campus-resource-hub/ledger"
)

func Test_ParseAccountLine_BuildsSecretProtectedAccount(t *testing.T) {
	account, err := ledger.ParseAccountLine(" Zahra , 500.00 , 4321 ")

	require.NoError(t, err)
	assert.Equal(t, "Zahra", account.Owner())
	assertBalance(t, "500.00", account)
	assert.True(t, account.HasSecret())
	assert.NoError(t, account.Authorize("4321"))
}

func Test_ParseAccountLine_Errors(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		expectedErr error
	}{
		{name: "too few fields", line: "Zahra, 500.00", expectedErr: ledger.ErrMalformedAccountLine},
		{name: "too many fields", line: "Zahra, 500.00, 4321, x", expectedErr: ledger.ErrMalformedAccountLine},
		{name: "empty owner", line: " , 500.00, 4321", expectedErr: ledger.ErrMalformedAccountLine},
		{name: "empty secret", line: "Zahra, 500.00, ", expectedErr: ledger.ErrMalformedAccountLine},
		{name: "non-numeric balance", line: "Zahra, lots, 4321", expectedErr: ledger.ErrInvalidAmount},
		{name: "negative balance", line: "Zahra, -1, 4321", expectedErr: ledger.ErrInvalidAmount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			account, err := ledger.ParseAccountLine(tc.line)

			assert.Nil(t, account)
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.True(t, core.IsValidation(err))
		})
	}
}
