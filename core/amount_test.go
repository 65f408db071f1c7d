package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/campus-resource-hub/core"
)

func Test_ParseAmount(t *testing.T) {
	amount, err := core.ParseAmount(" 150.5 ")

	require.NoError(t, err)
	assert.Equal(t, "150.50", core.FormatAmount(amount))
}

func Test_ParseAmount_RejectsNonNumericInput(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "12.3.4"} {
		t.Run(input, func(t *testing.T) {
			_, err := core.ParseAmount(input)

			assert.ErrorIs(t, err, core.ErrInvalidAmount)
			assert.True(t, core.IsValidation(err))
		})
	}
}

func Test_MustAmount_PanicsOnInvalidInput(t *testing.T) {
	assert.Panics(t, func() { core.MustAmount("nope") })
}

func Test_ErrorClasses_AreDistinct(t *testing.T) {
	validation := core.ValidationError(core.ErrInvalidIdentifier)
	conflict := core.StateConflictError(core.ErrInvalidAmount)

	assert.True(t, core.IsValidation(validation))
	assert.False(t, core.IsStateConflict(validation))
	assert.True(t, core.IsStateConflict(conflict))
	assert.False(t, core.IsValidation(conflict))
	assert.ErrorIs(t, validation, core.ErrInvalidIdentifier)
}
