package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/campus-resource-hub/example/config"
)

func Test_NewObservabilityProviders_RegistersGlobalProviders(t *testing.T) {
	// arrange
	ctx := context.Background()

	// act
	providers, err := config.NewObservabilityProviders(ctx, "http://127.0.0.1:4318")
	require.NoError(t, err)

	t.Cleanup(func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_ = providers.Shutdown(canceled)
	})

	// assert
	assert.Same(t, providers.TracerProvider, otel.GetTracerProvider())
	assert.NotNil(t, providers.Tracer())
	assert.NotNil(t, providers.Meter())
}
