package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counsel/internal/platform/config"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.Tracing{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupWithEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.Tracing{
		Endpoint:    "localhost:4318",
		Insecure:    true,
		SampleRatio: 1,
		ServiceName: "counsel-test",
	})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
