package climblog_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadyz(t *testing.T) {
	baseURL := setupDevserver(t, nil)
	env := newClientEnv(t, baseURL)

	health, err := env.client.Ready(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.Signer)
}
