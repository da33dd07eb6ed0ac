package runtimeconfig

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultUsesInMemoryBackends(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "memory", cfg.StateBackend)
	assert.Equal(t, "dispatcher", cfg.OrchestratorBackend)
}

func TestLoadOverlaysOntoDefault(t *testing.T) {
	t.Parallel()

	doc := `
state_backend: redis
redis:
  addr: localhost:6379
`
	cfg, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.StateBackend)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "dispatcher", cfg.OrchestratorBackend)
}

func TestLoadEmptyDocumentReturnsDefault(t *testing.T) {
	t.Parallel()

	cfg, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
