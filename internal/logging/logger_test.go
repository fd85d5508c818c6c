package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConfigureSetsDebugLevel(t *testing.T) {
	require.NoError(t, Configure(true))
	assert.True(t, IsDebug())

	require.NoError(t, Configure(false))
	assert.False(t, IsDebug())
}

func TestGetCachesLoggerPerCategory(t *testing.T) {
	require.NoError(t, Configure(false))

	a := Get(CategoryEngine)
	b := Get(CategoryEngine)
	assert.Same(t, a, b)

	c := Get(CategoryLazy)
	assert.NotSame(t, a, c)
}

func TestGetWorksWithoutConfigure(t *testing.T) {
	mu.Lock()
	started = false
	cache = make(map[Category]*zap.Logger)
	mu.Unlock()

	l := Get(CategoryCLI)
	assert.NotNil(t, l)
}

func TestSyncDoesNotPanic(t *testing.T) {
	require.NoError(t, Configure(false))
	Get(CategoryEngine)
	assert.NotPanics(t, func() { Sync() })
}
