package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(50))
	assert.Equal(t, int64(50), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	err := c.AcquireMemory(20)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())
	assert.False(t, c.TryAcquireMemory(20))

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(20))
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.Equal(t, int64(100), c.MemoryLimit())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())
}

func TestController_Fetch(t *testing.T) {
	c := NewController(Config{MaxConcurrentFetches: 2})
	assert.Equal(t, 2, c.MaxConcurrentFetches())

	require.NoError(t, c.AcquireFetch(t.Context()))
	require.NoError(t, c.AcquireFetch(t.Context()))

	assert.False(t, c.TryAcquireFetch())

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireFetch(ctx))

	c.ReleaseFetch()
	assert.True(t, c.TryAcquireFetch())
}

func TestController_IO(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	// The bucket starts full.
	assert.True(t, c.TryAcquireIO(1024))
	require.NoError(t, c.AcquireIO(t.Context(), 1024))

	assert.Equal(t, int64(1024), c.IOBytes())

	unlimited := NewController(Config{})
	assert.True(t, unlimited.TryAcquireIO(1<<30))
	require.NoError(t, unlimited.AcquireIO(t.Context(), 1<<30))
	assert.Equal(t, int64(1<<30), unlimited.IOBytes())
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireMemory(10))
	assert.True(t, c.TryAcquireMemory(10))
	c.ReleaseMemory(10)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())
	assert.Equal(t, 1, c.MaxConcurrentFetches())

	require.NoError(t, c.AcquireFetch(context.Background()))
	assert.True(t, c.TryAcquireFetch())
	c.ReleaseFetch()

	require.NoError(t, c.AcquireIO(context.Background(), 100))
	assert.True(t, c.TryAcquireIO(100))
	assert.Equal(t, int64(0), c.IOBytes())
}
