package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt64ToInt(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := Int64ToInt(0)
		assert.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("valid negative", func(t *testing.T) {
		got, err := Int64ToInt(-42)
		assert.NoError(t, err)
		assert.Equal(t, -42, got)
	})

	t.Run("valid max int32", func(t *testing.T) {
		got, err := Int64ToInt(math.MaxInt32)
		assert.NoError(t, err)
		assert.Equal(t, math.MaxInt32, got)
	})
}

func TestInt64ToUint32(t *testing.T) {
	t.Run("valid positive", func(t *testing.T) {
		got, err := Int64ToUint32(123)
		assert.NoError(t, err)
		assert.Equal(t, uint32(123), got)
	})

	t.Run("valid max", func(t *testing.T) {
		got, err := Int64ToUint32(math.MaxUint32)
		assert.NoError(t, err)
		assert.Equal(t, uint32(math.MaxUint32), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := Int64ToUint32(-1)
		assert.Error(t, err)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := Int64ToUint32(math.MaxUint32 + 1)
		assert.Error(t, err)
	})
}

func TestUint64ToInt64(t *testing.T) {
	t.Run("valid max", func(t *testing.T) {
		got, err := Uint64ToInt64(math.MaxInt64)
		assert.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), got)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := Uint64ToInt64(math.MaxInt64 + 1)
		assert.Error(t, err)
	})
}
