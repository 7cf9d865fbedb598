package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	data := []byte("\x00.symtab\x00.strtab\x00.text\x00")
	require.NoError(t, store.Put(ctx, "obj/main.o", data))
	require.NoError(t, store.Put(ctx, "obj/util.o", []byte("x")))
	require.NoError(t, store.Put(ctx, "lib.a", []byte("y")))

	blob, err := store.Open(ctx, "obj/main.o")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 7)
	n, err := blob.ReadAt(ctx, buf, 1)
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Equal(t, ".symtab", string(buf))

	m, ok := blob.(Mappable)
	require.True(t, ok)
	b, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, data, b)

	n, err = blob.ReadAt(ctx, make([]byte, 8), int64(len(data))-2)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.EOF)

	names, err := store.List(ctx, "obj/")
	require.NoError(t, err)
	assert.Equal(t, []string{"obj/main.o", "obj/util.o"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = store.Open(ctx, "missing.o")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	src := []byte("foo\x00bar\x00")
	require.NoError(t, store.Put(ctx, "a", src))
	src[0] = 'X' // Put copies

	blob, err := store.Open(ctx, "a")
	require.NoError(t, err)
	defer blob.Close()

	buf := make([]byte, 3)
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "foo", string(buf))

	b, err := blob.(Mappable).Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("foo\x00bar\x00"), b)

	_, err = blob.ReadAt(ctx, buf, 100)
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, store.Put(ctx, "b", nil))
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	_, err = store.Open(ctx, "c")
	assert.ErrorIs(t, err, ErrNotFound)
}
