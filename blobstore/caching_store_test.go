package blobstore

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/hupe1980/binparse/internal/cache"
	"github.com/hupe1980/binparse/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBlob struct {
	mu        sync.Mutex
	data      []byte
	reads     int
	readBytes int
}

func (m *mockBlob) Close() error { return nil }
func (m *mockBlob) Size() int64  { return int64(len(m.data)) }
func (m *mockBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	m.readBytes += n
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

type mockStore struct {
	blobs map[string]*mockBlob
	opens int
}

func (m *mockStore) Open(_ context.Context, name string) (Blob, error) {
	m.opens++
	if b, ok := m.blobs[name]; ok {
		return b, nil
	}
	return nil, ErrNotFound
}

func (m *mockStore) Put(_ context.Context, name string, data []byte) error {
	if m.blobs == nil {
		m.blobs = make(map[string]*mockBlob)
	}
	m.blobs[name] = &mockBlob{data: data}
	return nil
}

func (m *mockStore) List(context.Context, string) ([]string, error) { return nil, nil }

func testData(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

func TestCachingStore_ReadAt(t *testing.T) {
	data := testData(1024)
	inner := &mockStore{blobs: map[string]*mockBlob{"libfoo.so": {data: data}}}

	c := cache.NewLRUBlockCache(1<<20, nil)
	store := NewCachingStore(inner, c, 256)

	blob, err := store.Open(context.Background(), "libfoo.so")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(1024), blob.Size())

	// Spans blocks 0 and 1.
	buf := make([]byte, 100)
	n, err := blob.ReadAt(context.Background(), buf, 200)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, data[200:300], buf)

	mb := inner.blobs["libfoo.so"]
	readsAfterFirst := mb.reads
	assert.Equal(t, 1, readsAfterFirst, "contiguous missing blocks are fetched in one read")

	// Served entirely from cache.
	n, err = blob.ReadAt(context.Background(), buf, 210)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, data[210:310], buf)
	assert.Equal(t, readsAfterFirst, mb.reads)

	hits, _ := c.Stats()
	assert.Positive(t, hits)
}

func TestCachingStore_ReadAtEnd(t *testing.T) {
	data := testData(300)
	inner := &mockStore{blobs: map[string]*mockBlob{"a": {data: data}}}
	store := NewCachingStore(inner, cache.NewLRUBlockCache(1<<20, nil), 128)

	blob, err := store.Open(context.Background(), "a")
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := blob.ReadAt(context.Background(), buf, 280)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 20, n)
	assert.Equal(t, data[280:], buf[:n])

	n, err = blob.ReadAt(context.Background(), buf, 300)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 0, n)

	n, err = blob.ReadAt(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCachingStore_ControllerAndCancel(t *testing.T) {
	data := testData(4096)
	inner := &mockStore{blobs: map[string]*mockBlob{"a": {data: data}}}
	rc := resource.NewController(resource.Config{MaxConcurrentFetches: 2, MemoryLimitBytes: 1024})
	store := NewCachingStore(inner, cache.NewLRUBlockCache(1<<20, rc), 0).WithController(rc)

	blob, err := store.Open(context.Background(), "a")
	require.NoError(t, err)

	// Memory limit admits only part of the blocks; the rest is read through.
	buf := make([]byte, 4096)
	n, err := blob.ReadAt(context.Background(), buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 4096, n)
	assert.Equal(t, data, buf)
	assert.Equal(t, int64(inner.blobs["a"].readBytes), rc.IOBytes())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = blob.ReadAt(ctx, buf, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCachingStore_PacesBackendReads(t *testing.T) {
	data := testData(4096)
	inner := &mockStore{blobs: map[string]*mockBlob{"a": {data: data}}}
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	store := NewCachingStore(inner, cache.NewLRUBlockCache(1<<20, nil), 256).WithController(rc)

	blob, err := store.Open(context.Background(), "a")
	require.NoError(t, err)

	buf := make([]byte, 64)
	for range 40 {
		_, err := blob.ReadAt(context.Background(), buf, 0)
		require.NoError(t, err)
	}
	assert.Equal(t, 256, inner.blobs["a"].readBytes)
	assert.Equal(t, int64(256), rc.IOBytes())

	full := make([]byte, 4096)
	_, err = blob.ReadAt(context.Background(), full, 0)
	require.NoError(t, err)
	assert.Equal(t, 4096, inner.blobs["a"].readBytes)
	assert.Equal(t, int64(4096), rc.IOBytes())
}

func TestCachingStore_PutInvalidates(t *testing.T) {
	inner := &mockStore{blobs: map[string]*mockBlob{}}
	store := NewCachingStore(inner, cache.NewLRUBlockCache(1<<20, nil), 16)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "t", []byte("old\x00")))
	blob, err := store.Open(ctx, "t")
	require.NoError(t, err)
	buf := make([]byte, 3)
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "old", string(buf))

	require.NoError(t, store.Put(ctx, "t", []byte("new\x00")))
	blob, err = store.Open(ctx, "t")
	require.NoError(t, err)
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "new", string(buf))

	_, err = store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
