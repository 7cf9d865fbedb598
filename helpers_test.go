package binparse

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/binparse/blobstore"
	"github.com/hupe1980/binparse/internal/cache"
	"github.com/hupe1980/binparse/source"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strtab.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// backends returns the same bytes behind every kind of source.
func backends(t *testing.T, data []byte) map[string]source.Source {
	t.Helper()
	path := writeFile(t, data)

	mapped, err := source.MapFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mapped.Close() })

	handle, err := source.OpenHandle(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = handle.Close() })

	ctx := context.Background()
	store := blobstore.NewCachingStore(blobstore.NewMemoryStore(), cache.NewLRUBlockCache(1<<20, nil), 7)
	require.NoError(t, store.Put(ctx, "strtab", data))
	blob, err := store.Open(ctx, "strtab")
	require.NoError(t, err)
	remote, err := source.NewBlob(ctx, blob)
	require.NoError(t, err)

	return map[string]source.Source{
		"memory":   source.NewMemory(data),
		"mapped":   mapped,
		"handle":   handle,
		"readerat": source.NewReaderAt(bytes.NewReader(data), int64(len(data))),
		"blob":     remote,
	}
}

func newTable(t *testing.T, src source.Source, enc Encoding, opts ...Option) *StringTable {
	t.Helper()
	table, err := New(src, enc, 0, src.Size(), opts...)
	require.NoError(t, err)
	return table
}

func collect(t *testing.T, table *StringTable) []StringTableEntry {
	t.Helper()
	entries, err := table.Entries()
	require.NoError(t, err)
	return entries
}
