package cache

import "context"

// CacheKind is used to separate key spaces.
type CacheKind uint8

const (
	CacheKindUnknown CacheKind = iota
	CacheKindBlob              // blob store blocks
	CacheKindTable             // decompressed string-table sections
)

// CacheKey identifies a cached block.
type CacheKey struct {
	Kind CacheKind
	// Path identifies the source (e.g. blob name).
	Path string
	// Offset is a logical block identifier (block index or byte offset).
	Offset uint64
}

// BlockCache is a byte-oriented cache for immutable blocks.
// Returned slices must be treated as read-only.
type BlockCache interface {
	// Get returns a cached block. ok=false if missing.
	Get(ctx context.Context, key CacheKey) (b []byte, ok bool)
	// Set caches a block. Implementations may retain b; callers must treat it as immutable.
	Set(ctx context.Context, key CacheKey, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key CacheKey) bool)
	// Close releases any resources.
	Close() error
	// Stats returns cache statistics.
	Stats() (hits, misses int64)
}
