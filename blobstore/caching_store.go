package blobstore

import (
	"context"
	"errors"
	"io"

	"github.com/hupe1980/binparse/internal/cache"
	"github.com/hupe1980/binparse/internal/resource"
	"golang.org/x/sync/errgroup"
)

// DefaultBlockSize is the cache block size used when none is given.
const DefaultBlockSize = 4096

const defaultFetchConcurrency = 16

// CachingStore wraps a BlobStore and adds block-level read caching.
type CachingStore struct {
	inner     BlobStore
	cache     cache.BlockCache
	blockSize int64
	rc        *resource.Controller
}

// NewCachingStore creates a new CachingStore.
// blockSize defaults to DefaultBlockSize if <= 0.
func NewCachingStore(inner BlobStore, c cache.BlockCache, blockSize int64) *CachingStore {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &CachingStore{
		inner:     inner,
		cache:     c,
		blockSize: blockSize,
	}
}

// WithController bounds parallel block fetches by the controller's fetch slots.
func (s *CachingStore) WithController(rc *resource.Controller) *CachingStore {
	s.rc = rc
	return s
}

func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &CachingBlob{
		inner:     b,
		cache:     s.cache,
		rc:        s.rc,
		name:      name,
		blockSize: s.blockSize,
	}, nil
}

func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.cache.Invalidate(func(key cache.CacheKey) bool {
		return key.Kind == cache.CacheKindBlob && key.Path == name
	})
	return s.inner.Put(ctx, name, data)
}

func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// CachingBlob wraps a Blob and serves reads from the block cache.
type CachingBlob struct {
	inner     Blob
	cache     cache.BlockCache
	rc        *resource.Controller
	name      string
	blockSize int64
}

func (b *CachingBlob) Close() error {
	return b.inner.Close()
}

func (b *CachingBlob) Size() int64 {
	return b.inner.Size()
}

func (b *CachingBlob) key(blk int64) cache.CacheKey {
	return cache.CacheKey{
		Kind:   cache.CacheKindBlob,
		Path:   b.name,
		Offset: uint64(blk),
	}
}

func (b *CachingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	size := b.Size()
	if off < 0 || off >= size {
		return 0, io.EOF
	}

	want := p
	if off+int64(len(p)) > size {
		want = p[:size-off]
	}

	startBlock := off / b.blockSize
	endBlock := (off + int64(len(want)) - 1) / b.blockSize

	if err := b.fillCache(ctx, startBlock, endBlock); err != nil {
		return 0, err
	}

	totalRead := 0
	for blk := startBlock; blk <= endBlock; blk++ {
		blkStart := blk * b.blockSize
		intersectStart := max(blkStart, off)
		intersectEnd := min(blkStart+b.blockSize, off+int64(len(want)))
		if intersectEnd <= intersectStart {
			continue
		}

		blockData, err := b.fetchBlock(ctx, blk)
		if err != nil {
			return totalRead, err
		}

		srcOffset := intersectStart - blkStart
		if srcOffset >= int64(len(blockData)) {
			break
		}
		dstOffset := intersectStart - off
		totalRead += copy(want[dstOffset:intersectEnd-off], blockData[srcOffset:])
	}

	if totalRead < len(p) {
		return totalRead, io.EOF
	}
	return totalRead, nil
}

// fillCache loads the blocks in [startBlock, endBlock], fetching contiguous
// runs of missing blocks with a single backend read each.
func (b *CachingBlob) fillCache(ctx context.Context, startBlock, endBlock int64) error {
	type run struct{ start, count int64 }
	var missing []run

	runStart := int64(-1)
	for blk := startBlock; blk <= endBlock; blk++ {
		if _, ok := b.cache.Get(ctx, b.key(blk)); !ok {
			if runStart == -1 {
				runStart = blk
			}
			continue
		}
		if runStart != -1 {
			missing = append(missing, run{runStart, blk - runStart})
			runStart = -1
		}
	}
	if runStart != -1 {
		missing = append(missing, run{runStart, endBlock + 1 - runStart})
	}
	if len(missing) == 0 {
		return nil
	}

	limit := defaultFetchConcurrency
	if b.rc != nil {
		limit = b.rc.MaxConcurrentFetches()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, r := range missing {
		g.Go(func() error {
			if err := b.rc.AcquireFetch(gctx); err != nil {
				return err
			}
			defer b.rc.ReleaseFetch()

			byteStart := r.start * b.blockSize
			byteSize := min(r.count*b.blockSize, b.Size()-byteStart)
			if byteSize <= 0 {
				return nil
			}

			if err := b.rc.AcquireIO(gctx, int(byteSize)); err != nil {
				return err
			}
			buf := make([]byte, byteSize)
			n, err := b.inner.ReadAt(gctx, buf, byteStart)
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			valid := buf[:n]

			for i := int64(0); i < r.count; i++ {
				lo := i * b.blockSize
				if lo >= int64(len(valid)) {
					break
				}
				hi := min(lo+b.blockSize, int64(len(valid)))
				// Copy so a cached block does not pin the whole run buffer.
				block := make([]byte, hi-lo)
				copy(block, valid[lo:hi])
				b.cache.Set(gctx, b.key(r.start+i), block)
			}
			return nil
		})
	}
	return g.Wait()
}

func (b *CachingBlob) fetchBlock(ctx context.Context, blk int64) ([]byte, error) {
	if data, ok := b.cache.Get(ctx, b.key(blk)); ok {
		return data, nil
	}

	// Not admitted by the cache (e.g. memory limit); read through.
	blkSize := min(b.blockSize, b.Size()-blk*b.blockSize)
	if err := b.rc.AcquireIO(ctx, int(blkSize)); err != nil {
		return nil, err
	}
	buf := make([]byte, blkSize)
	n, err := b.inner.ReadAt(ctx, buf, blk*b.blockSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}
