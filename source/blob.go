package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/binparse/blobstore"
	"github.com/hupe1980/binparse/internal/resource"
)

// Blob is a Source over a blobstore.Blob. Reads carry the context given at
// construction and are paced by an optional resource controller.
type Blob struct {
	ctx  context.Context
	blob blobstore.Blob
	rc   *resource.Controller
}

// NewBlob wraps b. When b is blobstore.Mappable its bytes are used directly
// and the returned source also implements Mappable.
func NewBlob(ctx context.Context, b blobstore.Blob) (Source, error) {
	return NewBlobWithController(ctx, b, nil)
}

// NewBlobWithController is NewBlob with IO pacing through rc. A
// blobstore.CachingBlob paces its own backend fetches, so reads through one
// are not charged again.
func NewBlobWithController(ctx context.Context, b blobstore.Blob, rc *resource.Controller) (Source, error) {
	if m, ok := b.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err == nil {
			return NewMemory(data), nil
		}
	}
	if _, ok := b.(*blobstore.CachingBlob); ok {
		rc = nil
	}
	return &Blob{ctx: ctx, blob: b, rc: rc}, nil
}

// Size implements Source.
func (s *Blob) Size() int64 {
	return s.blob.Size()
}

// ReadBytes implements Source.
func (s *Blob) ReadBytes(off, n int64) ([]byte, error) {
	if err := CheckRange(off, n, s.blob.Size()); err != nil {
		return nil, err
	}
	if err := s.rc.AcquireIO(s.ctx, int(n)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	buf := make([]byte, n)
	got, err := s.blob.ReadAt(s.ctx, buf, off)
	if int64(got) == n {
		return buf, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return buf[:got], fmt.Errorf("%w: want %d bytes at %d, got %d", ErrTruncatedRead, n, off, got)
	}
	return buf[:got], fmt.Errorf("%w: read %d bytes at %d: %w", ErrIOFailure, n, off, err)
}

// ReadAll implements Source.
func (s *Blob) ReadAll() ([]byte, error) {
	return s.ReadBytes(0, s.blob.Size())
}

// Close closes the underlying blob.
func (s *Blob) Close() error {
	return s.blob.Close()
}
