package source

import (
	"fmt"

	"github.com/hupe1980/binparse/internal/conv"
	"github.com/hupe1980/binparse/internal/mmap"
)

// MappedFile is a Memory source backed by a read-only memory map.
type MappedFile struct {
	*Memory
	m *mmap.Mapping
}

// MapFile maps the file at path read-only.
func MapFile(path string) (*MappedFile, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: map %s: %w", ErrIOFailure, path, err)
	}
	return &MappedFile{Memory: NewMemory(m.Bytes()), m: m}, nil
}

// Path returns the mapped file path.
func (f *MappedFile) Path() string {
	return f.m.Path()
}

// Region returns a Memory view of [off, off+size) and hints the kernel that
// the range is about to be scanned.
func (f *MappedFile) Region(off, size int64) (*Memory, error) {
	if err := CheckRange(off, size, f.Size()); err != nil {
		return nil, err
	}
	o, err := conv.Int64ToInt(off)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	n, err := conv.Int64ToInt(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	r, err := f.m.Region(o, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	_ = r.Advise(mmap.AccessSequential)
	return NewMemory(r.Bytes()), nil
}

// Close unmaps the file. Slices returned earlier become invalid.
func (f *MappedFile) Close() error {
	f.Memory = NewMemory(nil)
	return f.m.Close()
}
