package binparse

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/binparse/internal/conv"
)

// Index records where the entries of a table start and end, so offsets that
// point into the middle of an entry (suffix sharing in ELF string tables)
// can be resolved to the entry that holds them.
//
// Offsets are region-relative and must fit in 32 bits.
type Index struct {
	starts *roaring.Bitmap
	ends   *roaring.Bitmap
	size   int64
}

// BuildIndex iterates t once and records every entry it yields. Iteration
// errors are returned together with the partial index.
func BuildIndex(t *StringTable) (*Index, error) {
	idx := &Index{
		starts: roaring.New(),
		ends:   roaring.New(),
		size:   t.size,
	}
	it := t.Iterator()
	for {
		e, consumed, ok := it.next()
		if !ok {
			break
		}
		start, err := conv.Int64ToUint32(e.Offset)
		if err != nil {
			return idx, fmt.Errorf("%w: index offset %d: %w", ErrOutOfRange, e.Offset, err)
		}
		end, err := conv.Int64ToUint32(e.Offset + consumed)
		if err != nil {
			return idx, fmt.Errorf("%w: index offset %d: %w", ErrOutOfRange, e.Offset+consumed, err)
		}
		idx.starts.Add(start)
		idx.ends.Add(end)
	}
	idx.starts.RunOptimize()
	idx.ends.RunOptimize()
	return idx, it.Err()
}

// Len returns the number of indexed entries.
func (x *Index) Len() int {
	return int(x.starts.GetCardinality())
}

// IsEntryStart reports whether an indexed entry starts at off.
func (x *Index) IsEntryStart(off int64) bool {
	u, err := conv.Int64ToUint32(off)
	if err != nil {
		return false
	}
	return x.starts.Contains(u)
}

// EntryContaining returns the start of the entry whose bytes, terminator
// included, cover off.
func (x *Index) EntryContaining(off int64) (int64, bool) {
	u, err := conv.Int64ToUint32(off)
	if err != nil {
		return 0, false
	}
	rank := x.starts.Rank(u)
	if rank == 0 {
		return 0, false
	}
	start, err := x.starts.Select(uint32(rank - 1))
	if err != nil {
		return 0, false
	}
	end, err := x.ends.Select(uint32(rank - 1))
	if err != nil || u >= end {
		return 0, false
	}
	return int64(start), true
}

// Offsets returns the entry start offsets in ascending order.
func (x *Index) Offsets() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		it := x.starts.Iterator()
		for it.HasNext() {
			if !yield(int64(it.Next())) {
				return
			}
		}
	}
}

// SizeInBytes returns the serialized size of the index bitmaps.
func (x *Index) SizeInBytes() uint64 {
	return x.starts.GetSerializedSizeInBytes() + x.ends.GetSerializedSizeInBytes()
}
