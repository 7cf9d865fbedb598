package binparse

import (
	"context"
	"iter"
)

// Iterator walks a table from its first entry to the end of the region.
//
// Empty entries and entries that fail to decode are stepped over. A read
// failure ends the iteration early; Err reports it.
// An Iterator is not safe for concurrent use.
type Iterator struct {
	t       *StringTable
	ctx     context.Context
	cursor  int64
	err     error
	done    bool
	entries int
	skipped int
}

// Iterator returns a new iterator positioned at the start of the region.
func (t *StringTable) Iterator() *Iterator {
	return t.IteratorContext(context.Background())
}

// IteratorContext is Iterator with a context for log records.
func (t *StringTable) IteratorContext(ctx context.Context) *Iterator {
	return &Iterator{t: t, ctx: ctx}
}

// Next returns the next entry, or false when the iteration is over.
func (it *Iterator) Next() (StringTableEntry, bool) {
	e, _, ok := it.next()
	return e, ok
}

// Err returns the error that terminated the iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Offset returns the region-relative offset the next scan starts at.
func (it *Iterator) Offset() int64 {
	return it.cursor
}

func (it *Iterator) next() (StringTableEntry, int64, bool) {
	t := it.t
	for !it.done {
		if it.cursor >= t.size {
			it.finish(nil)
			break
		}

		rel := it.cursor
		res, err := t.scanner.scan(t.offset + rel)
		if err != nil {
			if res.consumed == 0 || !isInvalidEncoding(err) {
				it.finish(&ScanError{Offset: rel, Err: err})
				break
			}
			it.cursor += res.consumed
			it.skipped++
			t.opts.metricsCollector.RecordSkip(err)
			t.logger.LogSkip(it.ctx, rel, res.consumed, err)
			continue
		}

		it.cursor += res.consumed
		if res.text == "" {
			continue
		}
		it.entries++
		return StringTableEntry{String: res.text, Offset: rel}, res.consumed, true
	}
	return StringTableEntry{}, 0, false
}

func (it *Iterator) finish(err error) {
	it.done = true
	it.err = err
	it.t.logger.LogIterationEnd(it.ctx, it.entries, it.skipped, err)
}

// All returns a sequence over every entry of the table. Each call starts a
// new pass from the beginning of the region.
func (t *StringTable) All() iter.Seq[StringTableEntry] {
	return func(yield func(StringTableEntry) bool) {
		it := t.Iterator()
		for {
			e, ok := it.Next()
			if !ok || !yield(e) {
				return
			}
		}
	}
}

// Entries collects every entry of the table. The error is the one that
// terminated the iteration early, if any; the entries read before it are
// still returned.
func (t *StringTable) Entries() ([]StringTableEntry, error) {
	var out []StringTableEntry
	it := t.Iterator()
	for {
		e, ok := it.Next()
		if !ok {
			return out, it.Err()
		}
		out = append(out, e)
	}
}
