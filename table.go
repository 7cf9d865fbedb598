package binparse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/binparse/source"
)

// ErrNilSource is returned by New when no source is given.
var ErrNilSource = errors.New("binparse: nil source")

// StringTable is an immutable view of a string-table region within a source.
//
// The region bounds are not validated at construction; every read is bounds
// checked against the source instead. A StringTable is safe for concurrent
// use when its source is.
type StringTable struct {
	src     source.Source
	enc     Encoding
	offset  int64
	size    int64
	host    Endian
	opts    options
	scanner *scanner
	logger  *Logger
}

// New creates a view of the size-byte region at offset in src, holding
// entries in encoding enc.
func New(src source.Source, enc Encoding, offset, size int64, optFns ...Option) (*StringTable, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if enc.CodeUnitSize() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, enc)
	}

	o := applyOptions(optFns)

	host := o.host
	if !o.hostSet {
		var err error
		if host, err = HostEndian(); err != nil {
			return nil, err
		}
	} else if host.ByteOrder() == nil {
		return nil, ErrUnknownByteOrder
	}

	return &StringTable{
		src:     src,
		enc:     enc,
		offset:  offset,
		size:    size,
		host:    host,
		opts:    o,
		scanner: newScanner(src, enc, host, &o),
		logger:  o.logger.WithTable(offset, size, enc),
	}, nil
}

// Source returns the backing source.
func (t *StringTable) Source() source.Source { return t.src }

// Offset returns the absolute source offset of the region.
func (t *StringTable) Offset() int64 { return t.offset }

// Size returns the region length in bytes.
func (t *StringTable) Size() int64 { return t.size }

// Encoding returns the table's encoding.
func (t *StringTable) Encoding() Encoding { return t.enc }

// Swapped reports whether every entry is byte-swapped regardless of
// byte-order marks.
func (t *StringTable) Swapped() bool { return t.opts.forceSwap }

// HostEndian returns the byte order code units are read in.
func (t *StringTable) HostEndian() Endian { return t.host }

// Data returns the whole backing source.
func (t *StringTable) Data() ([]byte, error) {
	return t.src.ReadAll()
}

// Region returns the raw bytes of the table region.
func (t *StringTable) Region() ([]byte, error) {
	return t.src.ReadBytes(t.offset, t.size)
}

// EntryAt returns the entry starting at the region-relative offset off.
// It reports false when off lies outside the region or the entry is empty,
// unreadable, or malformed.
func (t *StringTable) EntryAt(off int64) (StringTableEntry, bool) {
	e, err := t.Lookup(off)
	return e, err == nil
}

// Lookup is EntryAt with the failure reason. Errors are *ScanError values
// wrapping one of the package sentinels.
func (t *StringTable) Lookup(off int64) (StringTableEntry, error) {
	return t.LookupContext(context.Background(), off)
}

// LookupContext is Lookup with a context for log records.
func (t *StringTable) LookupContext(ctx context.Context, off int64) (StringTableEntry, error) {
	start := time.Now()
	e, err := t.lookup(off)
	t.opts.metricsCollector.RecordLookup(time.Since(start), err)
	t.logger.LogLookup(ctx, off, err)
	return e, err
}

func (t *StringTable) lookup(off int64) (StringTableEntry, error) {
	if off < 0 || off >= t.size {
		return StringTableEntry{}, &ScanError{
			Offset: off,
			Err:    fmt.Errorf("%w: offset %d outside table of size %d", ErrOutOfRange, off, t.size),
		}
	}
	res, err := t.scanner.scan(t.offset + off)
	if err != nil {
		return StringTableEntry{}, &ScanError{Offset: off, Err: err}
	}
	if res.text == "" {
		return StringTableEntry{}, &ScanError{Offset: off, Err: ErrEmptyEntry}
	}
	return StringTableEntry{String: res.text, Offset: off}, nil
}
