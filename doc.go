// Package binparse decodes string tables embedded in binary files.
//
// A string table is a byte region holding null-terminated text entries packed
// back to back, as found in ELF .strtab/.dynstr sections, Mach-O symbol
// tables, and resource blobs. binparse resolves integer offsets into names
// and enumerates every entry of a region, for UTF-8, UTF-16, and UTF-32 code
// units in either byte order.
//
// # Quick Start
//
//	src, _ := source.MapFile("./libfoo.so")
//	defer src.Close()
//
//	table, _ := binparse.New(src, binparse.UTF8, strtabOff, strtabSize)
//
//	// Random access by offset (e.g. from a symbol's st_name).
//	if e, ok := table.EntryAt(0x1c); ok {
//	    fmt.Println(e.String)
//	}
//
//	// Forward iteration.
//	for e := range table.All() {
//	    fmt.Println(e.Offset, e.String)
//	}
//
// # Byte Order
//
// Code units are read in host byte order. A table recorded in the opposite
// order is decoded with New(..., binparse.WithForceSwap()) or, per entry, when
// the first code unit is a reversed byte-order mark. A detected mark is
// stripped from the text but counted in the entry's length.
//
// # Backends
//
// Any source.Source works. Memory-resident sources (source.Memory,
// source.MappedFile, local blobs) are scanned in place; the others are read in
// chunks. Remote object stores are reachable through the blobstore packages and
// source.NewBlob.
//
// # Errors
//
// Lookups never abort a scan. Malformed, truncated, or out-of-range entries
// are reported as absent by EntryAt and skipped or terminate iteration. Use
// Lookup and Iterator.Err when the reason matters.
package binparse
