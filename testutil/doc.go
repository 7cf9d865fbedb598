// Package testutil provides testing utilities for binparse.
//
// This package is intended for use in tests and benchmarks only.
// It builds encoded string tables and generates random entry text.
//
// # Building Tables
//
//	data := testutil.EncodeTable(2, binary.LittleEndian, "foo", "bar")
//	data = append(testutil.WithBOM(nil, 2, binary.BigEndian), ...)
//
// # Random Text
//
//	rng := testutil.NewRNG(seed)
//	names := rng.Strings(100, 16) // up to 16 runes, including non-BMP runes
package testutil
