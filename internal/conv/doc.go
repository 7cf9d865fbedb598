// Package conv provides safe integer type conversion utilities.
//
// Offsets and sizes taken from binary headers are untrusted: they arrive as
// fixed-width unsigned values and must be validated before they become Go
// int64 offsets, slice indices or 32-bit bitmap members.
package conv
