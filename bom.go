package binparse

import (
	"encoding/binary"
	"math/bits"
)

// ShouldSwap reports whether unit, read in host byte order, is a byte-order
// mark recorded in the opposite order. On a little-endian host the unit is
// byte-swapped at its width before the comparison. Width 1 never swaps.
func ShouldSwap(unit uint32, width int, host Endian) bool {
	switch width {
	case 2:
		u := uint16(unit)
		if host == LittleEndian {
			u = bits.ReverseBytes16(u)
		}
		return u == 0xFFFE
	case 4:
		if host == LittleEndian {
			unit = bits.ReverseBytes32(unit)
		}
		return unit == 0xFFFE0000
	default:
		return false
	}
}

// readUnit returns the code unit at the start of b in the given order.
func readUnit(b []byte, width int, order binary.ByteOrder) uint32 {
	switch width {
	case 2:
		return uint32(order.Uint16(b))
	case 4:
		return order.Uint32(b)
	default:
		return uint32(b[0])
	}
}

// swapUnits reverses the bytes of every whole code unit in b in place.
func swapUnits(b []byte, width int) {
	switch width {
	case 2:
		for i := 0; i+1 < len(b); i += 2 {
			b[i], b[i+1] = b[i+1], b[i]
		}
	case 4:
		for i := 0; i+3 < len(b); i += 4 {
			b[i], b[i+1], b[i+2], b[i+3] = b[i+3], b[i+2], b[i+1], b[i]
		}
	}
}
