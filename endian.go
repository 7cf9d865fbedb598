package binparse

import (
	"encoding/binary"
	"unsafe"
)

// Endian is a byte order.
type Endian uint8

const (
	// LittleEndian stores the least significant byte first.
	LittleEndian Endian = iota + 1
	// BigEndian stores the most significant byte first.
	BigEndian
)

func (e Endian) String() string {
	switch e {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return "unknown"
	}
}

// ByteOrder returns the encoding/binary order for e, or nil if e is unknown.
func (e Endian) ByteOrder() binary.ByteOrder {
	switch e {
	case LittleEndian:
		return binary.LittleEndian
	case BigEndian:
		return binary.BigEndian
	default:
		return nil
	}
}

// Swapped returns the opposite byte order.
func (e Endian) Swapped() Endian {
	switch e {
	case LittleEndian:
		return BigEndian
	case BigEndian:
		return LittleEndian
	default:
		return e
	}
}

// HostEndian reports the byte order of the running machine.
func HostEndian() (Endian, error) {
	x := uint16(0x0102)
	b := (*[2]byte)(unsafe.Pointer(&x))
	switch {
	case b[0] == 0x02 && b[1] == 0x01:
		return LittleEndian, nil
	case b[0] == 0x01 && b[1] == 0x02:
		return BigEndian, nil
	default:
		return 0, ErrUnknownByteOrder
	}
}
