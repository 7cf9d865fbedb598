package binparse

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Encoding identifies the code-unit width and text encoding of a table.
type Encoding uint8

const (
	// UTF8 uses 1-byte code units.
	UTF8 Encoding = iota + 1
	// UTF16 uses 2-byte code units.
	UTF16
	// UTF32 uses 4-byte code units.
	UTF32
)

// ParseEncoding maps a name such as "utf16" or "UTF-16" to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "")) {
	case "utf8":
		return UTF8, nil
	case "utf16":
		return UTF16, nil
	case "utf32":
		return UTF32, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf8"
	case UTF16:
		return "utf16"
	case UTF32:
		return "utf32"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// CodeUnitSize returns the width of one code unit in bytes, or 0 for an
// unknown encoding.
func (e Encoding) CodeUnitSize() int {
	switch e {
	case UTF8:
		return 1
	case UTF16:
		return 2
	case UTF32:
		return 4
	default:
		return 0
	}
}

// Decode interprets units as host-order code units, up to but not including
// the first zero unit. Malformed input yields ErrInvalidEncoding.
func (e Encoding) Decode(units []byte) (string, error) {
	return e.decode(units, binary.NativeEndian, false)
}

// DecodeLossy is Decode with malformed units replaced by U+FFFD.
func (e Encoding) DecodeLossy(units []byte) (string, error) {
	return e.decode(units, binary.NativeEndian, true)
}

func (e Encoding) decode(units []byte, order binary.ByteOrder, lossy bool) (string, error) {
	width := e.CodeUnitSize()
	if width == 0 {
		return "", fmt.Errorf("%w: %d", ErrUnknownEncoding, uint8(e))
	}
	units = trimAtZeroUnit(units, width, order)
	if lossy {
		return decodeLossy(e, units, order)
	}

	switch e {
	case UTF8:
		if !utf8.Valid(units) {
			return "", fmt.Errorf("%w: malformed utf-8", ErrInvalidEncoding)
		}
		return string(units), nil
	case UTF16:
		return decodeUTF16(units, order)
	default:
		return decodeUTF32(units, order)
	}
}

func trimAtZeroUnit(units []byte, width int, order binary.ByteOrder) []byte {
	for i := 0; i+width <= len(units); i += width {
		if readUnit(units[i:], width, order) == 0 {
			return units[:i]
		}
	}
	return units
}

func decodeUTF16(b []byte, order binary.ByteOrder) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("%w: trailing partial utf-16 unit", ErrInvalidEncoding)
	}
	var sb strings.Builder
	sb.Grow(len(b) / 2)
	for i := 0; i < len(b); i += 2 {
		u := rune(order.Uint16(b[i:]))
		switch {
		case utf16.IsSurrogate(u):
			if u >= 0xDC00 || i+4 > len(b) {
				return "", fmt.Errorf("%w: unpaired utf-16 surrogate at byte %d", ErrInvalidEncoding, i)
			}
			r := utf16.DecodeRune(u, rune(order.Uint16(b[i+2:])))
			if r == utf8.RuneError {
				return "", fmt.Errorf("%w: unpaired utf-16 surrogate at byte %d", ErrInvalidEncoding, i)
			}
			sb.WriteRune(r)
			i += 2
		default:
			sb.WriteRune(u)
		}
	}
	return sb.String(), nil
}

func decodeUTF32(b []byte, order binary.ByteOrder) (string, error) {
	if len(b)%4 != 0 {
		return "", fmt.Errorf("%w: trailing partial utf-32 unit", ErrInvalidEncoding)
	}
	var sb strings.Builder
	sb.Grow(len(b) / 4)
	for i := 0; i < len(b); i += 4 {
		r := rune(order.Uint32(b[i:]))
		if !utf8.ValidRune(r) {
			return "", fmt.Errorf("%w: invalid utf-32 code point %#x at byte %d", ErrInvalidEncoding, uint32(r), i)
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

func decodeLossy(e Encoding, b []byte, order binary.ByteOrder) (string, error) {
	var enc encoding.Encoding
	little := order.Uint16([]byte{1, 0}) == 1
	switch e {
	case UTF8:
		enc = unicode.UTF8
	case UTF16:
		endianness := unicode.BigEndian
		if little {
			endianness = unicode.LittleEndian
		}
		enc = unicode.UTF16(endianness, unicode.IgnoreBOM)
	default:
		endianness := utf32.BigEndian
		if little {
			endianness = utf32.LittleEndian
		}
		enc = utf32.UTF32(endianness, utf32.IgnoreBOM)
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	return string(out), nil
}
