package testutil

import (
	"encoding/binary"
	"math/rand"
	"sync"
	"unicode/utf16"
	"unicode/utf8"
)

// EncodeUnits encodes s as code units of the given width (1, 2 or 4) in
// order, without a terminator.
func EncodeUnits(s string, width int, order binary.ByteOrder) []byte {
	switch width {
	case 2:
		units := utf16.Encode([]rune(s))
		out := make([]byte, 2*len(units))
		for i, u := range units {
			order.PutUint16(out[2*i:], u)
		}
		return out
	case 4:
		runes := []rune(s)
		out := make([]byte, 4*len(runes))
		for i, r := range runes {
			order.PutUint32(out[4*i:], uint32(r))
		}
		return out
	default:
		return []byte(s)
	}
}

// Terminate appends a zero code unit of the given width.
func Terminate(units []byte, width int) []byte {
	return append(units, make([]byte, width)...)
}

// EncodeTable encodes every string followed by a zero code unit.
func EncodeTable(width int, order binary.ByteOrder, strs ...string) []byte {
	var out []byte
	for _, s := range strs {
		out = append(out, Terminate(EncodeUnits(s, width, order), width)...)
	}
	return out
}

// WithBOM prepends the byte-order mark U+FEFF encoded in order.
func WithBOM(units []byte, width int, order binary.ByteOrder) []byte {
	return append(EncodeUnits("\uFEFF", width, order), units...)
}

// Swap returns a copy of b with the bytes of every code unit reversed.
func Swap(b []byte, width int) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	for i := 0; i+width <= len(out); i += width {
		for l, r := i, i+width-1; l < r; l, r = l+1, r-1 {
			out[l], out[r] = out[r], out[l]
		}
	}
	return out
}

// Opposite returns the byte order that is not order.
func Opposite(order binary.ByteOrder) binary.ByteOrder {
	if order.Uint16([]byte{1, 0}) == 1 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// runeRanges are drawn from when generating text: ASCII, Latin-1, CJK, and
// supplementary planes that need surrogate pairs in UTF-16.
var runeRanges = [][2]rune{
	{0x20, 0x7E},
	{0xA0, 0xFF},
	{0x4E00, 0x9FFF},
	{0x1F300, 0x1F5FF},
	{0x10000, 0x1007F},
}

// String returns a non-empty random string of 1 to maxRunes runes. It never
// contains U+0000, surrogates, or U+FEFF.
func (r *RNG) String(maxRunes int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 1 + r.rand.Intn(max(maxRunes, 1))
	buf := make([]byte, 0, n*4)
	for range n {
		rg := runeRanges[r.rand.Intn(len(runeRanges))]
		c := rg[0] + rune(r.rand.Intn(int(rg[1]-rg[0]+1)))
		buf = utf8.AppendRune(buf, c)
	}
	return string(buf)
}

// Strings returns count random strings.
func (r *RNG) Strings(count, maxRunes int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = r.String(maxRunes)
	}
	return out
}
