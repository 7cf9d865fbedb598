package binparse

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/binparse/source"
)

type scanner struct {
	src       source.Source
	enc       Encoding
	width     int64
	host      Endian
	order     binary.ByteOrder
	forceSwap bool
	maxUnits  int64
	chunk     int64
	lossy     bool
	metrics   MetricsCollector
}

type scanResult struct {
	text     string
	consumed int64
	swapped  bool
	bom      bool
}

func newScanner(src source.Source, enc Encoding, host Endian, o *options) *scanner {
	width := int64(enc.CodeUnitSize())
	chunk := o.scanChunkSize
	if rem := chunk % width; rem != 0 {
		chunk += width - rem
	}
	return &scanner{
		src:       src,
		enc:       enc,
		width:     width,
		host:      host,
		order:     host.ByteOrder(),
		forceSwap: o.forceSwap,
		maxUnits:  o.maxStringLength,
		chunk:     chunk,
		lossy:     o.lossy,
		metrics:   o.metricsCollector,
	}
}

// scan decodes the entry starting at the absolute source offset abs.
// On a decode failure the result still carries consumed, so callers can
// step over the entry.
func (s *scanner) scan(abs int64) (scanResult, error) {
	span, err := s.span(abs)
	if err != nil {
		return scanResult{}, err
	}

	w := int(s.width)
	res := scanResult{consumed: int64(len(span)) + s.width}
	res.bom = len(span) >= w && ShouldSwap(readUnit(span, w, s.order), w, s.host)
	res.swapped = s.forceSwap || res.bom

	body := span
	if res.swapped {
		if res.bom {
			body = body[w:]
		}
		swapped := make([]byte, len(body))
		copy(swapped, body)
		swapUnits(swapped, w)
		body = swapped
	}

	res.text, err = s.enc.decode(body, s.order, s.lossy)
	if err != nil {
		return res, err
	}
	s.metrics.RecordScan(res.consumed, res.swapped)
	return res, nil
}

// span returns the code units from abs up to, not including, the first zero unit.
func (s *scanner) span(abs int64) ([]byte, error) {
	if m, ok := s.src.(source.Mappable); ok {
		return s.spanMapped(m.Bytes(), abs)
	}
	return s.spanChunked(abs)
}

func (s *scanner) spanMapped(data []byte, abs int64) ([]byte, error) {
	size := int64(len(data))
	if err := source.CheckRange(abs, 0, size); err != nil {
		return nil, err
	}
	for i := abs; ; i += s.width {
		if i+s.width > size {
			return nil, fmt.Errorf("%w: no terminator before end of source", ErrOutOfRange)
		}
		if isZeroUnit(data[i : i+s.width]) {
			return data[abs:i], nil
		}
		if err := s.checkLength((i - abs) / s.width); err != nil {
			return nil, err
		}
	}
}

func (s *scanner) spanChunked(abs int64) ([]byte, error) {
	size := s.src.Size()
	if err := source.CheckRange(abs, 0, size); err != nil {
		return nil, err
	}

	var buf []byte
	for pos := abs; ; {
		n := min(s.chunk, size-pos)
		n -= n % s.width
		if n == 0 {
			return nil, fmt.Errorf("%w: no terminator before end of source", ErrOutOfRange)
		}
		b, err := s.src.ReadBytes(pos, n)
		if err != nil {
			return nil, err
		}
		if int64(len(b)) < s.width {
			return nil, fmt.Errorf("%w: want %d bytes at %d, got %d", ErrTruncatedRead, n, pos, len(b))
		}
		for j := int64(0); j+s.width <= int64(len(b)); j += s.width {
			if isZeroUnit(b[j : j+s.width]) {
				return append(buf, b[:j]...), nil
			}
			if err := s.checkLength((int64(len(buf)) + j) / s.width); err != nil {
				return nil, err
			}
		}
		whole := int64(len(b)) - int64(len(b))%s.width
		buf = append(buf, b[:whole]...)
		pos += whole
	}
}

// checkLength fails once more than maxUnits non-zero units precede the
// unit at index.
func (s *scanner) checkLength(index int64) error {
	if s.maxUnits > 0 && index >= s.maxUnits {
		return fmt.Errorf("%w: more than %d code units", ErrStringTooLong, s.maxUnits)
	}
	return nil
}

func isZeroUnit(u []byte) bool {
	for _, b := range u {
		if b != 0 {
			return false
		}
	}
	return true
}
