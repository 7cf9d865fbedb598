package codec

import (
	"fmt"
	"testing"

	"github.com/hupe1980/binparse"
)

func benchEntries(n int) []binparse.StringTableEntry {
	out := make([]binparse.StringTableEntry, n)
	var off int64
	for i := range out {
		s := fmt.Sprintf("_ZN4core3fmt9Formatter%dpad17h%08x", i, i*2654435761)
		out[i] = binparse.StringTableEntry{String: s, Offset: off}
		off += int64(len(s) + 1)
	}
	return out
}

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	b.ResetTimer()
	for b.Loop() {
		out, err := c.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func benchmarkCodecUnmarshal[T any](b *testing.B, c Codec, data []byte, dst *T) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var v T
	b.ResetTimer()
	for b.Loop() {
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
	if dst != nil {
		*dst = v
	}
}

func BenchmarkCodec_Marshal_Entries(b *testing.B) {
	entries := benchEntries(1000)

	b.Run("stdlib", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, entries) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, entries) })
}

func BenchmarkCodec_Unmarshal_Entries(b *testing.B) {
	jsonData := MustMarshal(JSON{}, benchEntries(1000))

	b.Run("stdlib", func(b *testing.B) {
		var sink []binparse.StringTableEntry
		benchmarkCodecUnmarshal(b, JSON{}, jsonData, &sink)
		_ = sink
	})
	b.Run("go-json", func(b *testing.B) {
		var sink []binparse.StringTableEntry
		benchmarkCodecUnmarshal(b, GoJSON{}, jsonData, &sink)
		_ = sink
	})
}
