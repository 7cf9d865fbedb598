package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/binparse"
	"github.com/hupe1980/binparse/testutil"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.bin")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func baseConfig(path string) runConfig {
	return runConfig{
		Input:       path,
		Encoding:    "utf8",
		Size:        -1,
		At:          -1,
		Containing:  -1,
		Backend:     "mmap",
		Format:      "text",
		Compression: "none",
		CacheBytes:  1 << 20,
	}
}

func runOK(t *testing.T, cfg runConfig) string {
	t.Helper()
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &stdout, &stderr), stderr.String())
	return stdout.String()
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestRun_DumpText(t *testing.T) {
	table := testutil.EncodeTable(1, binary.NativeEndian, "alpha", "beta")
	data := append([]byte("HDR!"), table...)

	for _, backend := range []string{"mmap", "handle"} {
		t.Run(backend, func(t *testing.T) {
			cfg := baseConfig(writeInput(t, data))
			cfg.Backend = backend
			cfg.Offset = 4

			got := lines(runOK(t, cfg))
			require.Len(t, got, 2)
			assert.True(t, strings.HasSuffix(got[0], " alpha"))
			assert.True(t, strings.HasSuffix(got[1], " beta"))
		})
	}
}

func TestRun_DumpJSON(t *testing.T) {
	data := testutil.EncodeTable(2, binary.NativeEndian, "one", "two")

	for _, format := range []string{"json", "go-json"} {
		t.Run(format, func(t *testing.T) {
			cfg := baseConfig(writeInput(t, data))
			cfg.Encoding = "utf16"
			cfg.Format = format

			var entries []binparse.StringTableEntry
			require.NoError(t, json.Unmarshal([]byte(runOK(t, cfg)), &entries))
			assert.Equal(t, []binparse.StringTableEntry{
				{String: "one", Offset: 0},
				{String: "two", Offset: 8},
			}, entries)
		})
	}
}

func TestRun_Swap(t *testing.T) {
	data := testutil.EncodeTable(4, testutil.Opposite(binary.NativeEndian), "swapped")
	cfg := baseConfig(writeInput(t, data))
	cfg.Encoding = "utf32"
	cfg.Swap = true

	got := lines(runOK(t, cfg))
	require.Len(t, got, 1)
	assert.True(t, strings.HasSuffix(got[0], " swapped"))
}

func TestRun_Lookup(t *testing.T) {
	data := testutil.EncodeTable(1, binary.NativeEndian, "first", "second")
	cfg := baseConfig(writeInput(t, data))
	cfg.At = 6
	cfg.Format = "json"

	var e binparse.StringTableEntry
	require.NoError(t, json.Unmarshal([]byte(runOK(t, cfg)), &e))
	assert.Equal(t, binparse.StringTableEntry{String: "second", Offset: 6}, e)

	cfg.At = 100
	err := run(context.Background(), cfg, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, binparse.ErrOutOfRange)
}

func TestRun_Containing(t *testing.T) {
	data := testutil.EncodeTable(1, binary.NativeEndian, "first", "second")
	cfg := baseConfig(writeInput(t, data))
	cfg.Containing = 9
	cfg.Format = "json"

	var e binparse.StringTableEntry
	require.NoError(t, json.Unmarshal([]byte(runOK(t, cfg)), &e))
	assert.Equal(t, binparse.StringTableEntry{String: "second", Offset: 6}, e)
}

func TestRun_Compressed(t *testing.T) {
	table := testutil.EncodeTable(1, binary.NativeEndian, "packed", "strings")

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll(table, nil)
	require.NoError(t, enc.Close())

	data := append([]byte{0, 0, 0, 0}, compressed...)
	cfg := baseConfig(writeInput(t, data))
	cfg.Offset = 4
	cfg.Compression = "zstd"

	got := lines(runOK(t, cfg))
	require.Len(t, got, 2)
	assert.True(t, strings.HasSuffix(got[0], " packed"))
	assert.True(t, strings.HasSuffix(got[1], " strings"))
}

func TestRun_CompressionHeader(t *testing.T) {
	table := testutil.EncodeTable(1, binary.NativeEndian, ".text", ".data")

	var z bytes.Buffer
	zw := zlib.NewWriter(&z)
	_, err := zw.Write(table)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.NativeEndian, elf64Chdr{
		Type:      elfCompressZlib,
		Size:      uint64(len(table)),
		AddrAlign: 1,
	}))
	buf.Write(z.Bytes())

	cfg := baseConfig(writeInput(t, buf.Bytes()))
	cfg.CHdr = true

	got := lines(runOK(t, cfg))
	require.Len(t, got, 2)
	assert.True(t, strings.HasSuffix(got[0], " .text"))
	assert.True(t, strings.HasSuffix(got[1], " .data"))
}

func TestRun_Out(t *testing.T) {
	data := testutil.EncodeTable(1, binary.NativeEndian, "alpha", "beta")
	cfg := baseConfig(writeInput(t, data))
	cfg.Format = "json"
	cfg.Out = filepath.Join(t.TempDir(), "dump", "entries.json")

	assert.Empty(t, runOK(t, cfg))

	b, err := os.ReadFile(cfg.Out)
	require.NoError(t, err)
	var entries []binparse.StringTableEntry
	require.NoError(t, json.Unmarshal(b, &entries))
	assert.Equal(t, []binparse.StringTableEntry{{String: "alpha", Offset: 0}, {String: "beta", Offset: 6}}, entries)
}

func TestRun_List(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.so"), []byte{0}, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.so"), []byte{0}, 0o600))

	cfg := baseConfig(dir + "/")
	assert.Equal(t, []string{"a.so", "b.so"}, lines(runOK(t, cfg)))
}

func TestRun_Stats(t *testing.T) {
	data := testutil.EncodeTable(1, binary.NativeEndian, "a", "b", "c")
	cfg := baseConfig(writeInput(t, data))
	cfg.Stats = true

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "scanned=3")
}

func TestRun_Errors(t *testing.T) {
	path := writeInput(t, testutil.EncodeTable(1, binary.NativeEndian, "x"))

	tests := []struct {
		name   string
		mutate func(*runConfig)
		want   error
	}{
		{"encoding", func(c *runConfig) { c.Encoding = "ebcdic" }, binparse.ErrUnknownEncoding},
		{"compression", func(c *runConfig) { c.Compression = "brotli" }, nil},
		{"format", func(c *runConfig) { c.Format = "xml" }, nil},
		{"backend", func(c *runConfig) { c.Backend = "tape" }, nil},
		{"missing file", func(c *runConfig) { c.Input = filepath.Join(t.TempDir(), "nope") }, nil},
		{"region", func(c *runConfig) { c.Offset = 64; c.Size = 4 }, binparse.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig(path)
			tt.mutate(&cfg)
			err := run(context.Background(), cfg, &bytes.Buffer{}, &bytes.Buffer{})
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
