// Command strtab dumps the entries of a string table embedded in a file or
// an object-store blob.
//
// Usage:
//
//	strtab [options] <path | s3://bucket/key | minio://endpoint/bucket/key>
//
// An input ending in "/" lists the objects under that prefix.
//
// Examples:
//
//	strtab -offset 0x3a8 -size 0x1f2 ./libfoo.so
//	strtab -enc utf16 -swap -format json ./resources.bin
//	strtab -offset 0x1000 -size 0x200 -compression zstd -chdr s3://builds/vmlinux
//	strtab -format json -out s3://builds/vmlinux.strtab.json ./vmlinux
//	strtab s3://builds/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

var (
	encName     = flag.String("enc", "utf8", "code-unit encoding (utf8, utf16, utf32)")
	swap        = flag.Bool("swap", false, "byte-swap every entry (table recorded in the opposite byte order)")
	offset      = flag.Int64("offset", 0, "byte offset of the table within the input")
	size        = flag.Int64("size", -1, "table size in bytes (default: to the end of the input)")
	at          = flag.Int64("at", -1, "look up the single entry at this table-relative offset")
	containing  = flag.Int64("containing", -1, "resolve the entry whose bytes cover this table-relative offset")
	backend     = flag.String("backend", "mmap", "local file backend (mmap, handle)")
	format      = flag.String("format", "text", "output format (text, json, go-json)")
	lossy       = flag.Bool("lossy", false, "replace malformed code units with U+FFFD instead of skipping the entry")
	compression = flag.String("compression", "none", "table compression (none, zlib, zstd, lz4)")
	chdr        = flag.Bool("chdr", false, "the compressed table starts with an ELF64 compression header")
	usize       = flag.Int64("usize", 0, "uncompressed size (required for lz4 without -chdr)")
	maxLen      = flag.Int64("max-len", 0, "maximum code units per entry (0: unlimited)")
	ioLimit     = flag.Int64("io-limit", 0, "remote read limit in bytes per second (0: unlimited)")
	cacheBytes  = flag.Int64("cache", 16<<20, "remote block cache size in bytes")
	minioTLS    = flag.Bool("minio-tls", false, "use TLS for minio:// endpoints")
	verbose     = flag.Bool("v", false, "verbose logging")
	stats       = flag.Bool("stats", false, "print scan statistics to stderr")
	outPath     = flag.String("out", "", "write the output to a path, s3:// or minio:// object instead of stdout")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <path|s3://bucket/key|minio://endpoint/bucket/key>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := runConfig{
		Input:       flag.Arg(0),
		Out:         *outPath,
		Encoding:    *encName,
		Swap:        *swap,
		Offset:      *offset,
		Size:        *size,
		At:          *at,
		Containing:  *containing,
		Backend:     *backend,
		Format:      *format,
		Lossy:       *lossy,
		Compression: *compression,
		CHdr:        *chdr,
		USize:       *usize,
		MaxLen:      *maxLen,
		IOLimit:     *ioLimit,
		CacheBytes:  *cacheBytes,
		MinioTLS:    *minioTLS,
		Verbose:     *verbose,
		Stats:       *stats,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
