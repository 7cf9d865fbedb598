package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/binparse"
	"github.com/hupe1980/binparse/blobstore"
	miniostore "github.com/hupe1980/binparse/blobstore/minio"
	s3store "github.com/hupe1980/binparse/blobstore/s3"
	"github.com/hupe1980/binparse/codec"
	"github.com/hupe1980/binparse/internal/cache"
	"github.com/hupe1980/binparse/internal/resource"
	"github.com/hupe1980/binparse/layout"
	"github.com/hupe1980/binparse/source"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type runConfig struct {
	Input       string
	Out         string
	Encoding    string
	Swap        bool
	Offset      int64
	Size        int64
	At          int64
	Containing  int64
	Backend     string
	Format      string
	Lossy       bool
	Compression string
	CHdr        bool
	USize       int64
	MaxLen      int64
	IOLimit     int64
	CacheBytes  int64
	MinioTLS    bool
	Verbose     bool
	Stats       bool
}

// elf64Chdr is the ELF64 compression header (Elf64_Chdr).
type elf64Chdr struct {
	Type      uint32
	Reserved  uint32
	Size      uint64
	AddrAlign uint64
}

const (
	elfCompressZlib = 1
	elfCompressZstd = 2
)

const remoteFetchConcurrency = 8

func run(ctx context.Context, cfg runConfig, stdout, stderr io.Writer) error {
	enc, err := binparse.ParseEncoding(cfg.Encoding)
	if err != nil {
		return err
	}
	comp, err := source.ParseCompression(cfg.Compression)
	if err != nil {
		return err
	}
	out, ok := codec.ByName(cfg.Format)
	if !ok && cfg.Format != "text" {
		return fmt.Errorf("unknown format %q", cfg.Format)
	}

	if strings.HasSuffix(cfg.Input, "/") {
		return listTables(ctx, cfg, stdout)
	}

	w := stdout
	var dump bytes.Buffer
	if cfg.Out != "" {
		w = &dump
	}

	src, closeFn, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	host, err := binparse.HostEndian()
	if err != nil {
		return err
	}

	tableSrc, tableOff, tableSize, err := tableRegion(src, cfg, comp, host)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	metrics := &binparse.BasicMetricsCollector{}
	opts := []binparse.Option{
		binparse.WithSwap(cfg.Swap),
		binparse.WithLogger(binparse.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))),
		binparse.WithMetricsCollector(metrics),
		binparse.WithMaxStringLength(cfg.MaxLen),
	}
	if cfg.Lossy {
		opts = append(opts, binparse.WithLossyDecoding())
	}
	table, err := binparse.New(tableSrc, enc, tableOff, tableSize, opts...)
	if err != nil {
		return err
	}

	switch {
	case cfg.Containing >= 0:
		err = printContaining(table, cfg.Containing, out, w)
	case cfg.At >= 0:
		err = printLookup(ctx, table, cfg.At, out, w)
	default:
		err = printAll(table, out, w)
	}
	if err == nil && cfg.Out != "" {
		err = upload(ctx, cfg, dump.Bytes())
	}

	if cfg.Stats {
		s := metrics.GetStats()
		fmt.Fprintf(stderr, "scanned=%d bytes=%d swapped=%d skipped=%d invalid=%d lookups=%d\n",
			s.ScanCount, s.ScanBytes, s.SwappedCount, s.SkipCount, s.InvalidCount, s.LookupCount)
	}
	return err
}

// tableRegion resolves the source and region the table is decoded from,
// inflating compressed tables into memory.
func tableRegion(src source.Source, cfg runConfig, comp source.Compression, host binparse.Endian) (source.Source, int64, int64, error) {
	size := cfg.Size
	if size < 0 {
		size = src.Size() - cfg.Offset
	}
	if comp == source.CompressionNone && !cfg.CHdr {
		return src, cfg.Offset, size, nil
	}

	dataOff, dataSize, usize := cfg.Offset, size, cfg.USize
	if cfg.CHdr {
		order := host.ByteOrder()
		if cfg.Swap {
			order = host.Swapped().ByteOrder()
		}
		hdr, err := layout.Read[elf64Chdr](src, cfg.Offset, order)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("read compression header: %w", err)
		}
		switch hdr.Type {
		case elfCompressZlib:
			comp = source.CompressionZlib
		case elfCompressZstd:
			comp = source.CompressionZstd
		default:
			return nil, 0, 0, fmt.Errorf("%w: ELF compression type %d", source.ErrUnknownCompression, hdr.Type)
		}
		hdrSize := int64(layout.Of[elf64Chdr]().Size)
		dataOff += hdrSize
		dataSize -= hdrSize
		usize = int64(hdr.Size)
	}

	section, err := source.NewSection(src, dataOff, dataSize)
	if err != nil {
		return nil, 0, 0, err
	}
	mem, err := source.Decompress(section, comp, usize)
	if err != nil {
		return nil, 0, 0, err
	}
	return mem, 0, mem.Size(), nil
}

func openSource(ctx context.Context, cfg runConfig) (source.Source, func(), error) {
	if u, err := url.Parse(cfg.Input); err == nil && (u.Scheme == "s3" || u.Scheme == "minio") {
		return openRemote(ctx, cfg)
	}

	switch cfg.Backend {
	case "mmap":
		f, err := source.MapFile(cfg.Input)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	case "handle":
		h, err := source.OpenHandle(cfg.Input)
		if err != nil {
			return nil, nil, err
		}
		return h, func() { _ = h.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// storeFor resolves location to a blob store and the key or prefix within
// it. Local paths resolve to a LocalStore rooted at their directory.
func storeFor(ctx context.Context, cfg runConfig, location string) (blobstore.BlobStore, string, error) {
	u, err := url.Parse(location)
	if err != nil || (u.Scheme != "s3" && u.Scheme != "minio") {
		if strings.HasSuffix(location, "/") {
			return blobstore.NewLocalStore(location), "", nil
		}
		return blobstore.NewLocalStore(filepath.Dir(location)), filepath.Base(location), nil
	}

	switch u.Scheme {
	case "s3":
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("load AWS config: %w", err)
		}
		return s3store.NewStore(awss3.NewFromConfig(awsCfg), u.Host, ""), strings.TrimPrefix(u.Path, "/"), nil
	default:
		bucket, key, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if bucket == "" {
			return nil, "", fmt.Errorf("minio URL must be minio://endpoint/bucket/key, got %q", location)
		}
		client, err := minio.New(u.Host, &minio.Options{
			Creds:  credentials.NewEnvMinio(),
			Secure: cfg.MinioTLS,
		})
		if err != nil {
			return nil, "", fmt.Errorf("minio client: %w", err)
		}
		return miniostore.NewStore(client, bucket, ""), key, nil
	}
}

func openRemote(ctx context.Context, cfg runConfig) (source.Source, func(), error) {
	store, key, err := storeFor(ctx, cfg, cfg.Input)
	if err != nil {
		return nil, nil, err
	}
	if key == "" {
		return nil, nil, fmt.Errorf("%s: missing object key", cfg.Input)
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:     cfg.CacheBytes,
		MaxConcurrentFetches: remoteFetchConcurrency,
		IOLimitBytesPerSec:   cfg.IOLimit,
	})
	cached := blobstore.NewCachingStore(store, cache.NewLRUBlockCache(cfg.CacheBytes, rc), 0).WithController(rc)

	blob, err := cached.Open(ctx, key)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", cfg.Input, err)
	}
	src, err := source.NewBlobWithController(ctx, blob, rc)
	if err != nil {
		_ = blob.Close()
		return nil, nil, err
	}
	return src, func() { _ = blob.Close() }, nil
}

// listTables prints the keys under the prefix named by cfg.Input.
func listTables(ctx context.Context, cfg runConfig, w io.Writer) error {
	store, prefix, err := storeFor(ctx, cfg, cfg.Input)
	if err != nil {
		return err
	}
	names, err := store.List(ctx, prefix)
	if err != nil {
		return fmt.Errorf("list %s: %w", cfg.Input, err)
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// upload stores the rendered output at cfg.Out.
func upload(ctx context.Context, cfg runConfig, data []byte) error {
	store, key, err := storeFor(ctx, cfg, cfg.Out)
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("%s: missing object key", cfg.Out)
	}
	if err := store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Out, err)
	}
	return nil
}

func printAll(table *binparse.StringTable, out codec.Codec, w io.Writer) error {
	entries, iterErr := table.Entries()
	if out != nil {
		if entries == nil {
			entries = []binparse.StringTableEntry{}
		}
		b, err := out.Marshal(entries)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", b); err != nil {
			return err
		}
		return iterErr
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%#08x %s\n", e.Offset, e.String); err != nil {
			return err
		}
	}
	return iterErr
}

func printLookup(ctx context.Context, table *binparse.StringTable, off int64, out codec.Codec, w io.Writer) error {
	e, err := table.LookupContext(ctx, off)
	if err != nil {
		return err
	}
	return printEntry(e, out, w)
}

func printContaining(table *binparse.StringTable, off int64, out codec.Codec, w io.Writer) error {
	idx, err := binparse.BuildIndex(table)
	if err != nil {
		return err
	}
	start, ok := idx.EntryContaining(off)
	if !ok {
		return fmt.Errorf("no entry covers offset %d", off)
	}
	e, err := table.Lookup(start)
	if err != nil {
		return err
	}
	return printEntry(e, out, w)
}

func printEntry(e binparse.StringTableEntry, out codec.Codec, w io.Writer) error {
	if out != nil {
		b, err := out.Marshal(e)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	}
	_, err := fmt.Fprintf(w, "%#08x %s\n", e.Offset, e.String)
	return err
}
