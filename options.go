package binparse

import (
	"log/slog"
)

// DefaultScanChunkSize is the read size used when scanning non-resident sources.
const DefaultScanChunkSize = 64

type options struct {
	forceSwap        bool
	maxStringLength  int64
	scanChunkSize    int64
	lossy            bool
	host             Endian
	hostSet          bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a StringTable.
type Option func(*options)

// WithForceSwap byte-swaps every entry, for tables recorded in the
// opposite byte order of the host.
func WithForceSwap() Option {
	return func(o *options) {
		o.forceSwap = true
	}
}

// WithSwap sets the force-swap flag explicitly.
func WithSwap(swap bool) Option {
	return func(o *options) {
		o.forceSwap = swap
	}
}

// WithMaxStringLength bounds the number of code units an entry may hold
// before its terminator. Scans of longer entries fail with ErrStringTooLong.
//
// Zero (the default) means unlimited: a table without a terminator is
// scanned to the end of the source.
func WithMaxStringLength(units int64) Option {
	return func(o *options) {
		o.maxStringLength = max(units, 0)
	}
}

// WithScanChunkSize sets how many bytes are requested per read when the
// source is not memory resident. The value is rounded up to a whole number
// of code units. Values <= 0 select DefaultScanChunkSize.
func WithScanChunkSize(n int64) Option {
	return func(o *options) {
		o.scanChunkSize = n
	}
}

// WithLossyDecoding replaces malformed code units with U+FFFD instead of
// dropping the entry.
func WithLossyDecoding() Option {
	return func(o *options) {
		o.lossy = true
	}
}

// WithHostEndian overrides host byte-order detection. Code units are read
// and byte-order marks are evaluated as if the host had byte order e.
func WithHostEndian(e Endian) Option {
	return func(o *options) {
		o.host = e
		o.hostSet = true
	}
}

// WithMetricsCollector configures a metrics collector for lookups and scans.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &binparse.BasicMetricsCollector{}
//	table, _ := binparse.New(src, binparse.UTF8, off, size, binparse.WithMetricsCollector(metrics))
//	// ... use table ...
//	stats := metrics.GetStats()
//	fmt.Printf("Lookups: %d, Avg latency: %dns\n", stats.LookupCount, stats.LookupAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for lookups and iteration.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := binparse.NewJSONLogger(slog.LevelDebug)
//	table, _ := binparse.New(src, binparse.UTF8, off, size, binparse.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		scanChunkSize:    DefaultScanChunkSize,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.scanChunkSize <= 0 {
		o.scanChunkSize = DefaultScanChunkSize
	}
	return o
}
