package binparse

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    lookupHistogram prometheus.Histogram
//	    scannedBytes    prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordScan(bytes int64, swapped bool) {
//	    p.scannedBytes.Add(float64(bytes))
//	}
type MetricsCollector interface {
	// RecordLookup is called after each random-access lookup.
	// err is nil if an entry was found.
	RecordLookup(duration time.Duration, err error)

	// RecordScan is called after each successful scan of one entry.
	// bytes is the number of bytes consumed, including the terminator.
	RecordScan(bytes int64, swapped bool)

	// RecordSkip is called when iteration skips an entry.
	RecordSkip(err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLookup(time.Duration, error) {}
func (NoopMetricsCollector) RecordScan(int64, bool)            {}
func (NoopMetricsCollector) RecordSkip(error)                  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LookupCount      atomic.Int64
	LookupErrors     atomic.Int64
	LookupTotalNanos atomic.Int64
	ScanCount        atomic.Int64
	ScanBytes        atomic.Int64
	SwappedCount     atomic.Int64
	SkipCount        atomic.Int64
	InvalidCount     atomic.Int64
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(duration time.Duration, err error) {
	b.LookupCount.Add(1)
	b.LookupTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LookupErrors.Add(1)
	}
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(bytes int64, swapped bool) {
	b.ScanCount.Add(1)
	b.ScanBytes.Add(bytes)
	if swapped {
		b.SwappedCount.Add(1)
	}
}

// RecordSkip implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSkip(err error) {
	b.SkipCount.Add(1)
	if isInvalidEncoding(err) {
		b.InvalidCount.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LookupCount:    b.LookupCount.Load(),
		LookupErrors:   b.LookupErrors.Load(),
		LookupAvgNanos: b.getAvgLookupNanos(),
		ScanCount:      b.ScanCount.Load(),
		ScanBytes:      b.ScanBytes.Load(),
		SwappedCount:   b.SwappedCount.Load(),
		SkipCount:      b.SkipCount.Load(),
		InvalidCount:   b.InvalidCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgLookupNanos() int64 {
	count := b.LookupCount.Load()
	if count == 0 {
		return 0
	}
	return b.LookupTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LookupCount    int64
	LookupErrors   int64
	LookupAvgNanos int64
	ScanCount      int64
	ScanBytes      int64
	SwappedCount   int64
	SkipCount      int64
	InvalidCount   int64
}
