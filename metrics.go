package svmgo

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting training metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordEpoch is called after each epoch with its total modification.
	RecordEpoch(modify float64)

	// RecordFit is called after each Fit call.
	// epochs is the number of epochs run, duration the wall time,
	// err is nil if successful.
	RecordFit(epochs uint64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEpoch(float64)                    {}
func (NoopMetricsCollector) RecordFit(uint64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EpochCount     atomic.Int64
	LastModifyBits atomic.Uint64
	FitCount       atomic.Int64
	FitErrors      atomic.Int64
	FitEpochs      atomic.Int64
	FitTotalNanos  atomic.Int64
}

// RecordEpoch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEpoch(modify float64) {
	b.EpochCount.Add(1)
	b.LastModifyBits.Store(math.Float64bits(modify))
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(epochs uint64, duration time.Duration, err error) {
	b.FitCount.Add(1)
	b.FitEpochs.Add(int64(epochs))
	b.FitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FitErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EpochCount:  b.EpochCount.Load(),
		LastModify:  math.Float64frombits(b.LastModifyBits.Load()),
		FitCount:    b.FitCount.Load(),
		FitErrors:   b.FitErrors.Load(),
		FitEpochs:   b.FitEpochs.Load(),
		FitAvgNanos: b.getAvgFitNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgFitNanos() int64 {
	count := b.FitCount.Load()
	if count == 0 {
		return 0
	}
	return b.FitTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EpochCount  int64
	LastModify  float64
	FitCount    int64
	FitErrors   int64
	FitEpochs   int64
	FitAvgNanos int64
}
