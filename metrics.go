package semgraph

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after each graph build.
	// nodes and edges describe the produced graph, duration is the total
	// time taken, err is nil if successful.
	RecordBuild(nodes, edges int, duration time.Duration, err error)

	// RecordNeighborQuery is called after each neighbor lookup made during
	// a build. k is the number of neighbors requested, results is the
	// number returned.
	RecordNeighborQuery(k, results int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordNeighborQuery(int, int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount           atomic.Int64
	BuildErrors          atomic.Int64
	BuildTotalNanos      atomic.Int64
	NodesProduced        atomic.Int64
	EdgesProduced        atomic.Int64
	NeighborQueryCount   atomic.Int64
	NeighborQueryEmpty   atomic.Int64
	NeighborQueryResults atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(nodes, edges int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.NodesProduced.Add(int64(nodes))
	b.EdgesProduced.Add(int64(edges))
}

// RecordNeighborQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNeighborQuery(k, results int, duration time.Duration) {
	b.NeighborQueryCount.Add(1)
	b.NeighborQueryResults.Add(int64(results))
	if results == 0 {
		b.NeighborQueryEmpty.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:           b.BuildCount.Load(),
		BuildErrors:          b.BuildErrors.Load(),
		BuildAvgNanos:        b.getAvgBuildNanos(),
		NodesProduced:        b.NodesProduced.Load(),
		EdgesProduced:        b.EdgesProduced.Load(),
		NeighborQueryCount:   b.NeighborQueryCount.Load(),
		NeighborQueryEmpty:   b.NeighborQueryEmpty.Load(),
		NeighborQueryResults: b.NeighborQueryResults.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgBuildNanos() int64 {
	count := b.BuildCount.Load()
	if count == 0 {
		return 0
	}
	return b.BuildTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount           int64
	BuildErrors          int64
	BuildAvgNanos        int64
	NodesProduced        int64
	EdgesProduced        int64
	NeighborQueryCount   int64
	NeighborQueryEmpty   int64
	NeighborQueryResults int64
}
