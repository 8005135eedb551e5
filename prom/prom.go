// Package prom provides a Prometheus-backed implementation of
// semgraph.MetricsCollector.
package prom

import (
	"time"

	"github.com/hupe1980/semgraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector exposes graph build and neighbor query metrics to Prometheus.
type Collector struct {
	buildsTotal     *prometheus.CounterVec
	buildDuration   prometheus.Histogram
	buildNodes      prometheus.Histogram
	buildEdges      prometheus.Histogram
	queriesTotal    *prometheus.CounterVec
	queryDuration   prometheus.Histogram
	queryResultSize prometheus.Histogram
}

var _ semgraph.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector registered with reg. Passing
// prometheus.DefaultRegisterer uses the default registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		buildsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "semgraph_builds_total",
				Help: "Total number of graph builds",
			},
			[]string{"status"},
		),
		buildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "semgraph_build_duration_seconds",
				Help:    "Duration of graph builds in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		buildNodes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "semgraph_build_nodes",
				Help:    "Number of nodes in built graphs",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		buildEdges: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "semgraph_build_edges",
				Help:    "Number of edges in built graphs",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
		),
		queriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "semgraph_neighbor_queries_total",
				Help: "Total number of neighbor queries made during builds",
			},
			[]string{"result"},
		),
		queryDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "semgraph_neighbor_query_duration_seconds",
				Help:    "Duration of neighbor queries in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		queryResultSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "semgraph_neighbor_query_results",
				Help:    "Number of neighbors returned per query",
				Buckets: prometheus.LinearBuckets(0, 5, 11),
			},
		),
	}
}

// RecordBuild implements semgraph.MetricsCollector.
func (c *Collector) RecordBuild(nodes, edges int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.buildsTotal.WithLabelValues(status).Inc()
	c.buildDuration.Observe(duration.Seconds())

	if err == nil {
		c.buildNodes.Observe(float64(nodes))
		c.buildEdges.Observe(float64(edges))
	}
}

// RecordNeighborQuery implements semgraph.MetricsCollector.
func (c *Collector) RecordNeighborQuery(k, results int, duration time.Duration) {
	result := "found"
	if results == 0 {
		result = "empty"
	}
	c.queriesTotal.WithLabelValues(result).Inc()
	c.queryDuration.Observe(duration.Seconds())
	c.queryResultSize.Observe(float64(results))
}
