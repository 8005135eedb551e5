package prom

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordBuild(10, 20, 50*time.Millisecond, nil)
	c.RecordBuild(0, 0, time.Millisecond, errors.New("boom"))
	c.RecordNeighborQuery(5, 5, time.Millisecond)
	c.RecordNeighborQuery(5, 0, time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(c.buildsTotal.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.buildsTotal.WithLabelValues("error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.queriesTotal.WithLabelValues("found")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.queriesTotal.WithLabelValues("empty")), 0)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}

	assert.True(t, names["semgraph_builds_total"])
	assert.True(t, names["semgraph_build_duration_seconds"])
	assert.True(t, names["semgraph_neighbor_queries_total"])
}
