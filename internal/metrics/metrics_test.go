package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	// Given: a private registry
	reg := prometheus.NewRegistry()
	m := New(reg)

	// When: touching every collector
	m.RoomsCreated.WithLabelValues("code").Inc()
	m.RoomsActive.Set(3)
	m.QueueLength.Set(1)
	m.Shots.WithLabelValues("hit").Add(2)
	m.GamesFinished.Inc()
	m.Rejections.WithLabelValues("fire").Inc()

	// Then: values are observable and registered under the namespace
	assert.InDelta(t, 1, testutil.ToFloat64(m.RoomsCreated.WithLabelValues("code")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.RoomsActive), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Shots.WithLabelValues("hit")), 0)

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	assert.Panics(t, func() { New(reg) }, "registering twice on the same registry must fail")
}
