package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveGatewayRequest("GET", "/animals-simple", "ok", time.Millisecond)
		m.ObserveViewLoad("animals", "ok")
		m.ObserveMutation("create", "failed")
	})
}

func TestCountersIncrement(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveViewLoad("animals", "ok")
	m.ObserveViewLoad("animals", "ok")
	m.ObserveMutation("delete", "failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ViewLoads.WithLabelValues("animals", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Mutations.WithLabelValues("delete", "failed")))
}
