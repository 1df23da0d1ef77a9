package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.RecordAuth("login", nil)
	m.RecordAuth("login", errors.New("bad password"))
	m.RecordAuth("login", errors.New("bad password"))
	m.RecordMedia("upload", nil)
	m.ObserveRequest("GET", "/api/v1/healthcheck", 200, time.Now())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthEvents.WithLabelValues("login", OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthEvents.WithLabelValues("login", OutcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MediaOperations.WithLabelValues("upload", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v1/healthcheck", "200")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordAuth("login", nil)
		m.RecordMedia("delete", nil)
		m.ObserveRequest("GET", "/", 200, time.Now())
	})
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
