package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordRequest("/user/me", "GET", 401, 5*time.Millisecond)
	m.RecordRequest("/user/me", "GET", 401, 5*time.Millisecond)
	m.RecordError("/user/me", "GET", "UNAUTHENTICATED")
	m.RecordAuthEvent("user_logged_in")
	m.RecordLogin("success")
	m.RecordLogin("failure")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("/user/me", "GET", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorCount.WithLabelValues("/user/me", "GET", "UNAUTHENTICATED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authEvents.WithLabelValues("user_logged_in")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginOutcomes.WithLabelValues("failure")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordAuthEvent("x")
		m.RecordLogin("x")
	})
}
