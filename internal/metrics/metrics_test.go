package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveReply("message", "fallback")
	m.ObserveReply("message", "fallback")
	m.ObserveReply("predefined", "api")
	m.ObserveAPICall(0.2, true)
	m.ObserveLeadSubmission(true)
	m.ObserveLeadSubmission(false)
	m.ObserveLeadSubmission(false)
	m.SetActiveSessions(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.chatReplies.WithLabelValues("message", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.chatReplies.WithLabelValues("predefined", "api")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.leadSubmits.WithLabelValues("accepted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.leadSubmits.WithLabelValues("rejected")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sessionsActive))
	assert.Equal(t, 1, testutil.CollectAndCount(m.apiLatency))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveReply("message", "api")
	m.ObserveAPICall(1, false)
	m.ObserveLeadSubmission(true)
	m.SetActiveSessions(1)
}
