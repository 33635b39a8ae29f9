package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters/histograms for the chat and lead flows.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	chatReplies    *prometheus.CounterVec
	apiLatency     *prometheus.HistogramVec
	leadSubmits    *prometheus.CounterVec
	sessionsActive prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		chatReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "softsell",
			Subsystem: "chat",
			Name:      "replies_total",
			Help:      "Chat replies by turn kind and reply source",
		}, []string{"kind", "source"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "softsell",
			Subsystem: "chat",
			Name:      "api_seconds",
			Help:      "Latency of conversational API calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		leadSubmits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "softsell",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Lead form submissions by result",
		}, []string{"result"}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "softsell",
			Name:      "sessions_active",
			Help:      "Visitor sessions held in memory",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.chatReplies, m.apiLatency, m.leadSubmits, m.sessionsActive)
	return m
}

func (m *Metrics) ObserveReply(kind, source string) {
	if m == nil {
		return
	}
	m.chatReplies.WithLabelValues(kind, source).Inc()
}

func (m *Metrics) ObserveAPICall(seconds float64, ok bool) {
	if m == nil {
		return
	}
	outcome := "error"
	if ok {
		outcome = "ok"
	}
	m.apiLatency.WithLabelValues(outcome).Observe(seconds)
}

func (m *Metrics) ObserveLeadSubmission(accepted bool) {
	if m == nil {
		return
	}
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	m.leadSubmits.WithLabelValues(result).Inc()
}

func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.sessionsActive.Set(float64(n))
}
