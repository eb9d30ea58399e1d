package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for remote calls
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the Prometheus collectors of the order lookup.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	remoteCalls          *prometheus.CounterVec
	remoteCallDuration   *prometheus.HistogramVec
	resultCacheLookups   *prometheus.CounterVec
	identityCacheLookups *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		remoteCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shopify_remote_calls_total",
			Help: "Shopify Admin API calls by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		remoteCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shopify_remote_call_duration_seconds",
			Help:    "Duration of Shopify Admin API calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		resultCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shopify_result_cache_lookups_total",
			Help: "Order result cache lookups by result (hit, miss)",
		}, []string{"result"}),
		identityCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shopify_identity_cache_lookups_total",
			Help: "Customer identity cache lookups by result (hit, miss)",
		}, []string{"result"}),
	}

	reg.MustRegister(m.remoteCalls, m.remoteCallDuration, m.resultCacheLookups, m.identityCacheLookups)
	return m
}

// ObserveRemoteCall records one Admin API call
func (m *Metrics) ObserveRemoteCall(endpoint, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.remoteCalls.WithLabelValues(endpoint, outcome).Inc()
	m.remoteCallDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

// ObserveResultCache records a result cache lookup
func (m *Metrics) ObserveResultCache(hit bool) {
	if m == nil {
		return
	}
	m.resultCacheLookups.WithLabelValues(hitLabel(hit)).Inc()
}

// ObserveIdentityCache records a customer identity cache lookup
func (m *Metrics) ObserveIdentityCache(hit bool) {
	if m == nil {
		return
	}
	m.identityCacheLookups.WithLabelValues(hitLabel(hit)).Inc()
}

func hitLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
