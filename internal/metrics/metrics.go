package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the HR assistant.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	LLMRequests            *prometheus.CounterVec
	LLMDuration            *prometheus.HistogramVec
	CacheLookups           *prometheus.CounterVec
	AnalyticsEvents        *prometheus.CounterVec
	AnalyticsWriteFailures prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LLMRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hrassist_llm_requests_total",
			Help: "Model calls by task and outcome",
		}, []string{"task", "outcome"}),
		LLMDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hrassist_llm_request_duration_seconds",
			Help:    "Duration of model calls by task",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		}, []string{"task"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hrassist_completion_cache_lookups_total",
			Help: "Completion cache lookups by result (hit or miss)",
		}, []string{"result"}),
		AnalyticsEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hrassist_analytics_events_total",
			Help: "Analytics events written to the log by kind",
		}, []string{"kind"}),
		AnalyticsWriteFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "hrassist_analytics_write_failures_total",
			Help: "Analytics events that could not be recorded",
		}),
	}
}

// ObserveLLM records one model call. Call with time.Now() taken before the call.
func (m *Metrics) ObserveLLM(task string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.LLMRequests.WithLabelValues(task, outcome).Inc()
	m.LLMDuration.WithLabelValues(task).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementAnalyticsEvent(kind string) {
	if m == nil {
		return
	}
	m.AnalyticsEvents.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementAnalyticsWriteFailure() {
	if m == nil {
		return
	}
	m.AnalyticsWriteFailures.Inc()
}
