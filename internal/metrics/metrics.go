// Package metrics exposes Prometheus instrumentation for the board.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "board"

// Metrics owns a private registry so several instances (tests, multiple
// servers in one process) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	MessagesCreated prometheus.Counter
	MessagesDeleted prometheus.Counter
	MessagesPruned  prometheus.Counter
	RepliesCreated  prometheus.Counter
	RepliesDeleted  prometheus.Counter
	TagsCreated     prometheus.Counter
	TagAttachFailed prometheus.Counter
	SubmitsLimited  prometheus.Counter

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers the board collectors plus the Go runtime and
// process collectors.
func New() *Metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}

	m := &Metrics{
		registry:        prometheus.NewRegistry(),
		MessagesCreated: counter("messages_created_total", "Total number of messages created"),
		MessagesDeleted: counter("messages_deleted_total", "Total number of explicit message deletions"),
		MessagesPruned:  counter("messages_pruned_total", "Total number of messages removed by the retention cap"),
		RepliesCreated:  counter("replies_created_total", "Total number of replies created"),
		RepliesDeleted:  counter("replies_deleted_total", "Total number of explicit reply deletions"),
		TagsCreated:     counter("tags_created_total", "Total number of tags created"),
		TagAttachFailed: counter("tag_attach_failures_total", "Tags skipped because they could not be created or attached"),
		SubmitsLimited:  counter("submits_rate_limited_total", "Write requests rejected by the rate limiter"),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.MessagesCreated,
		m.MessagesDeleted,
		m.MessagesPruned,
		m.RepliesCreated,
		m.RepliesDeleted,
		m.TagsCreated,
		m.TagAttachFailed,
		m.SubmitsLimited,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}

// RegisterStoredMessages exposes the live message count through fn, which is
// evaluated on every scrape.
func (m *Metrics) RegisterStoredMessages(fn func() float64) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "messages_stored",
			Help:      "Number of messages currently stored",
		},
		fn,
	))
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus metrics HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
