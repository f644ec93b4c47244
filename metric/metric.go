// Package metric counts library activity with Prometheus collectors kept on
// a private registry, and hands out the hook sets the router, topic bus and
// ajax client accept.
package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vcrobe/valkyrja/ajax"
	"github.com/vcrobe/valkyrja/router"
	"github.com/vcrobe/valkyrja/topics"
)

// Metrics holds the collectors.
type Metrics struct {
	Registry *prometheus.Registry

	Navigations      *prometheus.CounterVec
	NotFound         prometheus.Counter
	TopicTriggers    *prometheus.CounterVec
	SubscriberPanics *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New creates the collectors under namespace and registers them on a new
// registry.
func New(namespace string) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Navigations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "router_navigations_total",
				Help:      "Completed navigations by route path",
			},
			[]string{"path"},
		),
		NotFound: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "router_not_found_total",
				Help:      "Navigations that rendered the 404 template",
			},
		),
		TopicTriggers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "topic_triggers_total",
				Help:      "Topic triggers by topic name",
			},
			[]string{"topic"},
		),
		SubscriberPanics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "topic_subscriber_panics_total",
				Help:      "Recovered subscriber panics by topic name",
			},
			[]string{"topic"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ajax_requests_total",
				Help:      "Ajax requests by method and response status",
			},
			[]string{"method", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ajax_request_duration_seconds",
				Help:      "Ajax request latency",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method"},
		),
	}
	m.Registry.MustRegister(m.Navigations, m.NotFound, m.TopicTriggers, m.SubscriberPanics, m.HTTPRequests, m.HTTPDuration)
	return m
}

// RouterHooks counts navigations and 404s.
func (m *Metrics) RouterHooks() router.Hooks {
	return router.Hooks{
		OnNavigate: func(path string) { m.Navigations.WithLabelValues(path).Inc() },
		OnNotFound: func(string) { m.NotFound.Inc() },
	}
}

// TopicHooks counts triggers and recovered subscriber panics.
func (m *Metrics) TopicHooks() topics.Hooks {
	return topics.Hooks{
		OnTrigger: func(topic string, _ int) { m.TopicTriggers.WithLabelValues(topic).Inc() },
		OnPanic:   func(topic string) { m.SubscriberPanics.WithLabelValues(topic).Inc() },
	}
}

// AjaxHooks counts requests and observes their latency. Transport failures
// are counted with status "0".
func (m *Metrics) AjaxHooks() ajax.Hooks {
	return ajax.Hooks{
		OnResponse: func(method string, status int, elapsed time.Duration) {
			m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
			m.HTTPDuration.WithLabelValues(method).Observe(elapsed.Seconds())
		},
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
