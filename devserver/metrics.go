package devserver

import (
	"path"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the dev server collectors, registered on their own registry
// and exposed at /metrics.
type Metrics struct {
	Registry *prometheus.Registry
	// Requests counts requests by chi route pattern, method and status.
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	// AssetBytes counts page and asset bytes written to the client, after
	// compression, by asset kind (wasm, js, html, other).
	AssetBytes *prometheus.CounterVec
	// Echoed counts /api/echo calls by verb, UPDATE included.
	Echoed *prometheus.CounterVec
}

// NewMetrics creates the collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests served, by route pattern, method and status",
		}, []string{"route", "method", "status"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time to serve a request, by route pattern",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
		}, []string{"route"}),
		AssetBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "asset_bytes_total",
			Help:      "Bytes of the index page and static assets sent to the browser",
		}, []string{"kind"}),
		Echoed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "echo_requests_total",
			Help:      "Requests reflected by /api/echo, by verb",
		}, []string{"method"}),
	}
	m.Registry.MustRegister(m.Requests, m.Latency, m.AssetBytes, m.Echoed)
	return m
}

// assetKind classifies a page or static path; API and metrics paths are not
// assets.
func assetKind(p string) (string, bool) {
	if strings.HasPrefix(p, "/api/") || p == "/metrics" {
		return "", false
	}
	switch path.Ext(p) {
	case ".wasm":
		return "wasm", true
	case ".js":
		return "js", true
	case "", ".html":
		return "html", true
	}
	return "other", true
}
