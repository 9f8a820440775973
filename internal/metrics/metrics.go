// Package metrics exposes the server's Prometheus instruments.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/orrery/internal/texture"
)

// Collector owns a private registry so several servers (and tests) can
// live in one process.
type Collector struct {
	registry *prometheus.Registry

	synthDuration *prometheus.HistogramVec
	cacheLookups  *prometheus.CounterVec
	evictions     prometheus.Counter
	requestsTotal *prometheus.CounterVec
	rateLimited   *prometheus.CounterVec
	streamClients prometheus.Gauge
	framesSent    prometheus.Counter
}

func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		synthDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orrery_texture_synthesis_seconds",
				Help:    "Time spent synthesizing one texture",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"type"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_texture_cache_lookups_total",
				Help: "Texture cache lookups by result",
			},
			[]string{"type", "result"},
		),
		evictions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orrery_texture_cache_evictions_total",
				Help: "Textures dropped from the cache",
			},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		rateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_rate_limited_total",
				Help: "Requests rejected by the per-client limiter",
			},
			[]string{"route"},
		),
		streamClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orrery_stream_clients",
				Help: "Connected websocket clients",
			},
		),
		framesSent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orrery_stream_frames_total",
				Help: "Position frames written to websocket clients",
			},
		),
	}

	m.registry.MustRegister(
		m.synthDuration,
		m.cacheLookups,
		m.evictions,
		m.requestsTotal,
		m.rateLimited,
		m.streamClients,
		m.framesSent,
	)
	return m
}

func (m *Collector) CacheHit(t texture.Type) {
	m.cacheLookups.WithLabelValues(string(t), "hit").Inc()
}

func (m *Collector) CacheMiss(t texture.Type) {
	m.cacheLookups.WithLabelValues(string(t), "miss").Inc()
}

func (m *Collector) Synthesized(t texture.Type, d time.Duration) {
	m.synthDuration.WithLabelValues(string(t)).Observe(d.Seconds())
}

func (m *Collector) Evicted() { m.evictions.Inc() }

func (m *Collector) RecordRequest(route string, code int) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

func (m *Collector) RateLimited(route string) {
	m.rateLimited.WithLabelValues(route).Inc()
}

func (m *Collector) ClientConnected() { m.streamClients.Inc() }

func (m *Collector) ClientDisconnected() { m.streamClients.Dec() }

func (m *Collector) FrameSent() { m.framesSent.Inc() }

// Registry exposes the underlying registry, mainly for tests.
func (m *Collector) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
