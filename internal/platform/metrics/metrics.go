package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec

	recordsGenerated *prometheus.CounterVec
	labelNoise       prometheus.Counter
	scores           prometheus.Histogram
	predictions      *prometheus.CounterVec
}

// New crea las métricas sobre un registry propio, para no chocar con el
// registry global cuando hay varias instancias (tests).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		recordsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catgen_records_generated_total",
			Help: "Synthetic records generated, by final health status.",
		}, []string{"status"}),
		labelNoise: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catgen_label_noise_total",
			Help: "Records whose final label differs from the generation category.",
		}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catgen_health_score",
			Help:    "Distribution of rule-based health scores.",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 7, 9, 12, 15},
		}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catgen_predictions_total",
			Help: "Health predictions served, by source (model|rules) and status.",
		}, []string{"source", "status"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.recordsGenerated,
		m.labelNoise,
		m.scores,
		m.predictions,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// RecordGenerated cuenta un registro generado; noisy indica que el label
// final no coincide con la categoría de generación.
func (m *Metrics) RecordGenerated(status string, noisy bool) {
	if m == nil {
		return
	}
	m.recordsGenerated.WithLabelValues(status).Inc()
	if noisy {
		m.labelNoise.Inc()
	}
}

func (m *Metrics) ObserveScore(score float64) {
	if m == nil {
		return
	}
	m.scores.Observe(score)
}

func (m *Metrics) Prediction(source, status string) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(source, status).Inc()
}

func (m *Metrics) ObserveHTTP(route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
