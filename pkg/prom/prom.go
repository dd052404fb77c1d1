package prom

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	xhttp "github.com/ekhata-app/ekhata/pkg/http"
	"github.com/ekhata-app/ekhata/pkg/logger"
)

const (
	SystemLedger = "ledger"
)

const (
	MetricTransactionsRecorded = "transactions_recorded_total"
	MetricRecordDuration       = "record_duration_seconds"
)

var (
	mu        sync.Mutex
	namespace = "none"
	enabled   = false

	counterVecs   = make(map[string]*prometheus.CounterVec)
	histogramVecs = make(map[string]*prometheus.HistogramVec)

	defaultLabels prometheus.Labels
)

// Create registers the app's metrics under the given namespace. Metric
// calls are no-ops until this runs, so tests and tools that never call
// Create stay silent.
func Create(host, env, nameSpace string) error {
	defaultLabels = prometheus.Labels{"env": env, "instance": host}
	namespace = nameSpace
	enabled = true

	if err := createCounterVec(SystemLedger, MetricTransactionsRecorded, []string{"type"}); err != nil {
		return err
	}
	if err := createHistogramVec(SystemLedger, MetricRecordDuration, []string{"type"}); err != nil {
		return err
	}
	return nil
}

// ListenAndServe exposes /metrics (or the given uri) on its own listener.
func ListenAndServe(addr string, uri string) {
	hh := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	s := xhttp.CreateServer()
	s.GET(uri, hh)
	logger.Info("[metrics-server] listening...", "addr", addr, "uri", uri)
	if err := s.ListenAndServe(addr); err != nil {
		logger.Panic("[metrics-server] http listen error", "error", err)
	}
}

func IncCounterVec(subsystem, name string, labelValues ...string) {
	AddCounterVec(subsystem, name, 1, labelValues...)
}

func AddCounterVec(subsystem, name string, number float64, labelValues ...string) {
	if !enabled {
		return
	}
	if v, ok := counterVecs[subsystem+name]; ok {
		v.WithLabelValues(labelValues...).Add(number)
		return
	}
	logger.Warn("[metrics] counter not found", "subsystem", subsystem, "name", name)
}

func ObserveHistogramVec(subsystem, name string, value float64, labelValues ...string) {
	if !enabled {
		return
	}
	if v, ok := histogramVecs[subsystem+name]; ok {
		v.WithLabelValues(labelValues...).Observe(value)
		return
	}
	logger.Warn("[metrics] histogram not found", "subsystem", subsystem, "name", name)
}

func createCounterVec(subsystem, name string, labels []string) error {
	mu.Lock()
	defer mu.Unlock()
	counterVecs[subsystem+name] = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		ConstLabels: defaultLabels,
	}, labels)
	return prometheus.Register(counterVecs[subsystem+name])
}

func createHistogramVec(subsystem, name string, labels []string) error {
	mu.Lock()
	defer mu.Unlock()
	histogramVecs[subsystem+name] = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		ConstLabels: defaultLabels,
		Buckets:     prometheus.DefBuckets,
	}, labels)
	return prometheus.Register(histogramVecs[subsystem+name])
}
