package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerMetrics tracks queued notification deliveries performed by the mail
// worker.
type WorkerMetrics struct {
	registry *prometheus.Registry

	deliveriesTotal  *prometheus.CounterVec
	deliveryDuration *prometheus.HistogramVec
	deliveryInFlight prometheus.Gauge
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	deliveriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invsvc",
			Subsystem: "worker",
			Name:      "notification_deliveries_total",
			Help:      "Total notification deliveries by status.",
		},
		[]string{"service", "status"},
	)
	deliveryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "invsvc",
			Subsystem: "worker",
			Name:      "notification_delivery_duration_seconds",
			Help:      "Notification delivery duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	deliveryInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "invsvc",
			Subsystem: "worker",
			Name:      "notification_deliveries_in_flight",
			Help:      "Number of in-flight notification deliveries.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(deliveriesTotal, deliveryDuration, deliveryInFlight)

	return &WorkerMetrics{
		registry:         registry,
		deliveriesTotal:  deliveriesTotal,
		deliveryDuration: deliveryDuration,
		deliveryInFlight: deliveryInFlight,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartDelivery() {
	m.deliveryInFlight.Inc()
}

func (m *WorkerMetrics) FinishDelivery(service string, duration time.Duration, err error) {
	m.deliveryInFlight.Dec()

	status := "delivered"
	if err != nil {
		status = "failed"
	}

	m.deliveriesTotal.WithLabelValues(service, status).Inc()
	m.deliveryDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}
