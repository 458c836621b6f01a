package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	serverDatagrams = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dtproto",
			Subsystem: "server",
			Name:      "datagrams_total",
			Help:      "Datagrams received per language socket.",
		},
		[]string{"lang"},
	)
	serverDiscards = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dtproto",
			Subsystem: "server",
			Name:      "discarded_total",
			Help:      "Datagrams dropped without a response.",
		},
		[]string{"lang", "reason"},
	)
	serverResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dtproto",
			Subsystem: "server",
			Name:      "responses_total",
			Help:      "Responses sent.",
		},
		[]string{"lang", "kind"},
	)
	serverDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dtproto",
			Subsystem: "server",
			Name:      "process_duration_seconds",
			Help:      "Time from datagram dispatch to response send.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		},
		[]string{"lang"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dtproto",
			Subsystem: "admin",
			Name:      "requests_total",
			Help:      "Total admin HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dtproto",
			Subsystem: "admin",
			Name:      "request_duration_seconds",
			Help:      "Admin HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			serverDatagrams,
			serverDiscards,
			serverResponses,
			serverDuration,
			httpRequests,
			httpDuration,
		)
	})
}

func RecordDatagram(lang string) {
	serverDatagrams.WithLabelValues(lang).Inc()
}

func RecordDiscard(lang, reason string) {
	serverDiscards.WithLabelValues(lang, reason).Inc()
}

func RecordResponse(lang, kind string, duration time.Duration) {
	serverResponses.WithLabelValues(lang, kind).Inc()
	serverDuration.WithLabelValues(lang).Observe(duration.Seconds())
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, code).Inc()
	httpDuration.WithLabelValues(node, method, path, code).Observe(duration.Seconds())
}
