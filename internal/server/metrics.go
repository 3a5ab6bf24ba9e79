package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receiptly_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "receiptly_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Receipt parsing metrics
	parseRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receiptly_parse_requests_total",
			Help: "Total number of receipt parse requests",
		},
		[]string{"status"}, // status: success, failure
	)

	parseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "receiptly_parse_duration_seconds",
			Help:    "Receipt parse duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 25},
		},
	)

	recognizedTextLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "receiptly_recognized_text_length",
			Help:    "Length of recognized receipt text",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000},
		},
	)

	itemsExtracted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "receiptly_items_extracted",
			Help:    "Number of line items extracted per receipt",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)

	expensesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "receiptly_expenses_created_total",
			Help: "Total number of expenses persisted from parsed receipts",
		},
	)

	// Rate limiting metrics
	rateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receiptly_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"type"},
	)

	// File upload metrics
	uploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "receiptly_upload_size_bytes",
			Help:    "Size of uploaded receipt images in bytes",
			Buckets: []float64{1024, 10 * 1024, 100 * 1024, 1024 * 1024, 10 * 1024 * 1024},
		},
	)

	// WebSocket metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "receiptly_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receiptly_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"}, // direction: received, sent
	)
)
