package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Store Метрики (key-value хранилище каталога)
// =============================================================================

// StoreOperationDuration - время операций Load/Save/Clear хранилища
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "store_operation_duration_seconds",
		Help:    "Duration of catalog store operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	},
	[]string{"service", "operation"},
)

// StoreErrors - ошибки операций хранилища
var StoreErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "store_errors_total",
		Help: "Total number of catalog store errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные уведомления
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Business Метрики (admin-дашборд)
// =============================================================================

// AdminLocationsTotal - количество локаций в каталоге
var AdminLocationsTotal = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "admin_locations_total",
		Help: "Number of locations in the catalog",
	},
)

// AdminReviewsByStatus - количество отзывов по статусам модерации
var AdminReviewsByStatus = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "admin_reviews_by_status",
		Help: "Number of reviews by moderation status",
	},
	[]string{"status"}, // pending, approved, rejected
)

// AdminCommandsTotal - выполненные admin-команды
var AdminCommandsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "admin_commands_total",
		Help: "Total number of admin commands executed",
	},
	[]string{"command", "status"}, // status: success, error
)
