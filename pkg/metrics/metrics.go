package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTPRequestsTotal количество обработанных HTTP запросов
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTPRequestDuration длительность обработки HTTP запросов
	HTTPRequestDuration *prometheus.HistogramVec
	// BookingAPIRequestsTotal количество запросов к booking API
	BookingAPIRequestsTotal *prometheus.CounterVec
	// BookingAPIRequestDuration длительность запросов к booking API
	BookingAPIRequestDuration *prometheus.HistogramVec
}

// New регистрирует метрики в указанном registerer
// В production передаётся prometheus.DefaultRegisterer, в тестах - prometheus.NewRegistry()
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "http",
				Name:        "requests_total",
				Help:        "The total number of handled HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   "http",
				Name:        "request_duration_seconds",
				Help:        "Time spent handling HTTP requests",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		BookingAPIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "booking_api",
				Name:        "requests_total",
				Help:        "The total number of requests sent to the booking API",
				ConstLabels: constLabels,
			},
			[]string{"operation", "status_class"},
		),
		BookingAPIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   "booking_api",
				Name:        "request_duration_seconds",
				Help:        "Time spent waiting for the booking API",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// ObserveHTTP фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveBookingAPI фиксирует запрос к booking API
// status = 0 означает, что ответ не получен (ошибка транспорта)
func (m *Metrics) ObserveBookingAPI(operation string, status int, elapsed time.Duration) {
	m.BookingAPIRequestsTotal.WithLabelValues(operation, StatusClass(status)).Inc()
	m.BookingAPIRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// StatusClass сворачивает HTTP статус в класс: 2xx, 4xx, 5xx; "error" для отсутствующего ответа
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
