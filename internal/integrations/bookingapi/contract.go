package bookingapi

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder интерфейс для метрик исходящих запросов
type MetricsRecorder interface {
	ObserveBookingAPI(operation string, status int, elapsed time.Duration)
}
