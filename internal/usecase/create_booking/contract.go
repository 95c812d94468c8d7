package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/NBNE-SignsBooking/internal/integrations/bookingapi"
)

// BookingClient интерфейс клиента booking API
type BookingClient interface {
	CreateBooking(ctx context.Context, req *bookingapi.BookingRequest) (*bookingapi.BookingResponse, error)
}

// HandoffStore интерфейс хранилища session hand-off
type HandoffStore interface {
	Put(ctx context.Context, sessionID, key, value string) error
	Clear(ctx context.Context, sessionID, key string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
