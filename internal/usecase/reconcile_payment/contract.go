package reconcile_payment

import (
	"context"
	"time"

	"github.com/m04kA/NBNE-SignsBooking/internal/integrations/bookingapi"
)

// BookingClient интерфейс клиента booking API
type BookingClient interface {
	GetBooking(ctx context.Context, bookingID int64) (*bookingapi.BookingDetails, error)
	ConfirmBookingPayment(ctx context.Context, bookingID int64, paymentSessionID string) (*bookingapi.BookingResponse, error)
}

// HandoffStore интерфейс хранилища session hand-off
type HandoffStore interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
}

// Waiter пауза перед запросом статуса; Wait возвращает ошибку контекста, если он отменён раньше
type Waiter interface {
	Wait(ctx context.Context, d time.Duration) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
