package lookup_booking

import (
	"context"

	"github.com/m04kA/NBNE-SignsBooking/internal/integrations/bookingapi"
)

// BookingClient интерфейс клиента booking API
type BookingClient interface {
	GetBooking(ctx context.Context, bookingID int64) (*bookingapi.BookingDetails, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
