package lookup_booking

import (
	"context"

	lookupBooking "github.com/m04kA/NBNE-SignsBooking/internal/usecase/lookup_booking"
)

type LookupBookingUseCase interface {
	Execute(ctx context.Context, req *lookupBooking.Request) (*lookupBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
