package lookup_booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// UseCase use case поиска бронирования по ID
type UseCase struct {
	client BookingClient
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client BookingClient, logger Logger) *UseCase {
	return &UseCase{client: client, logger: logger}
}

// Execute ищет бронирование; нечисловой или неположительный ID даёт ErrBookingNotFound без запроса к API
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	raw := strings.TrimSpace(req.RawID)
	if raw == "" {
		return nil, ErrEmptyID
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		uc.logger.Warn("LookupBooking: invalid booking id %q", raw)
		return nil, fmt.Errorf("%w: invalid id %q", ErrBookingNotFound, raw)
	}

	booking, err := uc.client.GetBooking(ctx, id)
	if err != nil {
		uc.logger.Warn("LookupBooking: booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %w", ErrBookingNotFound, err)
	}

	uc.logger.Info("LookupBooking: found booking id=%d, status=%s", booking.BookingID, booking.Status)
	return &Response{Booking: booking}, nil
}
