package reconcile_payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/NBNE-SignsBooking/internal/domain"
	"github.com/m04kA/NBNE-SignsBooking/internal/infra/storage/handoff"
)

// UseCase use case сверки статуса бронирования после оплаты
type UseCase struct {
	client  BookingClient
	handoff HandoffStore
	waiter  Waiter
	opts    Options
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
// Attempts меньше 1 трактуется как 1
func NewUseCase(client BookingClient, handoff HandoffStore, waiter Waiter, opts Options, logger Logger) *UseCase {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	return &UseCase{
		client:  client,
		handoff: handoff,
		waiter:  waiter,
		opts:    opts,
		logger:  logger,
	}
}

// Execute читает ID бронирования из hand-off сессии, выжидает паузу и запрашивает статус
// Без сохранённого ID сетевых запросов не делается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. ID бронирования из hand-off
	bookingID, err := uc.stashedBookingID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ReconcilePayment: booking id=%d, checkout session=%q", bookingID, req.CheckoutSessionID)

	var lastErr error
	for attempt := 1; attempt <= uc.opts.Attempts; attempt++ {
		// 2. Пауза, чтобы бэкенд успел обработать webhook оплаты
		if err := uc.waiter.Wait(ctx, uc.opts.Delay); err != nil {
			uc.logger.Info("ReconcilePayment: booking id=%d, wait cancelled: %v", bookingID, err)
			return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}

		if attempt == 1 && uc.opts.ConfirmPayment {
			uc.confirmPayment(ctx, req.SessionID, bookingID)
		}

		// 3. Статус бронирования
		booking, err := uc.client.GetBooking(ctx, bookingID)
		if err != nil {
			lastErr = err
			uc.logger.Warn("ReconcilePayment: attempt %d/%d, failed to fetch booking id=%d: %v",
				attempt, uc.opts.Attempts, bookingID, err)
			continue
		}

		if booking.Status.IsPendingPayment() && attempt < uc.opts.Attempts {
			uc.logger.Info("ReconcilePayment: attempt %d/%d, booking id=%d still pending payment",
				attempt, uc.opts.Attempts, bookingID)
			continue
		}

		uc.logger.Info("ReconcilePayment: booking id=%d, status=%s", bookingID, booking.Status)
		return &Response{Booking: booking, Attempts: attempt}, nil
	}

	uc.logger.Error("ReconcilePayment: giving up on booking id=%d: %v", bookingID, lastErr)
	return nil, fmt.Errorf("%w: %w", ErrLoadFailed, lastErr)
}

func (uc *UseCase) stashedBookingID(ctx context.Context, sessionID string) (int64, error) {
	raw, err := uc.handoff.Get(ctx, sessionID, domain.HandoffKeyBookingID)
	if err != nil {
		if !errors.Is(err, handoff.ErrKeyNotFound) && !errors.Is(err, handoff.ErrEmptySession) {
			uc.logger.Error("ReconcilePayment: failed to read handoff: %v", err)
		}
		return 0, ErrNoBookingFound
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		uc.logger.Warn("ReconcilePayment: stashed booking id %q is not a number", raw)
		return 0, ErrNoBookingFound
	}
	return id, nil
}

// confirmPayment явно подтверждает оплату; результат только логируется
func (uc *UseCase) confirmPayment(ctx context.Context, sessionID string, bookingID int64) {
	paymentSessionID, err := uc.handoff.Get(ctx, sessionID, domain.HandoffKeyPaymentSessionID)
	if err != nil || paymentSessionID == "" {
		return
	}

	resp, err := uc.client.ConfirmBookingPayment(ctx, bookingID, paymentSessionID)
	if err != nil {
		uc.logger.Warn("ReconcilePayment: confirm payment for booking id=%d failed: %v", bookingID, err)
		return
	}
	uc.logger.Info("ReconcilePayment: confirm payment for booking id=%d: status=%s", bookingID, resp.Status)
}
