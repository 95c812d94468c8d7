package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/NBNE-SignsBooking/internal/domain"
	"github.com/m04kA/NBNE-SignsBooking/internal/integrations/bookingapi"
)

// UseCase use case для отправки формы бронирования
type UseCase struct {
	client       BookingClient
	handoff      HandoffStore
	timeProvider TimeProvider
	logger       Logger

	// flights одна отправка на сессию; повторные присоединяются к ней
	flights singleflight.Group
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client BookingClient, handoff HandoffStore, logger Logger) *UseCase {
	return &UseCase{
		client:       client,
		handoff:      handoff,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет черновик, создаёт бронирование и сохраняет его ID в hand-off сессии
// Повторная отправка из той же сессии, пока первая выполняется, получает её результат
// Вызов API не отменяется, если браузер ушёл со страницы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%q, date=%s, total=%d, deposit=%d",
		req.Draft.ServiceName, req.Draft.DateInput(), req.Draft.TotalPence, req.Draft.DepositPence)

	// 1. Валидация до любого сетевого вызова
	if err := validateDraft(req.Draft, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if !req.Draft.CanSubmit() {
		uc.logger.Warn("CreateBooking: draft in phase %s cannot be submitted", req.Draft.Phase)
		return nil, fmt.Errorf("%w: draft cannot be submitted in phase %s", ErrInvalidInput, req.Draft.Phase)
	}
	draft := domain.Apply(req.Draft, domain.SubmitStarted{})

	// 2. Одна отправка на сессию
	submitCtx := context.WithoutCancel(ctx)
	v, err, shared := uc.flights.Do(req.SessionID, func() (interface{}, error) {
		return uc.submit(submitCtx, req.SessionID, strings.TrimRight(req.Origin, "/"), draft)
	})
	if shared {
		uc.logger.Info("CreateBooking: joined in-flight submission for session")
	}
	if err != nil {
		return nil, err
	}

	resp := *v.(*Response)
	return &resp, nil
}

// submit создаёт бронирование и решает, куда перенаправить браузер
func (uc *UseCase) submit(ctx context.Context, sessionID, origin string, draft domain.Draft) (*Response, error) {
	// 3. Создаём бронирование
	apiReq := buildBookingRequest(draft, origin)

	resp, err := uc.client.CreateBooking(ctx, apiReq)
	if err != nil {
		var failed *bookingapi.RequestFailedError
		if errors.As(err, &failed) {
			uc.logger.Warn("CreateBooking: booking API rejected request, status=%d: %s", failed.StatusCode, failed.Message)
		} else {
			uc.logger.Error("CreateBooking: booking API call failed: %v", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}

	// 4. Сохраняем данные для страницы успеха
	uc.stash(ctx, sessionID, resp)

	draft = domain.Apply(draft, domain.SubmitSucceeded{RequiresPayment: resp.RequiresPayment()})

	redirect := resp.CheckoutURL
	if !resp.RequiresPayment() {
		redirect = origin + domain.PathSuccess + "?booking_id=" + strconv.FormatInt(resp.BookingID, 10)
	}

	uc.logger.Info("CreateBooking: created booking id=%d, status=%s, requires payment=%t",
		resp.BookingID, resp.Status, resp.RequiresPayment())

	return &Response{
		BookingID:       resp.BookingID,
		RequiresPayment: resp.RequiresPayment(),
		RedirectURL:     redirect,
		Message:         resp.Message,
		Draft:           draft,
	}, nil
}

// stash записывает booking_id (и payment_session_id на пути с оплатой) в hand-off
// Бронирование уже создано, поэтому ошибки хранилища только логируются
func (uc *UseCase) stash(ctx context.Context, sessionID string, resp *bookingapi.BookingResponse) {
	bookingID := strconv.FormatInt(resp.BookingID, 10)
	if err := uc.handoff.Put(ctx, sessionID, domain.HandoffKeyBookingID, bookingID); err != nil {
		uc.logger.Error("CreateBooking: failed to stash booking id=%d: %v", resp.BookingID, err)
	}

	if resp.RequiresPayment() {
		if err := uc.handoff.Put(ctx, sessionID, domain.HandoffKeyPaymentSessionID, resp.PaymentSessionID); err != nil {
			uc.logger.Error("CreateBooking: failed to stash payment session for booking id=%d: %v", resp.BookingID, err)
		}
		return
	}

	// payment_session_id от предыдущего бронирования в этой сессии больше не актуален
	if err := uc.handoff.Clear(ctx, sessionID, domain.HandoffKeyPaymentSessionID); err != nil {
		uc.logger.Warn("CreateBooking: failed to clear stale payment session: %v", err)
	}
}

func buildBookingRequest(d domain.Draft, origin string) *bookingapi.BookingRequest {
	return &bookingapi.BookingRequest{
		CustomerName:       strings.TrimSpace(d.CustomerName),
		CustomerEmail:      strings.TrimSpace(d.CustomerEmail),
		CustomerPhone:      strings.TrimSpace(d.CustomerPhone),
		ServiceName:        d.ServiceName,
		BookingDate:        d.BookingDateISO(),
		TotalAmountPence:   d.TotalPence,
		DepositAmountPence: d.DepositPence,
		Notes:              d.Notes,
		SuccessURL:         origin + domain.PathSuccess + "?session_id=" + domain.CheckoutSessionPlaceholder,
		CancelURL:          origin + domain.PathCancel,
	}
}
