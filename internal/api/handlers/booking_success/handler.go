package booking_success

import (
	"errors"
	"net/http"

	"github.com/m04kA/NBNE-SignsBooking/internal/api/handlers"
	"github.com/m04kA/NBNE-SignsBooking/internal/api/middleware"
	reconcilePayment "github.com/m04kA/NBNE-SignsBooking/internal/usecase/reconcile_payment"
)

const (
	msgNoBookingFound = "No booking found. Please check your email for confirmation."
	msgLoadFailed     = "Could not load booking details."
)

type Handler struct {
	useCase ReconcilePaymentUseCase
	logger  Logger
}

func NewHandler(useCase ReconcilePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /booking/success
// Сюда возвращает платёжный провайдер (?session_id=...) и форма без оплаты (?booking_id=...)
// ID бронирования берётся только из hand-off сессии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionID(r.Context())

	result, err := h.useCase.Execute(r.Context(), &reconcilePayment.Request{
		SessionID:         sessionID,
		CheckoutSessionID: r.URL.Query().Get("session_id"),
	})
	if err != nil {
		// Клиент ушёл со страницы, отвечать некому
		if r.Context().Err() != nil {
			h.logger.Info("GET /booking/success - Request cancelled before booking was loaded")
			return
		}

		switch {
		case errors.Is(err, reconcilePayment.ErrNoBookingFound):
			h.logger.Warn("GET /booking/success - No booking in session: query_booking_id=%q",
				r.URL.Query().Get("booking_id"))
			h.render(w, http.StatusOK, ErrorPageData(msgNoBookingFound))

		case errors.Is(err, reconcilePayment.ErrLoadFailed):
			h.logger.Warn("GET /booking/success - Failed to load booking: %v", err)
			h.render(w, http.StatusOK, ErrorPageData(msgLoadFailed))

		default:
			h.logger.Error("GET /booking/success - Failed to reconcile booking: %v", err)
			h.render(w, http.StatusInternalServerError, ErrorPageData(msgLoadFailed))
		}
		return
	}

	h.logger.Info("GET /booking/success - Booking loaded: booking_id=%d, status=%s, attempts=%d",
		result.Booking.BookingID, result.Booking.Status, result.Attempts)
	h.render(w, http.StatusOK, NewPageData(result.Booking))
}

func (h *Handler) render(w http.ResponseWriter, status int, data PageData) {
	if err := handlers.RenderPage(w, status, handlers.PageSuccess, data); err != nil {
		h.logger.Error("GET /booking/success - Failed to render page: %v", err)
		handlers.RespondInternalError(w)
	}
}
