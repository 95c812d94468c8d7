package lookup_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/NBNE-SignsBooking/internal/api/handlers"
	lookupBooking "github.com/m04kA/NBNE-SignsBooking/internal/usecase/lookup_booking"
)

const msgNotFound = "Booking not found. Please check the ID and try again."

// PageData данные страницы поиска
type PageData struct {
	handlers.Page
	ID      string
	Booking *handlers.BookingView
	Error   string
}

type Handler struct {
	useCase LookupBookingUseCase
	logger  Logger
}

func NewHandler(useCase LookupBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /booking/lookup[?id={bookingId}]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawID := strings.TrimSpace(r.URL.Query().Get("id"))
	data := PageData{Page: handlers.Page{Title: "Check Booking Status"}, ID: rawID}

	if rawID == "" {
		h.render(w, http.StatusOK, data)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &lookupBooking.Request{RawID: rawID})
	if err != nil {
		switch {
		case errors.Is(err, lookupBooking.ErrEmptyID):
			h.render(w, http.StatusOK, data)

		case errors.Is(err, lookupBooking.ErrBookingNotFound):
			h.logger.Warn("GET /booking/lookup - Booking not found: id=%q, error=%v", rawID, err)
			data.Error = msgNotFound
			h.render(w, http.StatusNotFound, data)

		default:
			h.logger.Error("GET /booking/lookup - Failed to look up booking: id=%q, error=%v", rawID, err)
			data.Error = msgNotFound
			h.render(w, http.StatusNotFound, data)
		}
		return
	}

	view := handlers.NewBookingView(result.Booking)
	data.Booking = &view

	h.logger.Info("GET /booking/lookup - Booking retrieved: booking_id=%d", result.Booking.BookingID)
	h.render(w, http.StatusOK, data)
}

func (h *Handler) render(w http.ResponseWriter, status int, data PageData) {
	if err := handlers.RenderPage(w, status, handlers.PageLookup, data); err != nil {
		h.logger.Error("GET /booking/lookup - Failed to render page: %v", err)
		handlers.RespondInternalError(w)
	}
}
