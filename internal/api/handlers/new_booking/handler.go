package new_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/NBNE-SignsBooking/internal/api/handlers"
	"github.com/m04kA/NBNE-SignsBooking/internal/api/middleware"
	"github.com/m04kA/NBNE-SignsBooking/internal/domain"
	"github.com/m04kA/NBNE-SignsBooking/internal/integrations/bookingapi"
	createBooking "github.com/m04kA/NBNE-SignsBooking/internal/usecase/create_booking"
)

const (
	msgInvalidForm        = "Could not read the form. Please try again."
	msgSomethingWentWrong = "Something went wrong"
)

type Handler struct {
	useCase      CreateBookingUseCase
	publicOrigin string
	now          func() time.Time
	logger       Logger
}

func NewHandler(useCase CreateBookingUseCase, publicOrigin string, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		publicOrigin: publicOrigin,
		now:          time.Now,
		logger:       logger,
	}
}

// HandleForm GET /booking/new
// ?service_name= предвыбирает услугу каталога
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	draft := domain.NewDraft()
	if name := r.URL.Query().Get(fieldService); name != "" {
		if _, ok := domain.FindService(name); ok {
			draft = domain.Apply(draft, domain.ServiceSelected{Name: name})
		}
	}

	h.render(w, http.StatusOK, draft, "")
}

// HandleSubmit POST /booking/new
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("POST /booking/new - Invalid form: %v", err)
		h.render(w, http.StatusBadRequest, domain.NewDraft(), msgInvalidForm)
		return
	}

	draft := DraftFromForm(r.PostForm)

	// Пересчёт цены без отправки
	if r.PostForm.Get(fieldAction) != actionSubmit {
		h.render(w, http.StatusOK, draft, "")
		return
	}

	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		h.logger.Error("POST /booking/new - Missing session ID")
		h.render(w, http.StatusInternalServerError, draft, msgSomethingWentWrong)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createBooking.Request{
		SessionID: sessionID,
		Origin:    handlers.RequestOrigin(r, h.publicOrigin),
		Draft:     draft,
	})
	if err != nil {
		var (
			validationErr *createBooking.ValidationError
			apiErr        *bookingapi.RequestFailedError
		)

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /booking/new - Validation failed: field=%s", validationErr.Field)
			h.render(w, http.StatusUnprocessableEntity, draft, validationErr.Message)

		case errors.As(err, &apiErr):
			h.logger.Warn("POST /booking/new - Booking API rejected booking: status=%d", apiErr.StatusCode)
			h.render(w, http.StatusBadGateway, draft, apiErr.Message)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /booking/new - Invalid draft: %v", err)
			h.render(w, http.StatusUnprocessableEntity, draft, msgSomethingWentWrong)

		default:
			h.logger.Error("POST /booking/new - Failed to create booking: %v", err)
			h.render(w, http.StatusBadGateway, draft, msgSomethingWentWrong)
		}
		return
	}

	h.logger.Info("POST /booking/new - Booking created: booking_id=%d, requires_payment=%t",
		result.BookingID, result.RequiresPayment)
	handlers.RedirectSeeOther(w, r, result.RedirectURL)
}

func (h *Handler) render(w http.ResponseWriter, status int, draft domain.Draft, errMsg string) {
	data := NewPageData(draft, h.now(), errMsg)
	if err := handlers.RenderPage(w, status, handlers.PageNewBooking, data); err != nil {
		h.logger.Error("/booking/new - Failed to render page: %v", err)
		handlers.RespondInternalError(w)
	}
}
