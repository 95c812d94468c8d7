package booking_cancel

import (
	"net/http"

	"github.com/m04kA/NBNE-SignsBooking/internal/api/handlers"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /booking/cancel
// Платёжный провайдер возвращает сюда покупателя при отмене оплаты; бронирование не меняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("GET /booking/cancel - Payment cancelled by customer")

	data := handlers.Page{Title: "Payment Cancelled"}
	if err := handlers.RenderPage(w, http.StatusOK, handlers.PageCancel, data); err != nil {
		h.logger.Error("GET /booking/cancel - Failed to render page: %v", err)
		handlers.RespondInternalError(w)
	}
}
