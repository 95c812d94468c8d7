package home

import (
	"net/http"

	"github.com/m04kA/NBNE-SignsBooking/internal/api/handlers"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// PageData данные главной страницы
type PageData struct {
	handlers.Page
	Services []handlers.ServiceOption
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	data := PageData{Services: handlers.ServiceOptions("")}

	if err := handlers.RenderPage(w, http.StatusOK, handlers.PageHome, data); err != nil {
		h.logger.Error("GET / - Failed to render page: %v", err)
		handlers.RespondInternalError(w)
	}
}
