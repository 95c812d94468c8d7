package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/NBNE-SignsBooking/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger проверка доступности хранилища hand-off (nil для хранилища в памяти)
type Pinger interface {
	Ping(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// Response модель ответа /healthz
type Response struct {
	Status  string `json:"status"`
	Handoff string `json:"handoff"`
}

type Handler struct {
	backend string
	pinger  Pinger
	logger  Logger
}

func NewHandler(backend string, pinger Pinger, logger Logger) *Handler {
	return &Handler{backend: backend, pinger: pinger, logger: logger}
}

// Handle GET /healthz
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.pinger.Ping(ctx); err != nil {
			h.logger.Warn("GET /healthz - Handoff store %s unavailable: %v", h.backend, err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, Response{Status: "unavailable", Handoff: h.backend})
			return
		}
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Status: "ok", Handoff: h.backend})
}
