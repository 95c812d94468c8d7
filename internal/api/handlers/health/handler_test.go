package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/NBNE-SignsBooking/pkg/logger"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		pinger Pinger
		code   int
		body   string
	}{
		{"memory", nil, http.StatusOK, `{"status":"ok","handoff":"memory"}`},
		{"healthy store", fakePinger{}, http.StatusOK, `{"status":"ok","handoff":"memory"}`},
		{"store down", fakePinger{err: errors.New("refused")}, http.StatusServiceUnavailable, `{"status":"unavailable","handoff":"memory"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler("memory", tt.pinger, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}
