package booking_success

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/NBNE-SignsBooking/internal/api/middleware"
	"github.com/m04kA/NBNE-SignsBooking/internal/domain"
	"github.com/m04kA/NBNE-SignsBooking/internal/integrations/bookingapi"
	reconcilePayment "github.com/m04kA/NBNE-SignsBooking/internal/usecase/reconcile_payment"
	"github.com/m04kA/NBNE-SignsBooking/pkg/logger"
)

type fakeUseCase struct {
	requests []*reconcilePayment.Request
	resp     *reconcilePayment.Response
	err      error
}

func (u *fakeUseCase) Execute(_ context.Context, req *reconcilePayment.Request) (*reconcilePayment.Response, error) {
	u.requests = append(u.requests, req)
	return u.resp, u.err
}

func details(status domain.BookingStatus) *bookingapi.BookingDetails {
	return &bookingapi.BookingDetails{
		BookingID:          42,
		CustomerEmail:      "jane@example.com",
		ServiceName:        "Window Graphics",
		BookingDate:        "2026-11-03T10:00:00Z",
		TotalAmountPence:   20000,
		DepositAmountPence: 10000,
		Status:             status,
	}
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r = r.WithContext(middleware.WithSessionID(r.Context(), "sess-1"))
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Confirmed(t *testing.T) {
	uc := &fakeUseCase{resp: &reconcilePayment.Response{Booking: details(domain.StatusConfirmed), Attempts: 1}}
	w := get(NewHandler(uc, logger.NewNop()), "/booking/success?session_id=cs_test_1")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, uc.requests, 1)
	assert.Equal(t, "sess-1", uc.requests[0].SessionID)
	assert.Equal(t, "cs_test_1", uc.requests[0].CheckoutSessionID)

	body := w.Body.String()
	assert.Contains(t, body, "Booking Confirmed!")
	assert.Contains(t, body, "#42")
	assert.Contains(t, body, "Tuesday, 3 November 2026")
	assert.Contains(t, body, "£100.00")
	assert.Contains(t, body, "badge-default")
	assert.Contains(t, body, "jane@example.com")
	assert.Contains(t, body, `href="/booking/lookup?id=42"`)
}

func TestHandle_PendingShowsPaymentReceived(t *testing.T) {
	uc := &fakeUseCase{resp: &reconcilePayment.Response{Booking: details(domain.StatusPendingPayment)}}
	w := get(NewHandler(uc, logger.NewNop()), "/booking/success?session_id=cs_test_1")

	body := w.Body.String()
	assert.Contains(t, body, "Payment Received!")
	assert.Contains(t, body, "badge-secondary")
	assert.Contains(t, body, "PENDING_PAYMENT")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"no booking in session", reconcilePayment.ErrNoBookingFound, "No booking found. Please check your email for confirmation."},
		{"load failed", fmt.Errorf("%w: boom", reconcilePayment.ErrLoadFailed), "Could not load booking details."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop()), "/booking/success?booking_id=5")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.msg)
			assert.Contains(t, w.Body.String(), "Return Home")
		})
	}
}

func TestHandle_CancelledRequestWritesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := httptest.NewRequest(http.MethodGet, "/booking/success", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	uc := &fakeUseCase{err: fmt.Errorf("%w: %w", reconcilePayment.ErrLoadFailed, context.Canceled)}
	NewHandler(uc, logger.NewNop()).Handle(w, r)

	assert.Empty(t, w.Body.String())
}
