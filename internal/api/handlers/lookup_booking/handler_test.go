package lookup_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/NBNE-SignsBooking/internal/domain"
	"github.com/m04kA/NBNE-SignsBooking/internal/integrations/bookingapi"
	lookupBooking "github.com/m04kA/NBNE-SignsBooking/internal/usecase/lookup_booking"
	"github.com/m04kA/NBNE-SignsBooking/pkg/logger"
)

type fakeUseCase struct {
	calls int
	resp  *lookupBooking.Response
	err   error
}

func (u *fakeUseCase) Execute(context.Context, *lookupBooking.Request) (*lookupBooking.Response, error) {
	u.calls++
	return u.resp, u.err
}

func get(uc LookupBookingUseCase, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_FormOnly(t *testing.T) {
	uc := &fakeUseCase{}
	w := get(uc, "/booking/lookup")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Check Booking Status")
	assert.Zero(t, uc.calls)
}

func TestHandle_Found(t *testing.T) {
	uc := &fakeUseCase{resp: &lookupBooking.Response{Booking: &bookingapi.BookingDetails{
		BookingID:          7,
		CustomerName:       "Jane",
		CustomerEmail:      "jane@example.com",
		ServiceName:        domain.CustomServiceName,
		BookingDate:        "2026-11-03T10:00:00Z",
		TotalAmountPence:   30001,
		DepositAmountPence: 0,
		Status:             domain.StatusCompleted,
		Notes:              "Laser-cut letters",
	}}}
	w := get(uc, "/booking/lookup?id=7")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Booking #7")
	assert.Contains(t, body, "badge-outline")
	assert.Contains(t, body, "£300.01")
	assert.Contains(t, body, "Laser-cut letters")
	assert.NotContains(t, body, "Remaining")
	assert.Contains(t, body, `value="7"`)
}

func TestHandle_NotFound(t *testing.T) {
	uc := &fakeUseCase{err: fmt.Errorf("%w: %w", lookupBooking.ErrBookingNotFound, bookingapi.ErrNotFound)}
	w := get(uc, "/booking/lookup?id=999")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Booking not found. Please check the ID and try again.")
	assert.NotContains(t, w.Body.String(), "Booking #")
}
