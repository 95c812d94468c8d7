package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/NBNE-SignsBooking/internal/domain"
	"github.com/m04kA/NBNE-SignsBooking/internal/infra/storage/handoff"
	"github.com/m04kA/NBNE-SignsBooking/internal/integrations/bookingapi"
	"github.com/m04kA/NBNE-SignsBooking/pkg/logger"
)

const (
	testSession = "8f14e45f-ceea-467f-a0e6-1c3b0f0c1a11"
	testOrigin  = "https://book.nbnesigns.co.uk"
)

type fakeClient struct {
	mu       sync.Mutex
	requests []*bookingapi.BookingRequest
	resp     *bookingapi.BookingResponse
	err      error

	// block, если не nil, задерживает ответ до закрытия канала
	block   chan struct{}
	entered chan struct{}
	// ctxErr состояние контекста вызова после разблокировки
	ctxErr error
}

func (c *fakeClient) CreateBooking(ctx context.Context, req *bookingapi.BookingRequest) (*bookingapi.BookingResponse, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	block, entered := c.block, c.entered
	c.mu.Unlock()

	if block != nil {
		entered <- struct{}{}
		<-block
	}

	c.mu.Lock()
	c.ctxErr = ctx.Err()
	c.mu.Unlock()
	return c.resp, c.err
}

func (c *fakeClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type failingStore struct{}

func (failingStore) Put(context.Context, string, string, string) error { return errors.New("redis down") }
func (failingStore) Clear(context.Context, string, string) error       { return errors.New("redis down") }

func newUseCase(client BookingClient, store HandoffStore) *UseCase {
	uc := NewUseCase(client, store, logger.NewNop())
	uc.timeProvider = fixedTime{t: time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)}
	return uc
}

func validDraft() domain.Draft {
	return domain.ApplyAll(domain.NewDraft(),
		domain.NameChanged{Value: "John Doe"},
		domain.EmailChanged{Value: "john@example.com"},
		domain.ServiceSelected{Name: "Vehicle Graphics"},
		domain.DateChosen{Date: time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)},
	)
}

func TestExecute_PaymentPath(t *testing.T) {
	ctx := context.Background()
	store := handoff.NewMemoryStore(time.Hour)
	client := &fakeClient{resp: &bookingapi.BookingResponse{
		BookingID:        17,
		Status:           domain.StatusPendingPayment,
		CheckoutURL:      "https://checkout.stripe.com/c/pay/cs_test_1",
		PaymentSessionID: "ps-1",
	}}

	resp, err := newUseCase(client, store).Execute(ctx, &Request{
		SessionID: testSession,
		Origin:    testOrigin + "/",
		Draft:     validDraft(),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", resp.RedirectURL)
	assert.True(t, resp.RequiresPayment)
	assert.Equal(t, domain.PhaseRedirectingToPayment, resp.Draft.Phase)

	require.Len(t, client.requests, 1)
	sent := client.requests[0]
	assert.Equal(t, "Vehicle Graphics", sent.ServiceName)
	assert.Equal(t, int64(25000), sent.TotalAmountPence)
	assert.Equal(t, int64(12500), sent.DepositAmountPence)
	assert.Equal(t, "2026-11-03T10:00:00Z", sent.BookingDate)
	assert.Equal(t, testOrigin+"/booking/success?session_id={CHECKOUT_SESSION_ID}", sent.SuccessURL)
	assert.Equal(t, testOrigin+"/booking/cancel", sent.CancelURL)

	id, err := store.Get(ctx, testSession, domain.HandoffKeyBookingID)
	require.NoError(t, err)
	assert.Equal(t, "17", id)

	ps, err := store.Get(ctx, testSession, domain.HandoffKeyPaymentSessionID)
	require.NoError(t, err)
	assert.Equal(t, "ps-1", ps)
}

func TestExecute_NoPaymentPath(t *testing.T) {
	ctx := context.Background()
	store := handoff.NewMemoryStore(time.Hour)
	require.NoError(t, store.Put(ctx, testSession, domain.HandoffKeyPaymentSessionID, "ps-old"))

	client := &fakeClient{resp: &bookingapi.BookingResponse{
		BookingID: 5,
		Status:    domain.StatusConfirmed,
		Message:   "Booking confirmed without payment",
	}}

	resp, err := newUseCase(client, store).Execute(ctx, &Request{
		SessionID: testSession,
		Origin:    testOrigin,
		Draft:     validDraft(),
	})
	require.NoError(t, err)

	assert.Equal(t, testOrigin+"/booking/success?booking_id=5", resp.RedirectURL)
	assert.False(t, resp.RequiresPayment)
	assert.Equal(t, domain.PhaseRedirectingToConfirmation, resp.Draft.Phase)
	assert.Equal(t, "Booking confirmed without payment", resp.Message)

	id, err := store.Get(ctx, testSession, domain.HandoffKeyBookingID)
	require.NoError(t, err)
	assert.Equal(t, "5", id)

	_, err = store.Get(ctx, testSession, domain.HandoffKeyPaymentSessionID)
	assert.ErrorIs(t, err, handoff.ErrKeyNotFound)
}

func TestExecute_ValidationBeforeNetwork(t *testing.T) {
	tests := []struct {
		name  string
		draft domain.Draft
		field string
	}{
		{"missing name", domain.Apply(validDraft(), domain.NameChanged{Value: " "}), "customer_name"},
		{"missing email", domain.Apply(validDraft(), domain.EmailChanged{Value: ""}), "customer_email"},
		{"bad email", domain.Apply(validDraft(), domain.EmailChanged{Value: "john@"}), "customer_email"},
		{"no service", domain.Apply(validDraft(), domain.ServiceSelected{Name: ""}), "service_name"},
		{"unknown service", domain.Apply(validDraft(), domain.ServiceSelected{Name: "Neon Sign"}), "total_amount"},
		{"custom without total", domain.Apply(validDraft(), domain.ServiceSelected{Name: domain.CustomServiceName}), "total_amount"},
		{"negative deposit", domain.ApplyAll(validDraft(),
			domain.ServiceSelected{Name: domain.CustomServiceName},
			domain.TotalEntered{Pence: 1000},
			domain.DepositEntered{Pence: -1},
		), "deposit_amount"},
		{"no date", domain.Apply(validDraft(), domain.DateChosen{}), "booking_date"},
		{"date in past", domain.Apply(validDraft(), domain.DateChosen{Date: time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)}), "booking_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			_, err := newUseCase(client, handoff.NewMemoryStore(time.Hour)).Execute(context.Background(), &Request{
				SessionID: testSession,
				Origin:    testOrigin,
				Draft:     tt.draft,
			})

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
			assert.NotEmpty(t, vErr.Message)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, client.calls())
		})
	}
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	client := &fakeClient{resp: &bookingapi.BookingResponse{BookingID: 1, Status: domain.StatusConfirmed}}
	draft := domain.Apply(validDraft(), domain.DateChosen{Date: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)})

	_, err := newUseCase(client, handoff.NewMemoryStore(time.Hour)).Execute(context.Background(), &Request{
		SessionID: testSession,
		Origin:    testOrigin,
		Draft:     draft,
	})
	assert.NoError(t, err)
}

func TestExecute_CustomDepositOverride(t *testing.T) {
	client := &fakeClient{resp: &bookingapi.BookingResponse{BookingID: 9, Status: domain.StatusConfirmed}}
	draft := domain.ApplyAll(validDraft(),
		domain.ServiceSelected{Name: domain.CustomServiceName},
		domain.TotalEntered{Pence: 80000},
		domain.DepositEntered{Pence: 0},
	)

	_, err := newUseCase(client, handoff.NewMemoryStore(time.Hour)).Execute(context.Background(), &Request{
		SessionID: testSession,
		Origin:    testOrigin,
		Draft:     draft,
	})
	require.NoError(t, err)
	require.Len(t, client.requests, 1)
	assert.Equal(t, int64(80000), client.requests[0].TotalAmountPence)
	assert.Zero(t, client.requests[0].DepositAmountPence)
}

func TestExecute_APIFailure(t *testing.T) {
	ctx := context.Background()
	store := handoff.NewMemoryStore(time.Hour)
	apiErr := &bookingapi.RequestFailedError{Operation: "create_booking", StatusCode: 400, Message: "Invalid service"}
	client := &fakeClient{err: apiErr}

	resp, err := newUseCase(client, store).Execute(ctx, &Request{
		SessionID: testSession,
		Origin:    testOrigin,
		Draft:     validDraft(),
	})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrBookingFailed)

	var failed *bookingapi.RequestFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, "Invalid service", failed.Message)

	_, err = store.Get(ctx, testSession, domain.HandoffKeyBookingID)
	assert.ErrorIs(t, err, handoff.ErrKeyNotFound)
}

func TestExecute_StoreFailureStillRedirects(t *testing.T) {
	client := &fakeClient{resp: &bookingapi.BookingResponse{
		BookingID:        3,
		Status:           domain.StatusPendingPayment,
		CheckoutURL:      "https://checkout.stripe.com/c/pay/cs_test_3",
		PaymentSessionID: "ps-3",
	}}

	resp, err := newUseCase(client, failingStore{}).Execute(context.Background(), &Request{
		SessionID: testSession,
		Origin:    testOrigin,
		Draft:     validDraft(),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_3", resp.RedirectURL)
}

func TestExecute_ConcurrentSubmitJoinsInFlight(t *testing.T) {
	client := &fakeClient{
		resp: &bookingapi.BookingResponse{
			BookingID:        11,
			Status:           domain.StatusPendingPayment,
			CheckoutURL:      "https://checkout.stripe.com/c/pay/cs_test_11",
			PaymentSessionID: "ps-11",
		},
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	uc := newUseCase(client, handoff.NewMemoryStore(time.Hour))
	req := &Request{SessionID: testSession, Origin: testOrigin, Draft: validDraft()}

	type result struct {
		resp *Response
		err  error
	}
	first := make(chan result, 1)
	second := make(chan result, 1)

	go func() {
		resp, err := uc.Execute(context.Background(), req)
		first <- result{resp, err}
	}()
	<-client.entered

	go func() {
		resp, err := uc.Execute(context.Background(), req)
		second <- result{resp, err}
	}()
	// второй вызов должен успеть присоединиться к первому
	time.Sleep(50 * time.Millisecond)
	close(client.block)

	r1, r2 := <-first, <-second
	require.NoError(t, r1.err)
	require.NoError(t, r2.err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_11", r1.resp.RedirectURL)
	assert.Equal(t, r1.resp.RedirectURL, r2.resp.RedirectURL)
	assert.Equal(t, 1, client.calls())
}

func TestExecute_OtherSessionNotJoined(t *testing.T) {
	client := &fakeClient{
		resp:    &bookingapi.BookingResponse{BookingID: 12, Status: domain.StatusConfirmed},
		block:   make(chan struct{}),
		entered: make(chan struct{}, 2),
	}
	uc := newUseCase(client, handoff.NewMemoryStore(time.Hour))
	req := &Request{SessionID: testSession, Origin: testOrigin, Draft: validDraft()}
	other := *req
	other.SessionID = "another-tab"

	done := make(chan error, 2)
	for _, r := range []*Request{req, &other} {
		go func(r *Request) {
			_, err := uc.Execute(context.Background(), r)
			done <- err
		}(r)
	}
	<-client.entered
	<-client.entered
	close(client.block)

	require.NoError(t, <-done)
	require.NoError(t, <-done)
	assert.Equal(t, 2, client.calls())
}

func TestExecute_AbandonedRequestStillCompletes(t *testing.T) {
	client := &fakeClient{
		resp:    &bookingapi.BookingResponse{BookingID: 13, Status: domain.StatusConfirmed},
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	store := handoff.NewMemoryStore(time.Hour)
	uc := newUseCase(client, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := uc.Execute(ctx, &Request{SessionID: testSession, Origin: testOrigin, Draft: validDraft()})
		done <- err
	}()
	<-client.entered
	cancel()
	close(client.block)

	require.NoError(t, <-done)
	assert.NoError(t, client.ctxErr)

	id, err := store.Get(context.Background(), testSession, domain.HandoffKeyBookingID)
	require.NoError(t, err)
	assert.Equal(t, "13", id)
}

func TestExecute_NotEditablePhase(t *testing.T) {
	client := &fakeClient{}
	draft := domain.Apply(validDraft(), domain.SubmitStarted{})

	_, err := newUseCase(client, handoff.NewMemoryStore(time.Hour)).Execute(context.Background(), &Request{
		SessionID: testSession,
		Origin:    testOrigin,
		Draft:     draft,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, client.calls())
}
