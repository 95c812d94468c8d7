package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	opCreateBooking  = "create_booking"
	opGetBooking     = "get_booking"
	opConfirmPayment = "confirm_payment"

	// maxBodySize ограничение на размер читаемого ответа
	maxBodySize = 1 << 20
)

// Client клиент для работы с booking API
// Каждый вызов выполняется ровно один раз, без повторов
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    MetricsRecorder
	log        Logger
}

// NewClient создает новый экземпляр клиента booking API
// metrics может быть nil
func NewClient(baseURL string, timeout time.Duration, metrics MetricsRecorder, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		log:     log,
	}
}

// CreateBooking создает бронирование: POST /api/bookings/
func (c *Client) CreateBooking(ctx context.Context, req *BookingRequest) (*BookingResponse, error) {
	var resp BookingResponse
	err := c.do(ctx, call{
		operation: opCreateBooking,
		method:    http.MethodPost,
		path:      "/api/bookings/",
		body:      req,
		fallback:  fallbackCreateBooking,
		kind:      ErrBookingCreation,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.log.Info("Booking created: booking_id=%d, status=%s, requires_payment=%t",
		resp.BookingID, resp.Status, resp.RequiresPayment())
	return &resp, nil
}

// GetBooking получает бронирование по ID: GET /api/bookings/{id}/
// Проверка ID на положительность остаётся на вызывающей стороне
func (c *Client) GetBooking(ctx context.Context, bookingID int64) (*BookingDetails, error) {
	var details BookingDetails
	err := c.do(ctx, call{
		operation: opGetBooking,
		method:    http.MethodGet,
		path:      fmt.Sprintf("/api/bookings/%d/", bookingID),
		fallback:  fallbackGetBooking,
		kind:      ErrBookingLookup,
	}, &details)
	if err != nil {
		return nil, err
	}

	return &details, nil
}

// ConfirmBookingPayment сообщает бэкенду о завершении платёжной сессии:
// POST /api/bookings/{id}/confirm-payment/
func (c *Client) ConfirmBookingPayment(ctx context.Context, bookingID int64, paymentSessionID string) (*BookingResponse, error) {
	var resp BookingResponse
	err := c.do(ctx, call{
		operation: opConfirmPayment,
		method:    http.MethodPost,
		path:      fmt.Sprintf("/api/bookings/%d/confirm-payment/", bookingID),
		body:      confirmPaymentRequest{PaymentSessionID: paymentSessionID},
		fallback:  fallbackConfirmPayment,
		kind:      ErrPaymentConfirmation,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.log.Info("Payment confirmation sent: booking_id=%d, status=%s", resp.BookingID, resp.Status)
	return &resp, nil
}

// call описание одного запроса к API
type call struct {
	operation string
	method    string
	path      string
	body      interface{}
	fallback  string
	kind      error
}

func (c *Client) do(ctx context.Context, cl call, out interface{}) error {
	url := c.baseURL + cl.path

	var reqBody io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("%w: %w: failed to encode request: %v", cl.kind, ErrInternal, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, url, reqBody)
	if err != nil {
		return fmt.Errorf("%w: %w: failed to create request: %v", cl.kind, ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(cl.operation, 0, started)
		c.log.Error("Booking API %s %s failed: %v", cl.method, cl.path, err)
		return fmt.Errorf("%w: %w: failed to execute request: %v", cl.kind, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.observe(cl.operation, resp.StatusCode, started)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: %w: failed to read response: %v", cl.kind, ErrUnavailable, err)
	}

	// Любой статус вне [200, 300) - ошибка с сообщением из тела или fallback
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		failure := &RequestFailedError{
			Operation:  cl.operation,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, cl.fallback),
			kind:       cl.kind,
		}
		c.log.Warn("Booking API %s %s returned status=%d: %s", cl.method, cl.path, resp.StatusCode, failure.Message)
		return failure
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.log.Error("Booking API %s %s returned malformed body: %v", cl.method, cl.path, err)
		return fmt.Errorf("%w: %w: failed to decode response: %v", cl.kind, ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) observe(operation string, status int, started time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveBookingAPI(operation, status, time.Since(started))
}

// errorMessage извлекает строку error из JSON тела
// Некорректное тело, пустая строка или значение не-строка дают fallback
func errorMessage(body []byte, fallback string) string {
	var parsed ErrorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fallback
	}
	if parsed.Error == "" {
		return fallback
	}
	return parsed.Error
}
