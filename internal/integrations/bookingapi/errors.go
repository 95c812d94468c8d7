package bookingapi

import (
	"errors"
	"net/http"
)

var (
	// ErrBookingCreation возвращается при неуспешном создании бронирования
	ErrBookingCreation = errors.New("bookingapi: booking creation failed")

	// ErrBookingLookup возвращается при неуспешном получении бронирования
	ErrBookingLookup = errors.New("bookingapi: booking lookup failed")

	// ErrPaymentConfirmation возвращается при неуспешном подтверждении оплаты
	ErrPaymentConfirmation = errors.New("bookingapi: payment confirmation failed")

	// ErrNotFound возвращается, когда API ответил 404
	ErrNotFound = errors.New("bookingapi: not found")

	// ErrUnavailable возвращается, когда запрос не удалось выполнить (сеть, таймаут)
	ErrUnavailable = errors.New("bookingapi: service unavailable")

	// ErrInvalidResponse возвращается, когда успешный ответ не удалось разобрать
	ErrInvalidResponse = errors.New("bookingapi: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingapi: internal error")
)

// Сообщения по умолчанию, если тело ответа не содержит поля error
const (
	fallbackCreateBooking  = "Failed to create booking"
	fallbackGetBooking     = "Failed to fetch booking"
	fallbackConfirmPayment = "Failed to confirm payment"
)

// RequestFailedError ответ API со статусом вне диапазона 2xx
// Error() возвращает текст для пользователя: поле error из тела или fallback операции
type RequestFailedError struct {
	Operation  string
	StatusCode int
	Message    string

	kind error
}

func (e *RequestFailedError) Error() string {
	return e.Message
}

// Unwrap позволяет errors.Is сопоставлять ошибку с sentinel операции и ErrNotFound
func (e *RequestFailedError) Unwrap() []error {
	errs := []error{e.kind}
	if e.StatusCode == http.StatusNotFound {
		errs = append(errs, ErrNotFound)
	}
	return errs
}

// IsNotFound returns true if the API answered 404
func (e *RequestFailedError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
