package reconcile_payment

import "errors"

var (
	// ErrNoBookingFound возвращается, когда в сессии нет сохранённого ID бронирования
	ErrNoBookingFound = errors.New("reconcile_payment: no booking found in session")

	// ErrLoadFailed возвращается, когда статус бронирования получить не удалось
	ErrLoadFailed = errors.New("reconcile_payment: could not load booking details")
)
