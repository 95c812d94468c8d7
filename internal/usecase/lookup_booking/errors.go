package lookup_booking

import "errors"

var (
	// ErrEmptyID возвращается, когда ID не введён
	ErrEmptyID = errors.New("lookup_booking: booking id is empty")

	// ErrBookingNotFound возвращается при любой неудаче поиска, включая некорректный ID
	ErrBookingNotFound = errors.New("lookup_booking: booking not found")
)
