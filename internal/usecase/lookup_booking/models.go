package lookup_booking

import "github.com/m04kA/NBNE-SignsBooking/internal/integrations/bookingapi"

// Request модель запроса на поиск бронирования
type Request struct {
	RawID string // ID в том виде, как его ввёл пользователь
}

// Response модель ответа с найденным бронированием
type Response struct {
	Booking *bookingapi.BookingDetails
}
