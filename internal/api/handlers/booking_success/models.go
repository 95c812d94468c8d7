package booking_success

import (
	"github.com/m04kA/NBNE-SignsBooking/internal/api/handlers"
	"github.com/m04kA/NBNE-SignsBooking/internal/domain"
	"github.com/m04kA/NBNE-SignsBooking/internal/integrations/bookingapi"
)

const (
	headingConfirmed = "Booking Confirmed!"
	headingReceived  = "Payment Received!"
)

// PageData данные страницы успешной оплаты
type PageData struct {
	handlers.Page
	Heading string
	Badge   domain.BadgeVariant
	Booking *handlers.BookingView
	Error   string
}

// NewPageData страница с данными бронирования
// Бейдж здесь двухцветный: CONFIRMED или всё остальное
func NewPageData(b *bookingapi.BookingDetails) PageData {
	view := handlers.NewBookingView(b)

	data := PageData{
		Page:    handlers.Page{Title: headingReceived},
		Heading: headingReceived,
		Badge:   domain.BadgeSecondary,
		Booking: &view,
	}
	if b.Status.IsConfirmed() {
		data.Title = headingConfirmed
		data.Heading = headingConfirmed
		data.Badge = domain.BadgeDefault
	}
	return data
}

// ErrorPageData страница с сообщением об ошибке
func ErrorPageData(msg string) PageData {
	return PageData{Page: handlers.Page{Title: "Booking"}, Error: msg}
}
