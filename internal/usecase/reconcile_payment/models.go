package reconcile_payment

import (
	"time"

	"github.com/m04kA/NBNE-SignsBooking/internal/integrations/bookingapi"
)

// Options настройки сверки
type Options struct {
	Delay          time.Duration // Пауза перед каждым запросом статуса
	Attempts       int           // Максимум запросов статуса (1 - без опроса)
	ConfirmPayment bool          // Вызывать confirm-payment перед первым запросом статуса
}

// Request модель запроса на сверку после возврата с оплаты
type Request struct {
	SessionID         string // ID браузерной сессии (ключ hand-off)
	CheckoutSessionID string // session_id из URL возврата, только для логов
}

// Response модель ответа со статусом бронирования
type Response struct {
	Booking  *bookingapi.BookingDetails
	Attempts int // Сколько запросов статуса было сделано
}
