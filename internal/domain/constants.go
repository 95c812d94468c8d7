package domain

// Ключи session hand-off между отправкой формы и страницей успеха
const (
	HandoffKeyBookingID        = "nbne_booking_id"
	HandoffKeyPaymentSessionID = "nbne_payment_session_id"
)

// CheckoutSessionPlaceholder подставляется платёжным провайдером вместо ID своей сессии
const CheckoutSessionPlaceholder = "{CHECKOUT_SESSION_ID}"

// Пути страниц сайта
const (
	PathHome       = "/"
	PathNewBooking = "/booking/new"
	PathSuccess    = "/booking/success"
	PathCancel     = "/booking/cancel"
	PathLookup     = "/booking/lookup"
	PathHealth     = "/healthz"
)

// DefaultBookingHour бронирование на дату нормализуется к 10:00 UTC
const DefaultBookingHour = 10

// Time format constants
const (
	DateFormat        = "2006-01-02"             // YYYY-MM-DD, значение поля даты в форме
	DisplayDateFormat = "Monday, 2 January 2006" // en-GB, длинный формат
)

// Business validation constants
const (
	MaxNameLength  = 255
	MaxPhoneLength = 50
	MaxNotesLength = 2000
)
