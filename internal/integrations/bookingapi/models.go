package bookingapi

import "github.com/m04kA/NBNE-SignsBooking/internal/domain"

// BookingRequest тело запроса на создание бронирования
type BookingRequest struct {
	CustomerName       string `json:"customer_name"`
	CustomerEmail      string `json:"customer_email"`
	CustomerPhone      string `json:"customer_phone,omitempty"`
	ServiceName        string `json:"service_name"`
	BookingDate        string `json:"booking_date"` // "2026-10-20T10:00:00Z"
	TotalAmountPence   int64  `json:"total_amount_pence"`
	DepositAmountPence int64  `json:"deposit_amount_pence"`
	Notes              string `json:"notes,omitempty"`
	SuccessURL         string `json:"success_url,omitempty"`
	CancelURL          string `json:"cancel_url,omitempty"`
}

// BookingResponse ответ на создание бронирования и подтверждение оплаты
type BookingResponse struct {
	BookingID        int64                `json:"booking_id"`
	Status           domain.BookingStatus `json:"status"`
	CheckoutURL      string               `json:"checkout_url,omitempty"`
	PaymentSessionID string               `json:"payment_session_id,omitempty"`
	PaymentStatus    string               `json:"payment_status,omitempty"`
	Message          string               `json:"message,omitempty"`
}

// RequiresPayment returns true if the customer has to be sent to the hosted checkout
func (r *BookingResponse) RequiresPayment() bool {
	return r.CheckoutURL != ""
}

// BookingDetails снимок бронирования на момент запроса
type BookingDetails struct {
	BookingID          int64                `json:"booking_id"`
	CustomerName       string               `json:"customer_name"`
	CustomerEmail      string               `json:"customer_email"`
	CustomerPhone      string               `json:"customer_phone,omitempty"`
	ServiceName        string               `json:"service_name"`
	BookingDate        string               `json:"booking_date"`
	TotalAmountPence   int64                `json:"total_amount_pence"`
	DepositAmountPence int64                `json:"deposit_amount_pence"`
	Status             domain.BookingStatus `json:"status"`
	Notes              string               `json:"notes"`
}

// confirmPaymentRequest тело запроса confirm-payment
type confirmPaymentRequest struct {
	PaymentSessionID string `json:"payment_session_id"`
}

// ErrorResponse модель ошибки от booking API
type ErrorResponse struct {
	Error string `json:"error"`
}
