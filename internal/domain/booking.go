package domain

// BookingStatus статус бронирования на стороне бэкенда
// Множество открытое: неизвестные значения отображаются как статус по умолчанию
type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	StatusConfirmed      BookingStatus = "CONFIRMED"
	StatusCancelled      BookingStatus = "CANCELLED"
	StatusCompleted      BookingStatus = "COMPLETED"
)

// BadgeVariant варианты бейджа статуса на страницах
type BadgeVariant string

const (
	BadgeDefault     BadgeVariant = "default"
	BadgeSecondary   BadgeVariant = "secondary"
	BadgeDestructive BadgeVariant = "destructive"
	BadgeOutline     BadgeVariant = "outline"
)

// IsConfirmed returns true if the booking is confirmed
func (s BookingStatus) IsConfirmed() bool {
	return s == StatusConfirmed
}

// IsPendingPayment returns true if the backend is still waiting for the deposit
func (s BookingStatus) IsPendingPayment() bool {
	return s == StatusPendingPayment
}

// Badge returns the badge variant used to render the status
func (s BookingStatus) Badge() BadgeVariant {
	switch s {
	case StatusConfirmed:
		return BadgeDefault
	case StatusPendingPayment:
		return BadgeSecondary
	case StatusCancelled:
		return BadgeDestructive
	default:
		return BadgeOutline
	}
}
