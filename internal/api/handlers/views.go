package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/m04kA/NBNE-SignsBooking/internal/domain"
	"github.com/m04kA/NBNE-SignsBooking/internal/integrations/bookingapi"
	"github.com/m04kA/NBNE-SignsBooking/pkg/money"
)

// Page общие поля всех страниц
type Page struct {
	Title string
}

// ServiceOption услуга каталога для списков и select
type ServiceOption struct {
	Name     string
	Price    string // "£250.00" или "Quote required"
	Selected bool
}

// ServiceOptions каталог с отметкой выбранной услуги
func ServiceOptions(selected string) []ServiceOption {
	return lo.Map(domain.Catalogue, func(s domain.Service, _ int) ServiceOption {
		price := "Quote required"
		if !s.RequiresQuote() {
			price = money.FormatPence(s.PricePence)
		}
		return ServiceOption{Name: s.Name, Price: price, Selected: s.Name == selected}
	})
}

// BookingView бронирование в виде для шаблонов
type BookingView struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	ServiceName   string
	Date          string
	Total         string
	Deposit       string
	Remaining     string
	ShowRemaining bool
	Status        domain.BookingStatus
	Badge         domain.BadgeVariant
	Notes         string
	LookupURL     string
}

// NewBookingView собирает BookingView из ответа API
func NewBookingView(b *bookingapi.BookingDetails) BookingView {
	return BookingView{
		ID:            b.BookingID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		ServiceName:   b.ServiceName,
		Date:          DisplayDate(b.BookingDate),
		Total:         money.FormatPence(b.TotalAmountPence),
		Deposit:       money.FormatPence(b.DepositAmountPence),
		Remaining:     money.FormatPence(domain.Remaining(b.TotalAmountPence, b.DepositAmountPence)),
		ShowRemaining: b.DepositAmountPence > 0,
		Status:        b.Status,
		Badge:         b.Status.Badge(),
		Notes:         strings.TrimSpace(b.Notes),
		LookupURL:     domain.PathLookup + "?id=" + strconv.FormatInt(b.BookingID, 10),
	}
}

var bookingDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	domain.DateFormat,
}

// DisplayDate длинная дата en-GB: "Tuesday, 3 November 2026"
// Нераспознанное значение возвращается как есть
func DisplayDate(raw string) string {
	for _, layout := range bookingDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(domain.DisplayDateFormat)
		}
	}
	return raw
}
