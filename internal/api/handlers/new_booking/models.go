package new_booking

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/NBNE-SignsBooking/internal/api/handlers"
	"github.com/m04kA/NBNE-SignsBooking/internal/domain"
	"github.com/m04kA/NBNE-SignsBooking/pkg/money"
)

// Действия формы
const (
	actionPreview = "preview"
	actionSubmit  = "submit"
)

// Поля формы
const (
	fieldName      = "customer_name"
	fieldEmail     = "customer_email"
	fieldPhone     = "customer_phone"
	fieldService   = "service_name"
	fieldTotal     = "total_amount"
	fieldDeposit   = "deposit_amount"
	fieldPrevTotal = "prev_total"
	fieldDate      = "booking_date"
	fieldNotes     = "notes"
	fieldAction    = "action"
)

// DraftFromForm восстанавливает черновик из полей формы
// Ручной депозит учитывается, только если сумма не менялась с прошлого рендера (prev_total)
func DraftFromForm(v url.Values) domain.Draft {
	events := []domain.DraftEvent{
		domain.NameChanged{Value: v.Get(fieldName)},
		domain.EmailChanged{Value: v.Get(fieldEmail)},
		domain.PhoneChanged{Value: v.Get(fieldPhone)},
		domain.NotesChanged{Value: v.Get(fieldNotes)},
		domain.ServiceSelected{Name: v.Get(fieldService)},
	}

	if v.Get(fieldService) == domain.CustomServiceName {
		total, err := domain.ParsePounds(v.Get(fieldTotal))
		if err != nil {
			total = 0
		}
		events = append(events, domain.TotalEntered{Pence: total})

		prevTotal, err := strconv.ParseInt(v.Get(fieldPrevTotal), 10, 64)
		if err == nil && prevTotal == total && v.Has(fieldDeposit) {
			if deposit, err := domain.ParsePounds(v.Get(fieldDeposit)); err == nil {
				events = append(events, domain.DepositEntered{Pence: deposit})
			}
		}
	}

	if date, err := time.Parse(domain.DateFormat, strings.TrimSpace(v.Get(fieldDate))); err == nil {
		events = append(events, domain.DateChosen{Date: date})
	}

	return domain.ApplyAll(domain.NewDraft(), events...)
}

// PageData данные страницы новой брони
type PageData struct {
	handlers.Page
	Draft    domain.Draft
	Services []handlers.ServiceOption
	MinDate  string
	Error    string

	MaxNameLength  int
	MaxPhoneLength int
	MaxNotesLength int
}

// NewPageData данные для рендера формы с черновиком d
func NewPageData(d domain.Draft, today time.Time, errMsg string) PageData {
	return PageData{
		Page:           handlers.Page{Title: "New Booking"},
		Draft:          d,
		Services:       handlers.ServiceOptions(d.ServiceName),
		MinDate:        today.UTC().Format(domain.DateFormat),
		Error:          errMsg,
		MaxNameLength:  domain.MaxNameLength,
		MaxPhoneLength: domain.MaxPhoneLength,
		MaxNotesLength: domain.MaxNotesLength,
	}
}

// SubmitLabel текст кнопки отправки
func (p PageData) SubmitLabel() string {
	if p.Draft.DepositPence > 0 {
		return "Pay " + money.FormatPence(p.Draft.DepositPence) + " Deposit"
	}
	return "Confirm Booking"
}
