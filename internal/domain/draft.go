package domain

import (
	"strings"
	"time"
)

// DraftPhase фаза формы нового бронирования
type DraftPhase string

const (
	PhaseEditing                   DraftPhase = "EDITING"
	PhaseSubmitting                DraftPhase = "SUBMITTING"
	PhaseRedirectingToPayment      DraftPhase = "REDIRECTING_TO_PAYMENT"
	PhaseRedirectingToConfirmation DraftPhase = "REDIRECTING_TO_CONFIRMATION"
	PhaseSubmitFailed              DraftPhase = "SUBMIT_FAILED"
)

// Draft черновик бронирования
// Значение неизменяемое: любое изменение делается через Apply и возвращает новый Draft
type Draft struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceName   string
	BookingDate   time.Time // нулевое значение - дата не выбрана
	TotalPence    int64
	DepositPence  int64
	Notes         string

	Phase DraftPhase
	Error string // сообщение последней неудачной отправки
}

// NewDraft пустой черновик в фазе EDITING
func NewDraft() Draft {
	return Draft{Phase: PhaseEditing}
}

// DraftEvent событие формы
type DraftEvent interface {
	apply(d Draft) Draft
}

// Apply применяет событие к черновику и возвращает новое состояние
func Apply(d Draft, ev DraftEvent) Draft {
	return ev.apply(d)
}

// ApplyAll последовательно применяет события
func ApplyAll(d Draft, events ...DraftEvent) Draft {
	for _, ev := range events {
		d = ev.apply(d)
	}
	return d
}

// События редактирования полей

type NameChanged struct{ Value string }
type EmailChanged struct{ Value string }
type PhoneChanged struct{ Value string }
type NotesChanged struct{ Value string }

// ServiceSelected выбор услуги: сумма берётся из каталога, депозит пересчитывается
type ServiceSelected struct{ Name string }

// TotalEntered сумма, введённая вручную (только для Custom Project)
type TotalEntered struct{ Pence int64 }

// DepositEntered депозит, изменённый вручную (только для Custom Project)
type DepositEntered struct{ Pence int64 }

// DateChosen выбор даты; время нормализуется к DefaultBookingHour UTC
type DateChosen struct{ Date time.Time }

// События отправки

type SubmitStarted struct{}
type SubmitSucceeded struct{ RequiresPayment bool }
type SubmitFailed struct{ Message string }

func (e NameChanged) apply(d Draft) Draft {
	return edit(d, func(d *Draft) { d.CustomerName = e.Value })
}

func (e EmailChanged) apply(d Draft) Draft {
	return edit(d, func(d *Draft) { d.CustomerEmail = e.Value })
}

func (e PhoneChanged) apply(d Draft) Draft {
	return edit(d, func(d *Draft) { d.CustomerPhone = e.Value })
}

func (e NotesChanged) apply(d Draft) Draft {
	return edit(d, func(d *Draft) { d.Notes = e.Value })
}

func (e ServiceSelected) apply(d Draft) Draft {
	return edit(d, func(d *Draft) {
		var total int64
		if svc, ok := FindService(e.Name); ok {
			total = svc.PricePence
		}
		d.ServiceName = e.Name
		d.TotalPence = total
		d.DepositPence = DepositFor(total)
	})
}

func (e TotalEntered) apply(d Draft) Draft {
	if !d.IsCustom() {
		return d
	}
	return edit(d, func(d *Draft) {
		d.TotalPence = e.Pence
		d.DepositPence = DepositFor(e.Pence)
	})
}

func (e DepositEntered) apply(d Draft) Draft {
	if !d.IsCustom() {
		return d
	}
	return edit(d, func(d *Draft) { d.DepositPence = e.Pence })
}

func (e DateChosen) apply(d Draft) Draft {
	return edit(d, func(d *Draft) {
		if e.Date.IsZero() {
			d.BookingDate = time.Time{}
			return
		}
		y, m, day := e.Date.Date()
		d.BookingDate = time.Date(y, m, day, DefaultBookingHour, 0, 0, 0, time.UTC)
	})
}

func (SubmitStarted) apply(d Draft) Draft {
	if !d.CanSubmit() {
		return d
	}
	d.Phase = PhaseSubmitting
	d.Error = ""
	return d
}

func (e SubmitSucceeded) apply(d Draft) Draft {
	if d.Phase != PhaseSubmitting {
		return d
	}
	if e.RequiresPayment {
		d.Phase = PhaseRedirectingToPayment
	} else {
		d.Phase = PhaseRedirectingToConfirmation
	}
	return d
}

func (e SubmitFailed) apply(d Draft) Draft {
	if d.Phase != PhaseSubmitting {
		return d
	}
	d.Phase = PhaseSubmitFailed
	d.Error = e.Message
	return d
}

// edit применяет изменение поля, если форма доступна для редактирования
// Ошибка предыдущей отправки сбрасывается, фаза возвращается в EDITING
func edit(d Draft, fn func(d *Draft)) Draft {
	if !d.IsEditable() {
		return d
	}
	fn(&d)
	d.Phase = PhaseEditing
	d.Error = ""
	return d
}

// IsEditable returns true if fields may still change
func (d Draft) IsEditable() bool {
	return d.Phase == PhaseEditing || d.Phase == PhaseSubmitFailed
}

// IsCustom returns true if the selected service is priced by hand
func (d Draft) IsCustom() bool {
	return d.ServiceName == CustomServiceName
}

// HasRequiredFields returns true if name, email, service and date are filled in
func (d Draft) HasRequiredFields() bool {
	return strings.TrimSpace(d.CustomerName) != "" &&
		strings.TrimSpace(d.CustomerEmail) != "" &&
		d.ServiceName != "" &&
		!d.BookingDate.IsZero()
}

// CanSubmit returns true if the submit control is enabled
func (d Draft) CanSubmit() bool {
	return d.IsEditable() && d.HasRequiredFields() && d.TotalPence > 0
}

// RemainingPence остаток к оплате после депозита
func (d Draft) RemainingPence() int64 {
	return Remaining(d.TotalPence, d.DepositPence)
}

// ShowsRemaining остаток показывается только при ненулевом депозите
func (d Draft) ShowsRemaining() bool {
	return d.DepositPence > 0
}

// DateInput значение для поля <input type="date">
func (d Draft) DateInput() string {
	if d.BookingDate.IsZero() {
		return ""
	}
	return d.BookingDate.Format(DateFormat)
}

// BookingDateISO дата в формате ISO для booking API: 2026-10-20T10:00:00Z
func (d Draft) BookingDateISO() string {
	if d.BookingDate.IsZero() {
		return ""
	}
	return d.BookingDate.UTC().Format(time.RFC3339)
}
