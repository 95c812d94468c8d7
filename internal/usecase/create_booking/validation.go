package create_booking

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/NBNE-SignsBooking/internal/domain"
)

var validate = validator.New()

// draftInput поля черновика, проверяемые перед обращением к API
type draftInput struct {
	CustomerName  string `validate:"required,max=255"`
	CustomerEmail string `validate:"required,email,max=255"`
	CustomerPhone string `validate:"max=50"`
	ServiceName   string `validate:"required"`
	TotalPence    int64  `validate:"gt=0"`
	DepositPence  int64  `validate:"gte=0"`
	Notes         string `validate:"max=2000"`
}

// formFields имена полей формы для ValidationError.Field
var formFields = map[string]string{
	"CustomerName":  "customer_name",
	"CustomerEmail": "customer_email",
	"CustomerPhone": "customer_phone",
	"ServiceName":   "service_name",
	"TotalPence":    "total_amount",
	"DepositPence":  "deposit_amount",
	"Notes":         "notes",
}

// validateDraft проверяет черновик, now используется для проверки даты
func validateDraft(d domain.Draft, now time.Time) error {
	in := draftInput{
		CustomerName:  strings.TrimSpace(d.CustomerName),
		CustomerEmail: strings.TrimSpace(d.CustomerEmail),
		CustomerPhone: strings.TrimSpace(d.CustomerPhone),
		ServiceName:   d.ServiceName,
		TotalPence:    d.TotalPence,
		DepositPence:  d.DepositPence,
		Notes:         d.Notes,
	}

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return toValidationError(fieldErrs[0])
		}
		return &ValidationError{Field: "form", Message: "Please check the form and try again"}
	}

	if _, ok := domain.FindService(d.ServiceName); !ok {
		return &ValidationError{Field: "service_name", Message: "Please select a service"}
	}

	if d.BookingDate.IsZero() {
		return &ValidationError{Field: "booking_date", Message: "Please choose a preferred date"}
	}

	if isDateInPast(d.BookingDate, now) {
		return &ValidationError{Field: "booking_date", Message: "Preferred date cannot be in the past"}
	}

	return nil
}

func toValidationError(fe validator.FieldError) *ValidationError {
	field := formFields[fe.Field()]

	switch fe.Field() + "." + fe.Tag() {
	case "CustomerName.required":
		return &ValidationError{Field: field, Message: "Full name is required"}
	case "CustomerEmail.required":
		return &ValidationError{Field: field, Message: "Email is required"}
	case "CustomerEmail.email":
		return &ValidationError{Field: field, Message: "Please enter a valid email address"}
	case "ServiceName.required":
		return &ValidationError{Field: field, Message: "Please select a service"}
	case "TotalPence.gt":
		return &ValidationError{Field: field, Message: "Total amount must be greater than zero"}
	case "DepositPence.gte":
		return &ValidationError{Field: field, Message: "Deposit amount cannot be negative"}
	}

	if fe.Tag() == "max" {
		return &ValidationError{Field: field, Message: "Value is too long"}
	}
	return &ValidationError{Field: field, Message: "Invalid value"}
}

// isDateInPast сравнивает только даты в UTC: сегодняшняя дата допустима
func isDateInPast(date time.Time, now time.Time) bool {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	y, m, d = date.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return day.Before(today)
}
