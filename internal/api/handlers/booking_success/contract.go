package booking_success

import (
	"context"

	reconcilePayment "github.com/m04kA/NBNE-SignsBooking/internal/usecase/reconcile_payment"
)

type ReconcilePaymentUseCase interface {
	Execute(ctx context.Context, req *reconcilePayment.Request) (*reconcilePayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
