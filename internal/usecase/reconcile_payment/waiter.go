package reconcile_payment

import (
	"context"
	"time"
)

// TimerWaiter реальная пауза на time.Timer
type TimerWaiter struct{}

// Wait ждёт d или отмены контекста; при отмене таймер останавливается
func (TimerWaiter) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
