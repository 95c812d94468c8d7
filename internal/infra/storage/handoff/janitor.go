package handoff

import (
	"context"
	"time"
)

// Purger удаляет истекшие записи
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RunJanitor периодически чистит истекшие записи до отмены контекста
func RunJanitor(ctx context.Context, p Purger, interval time.Duration, log Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Error("Failed to purge expired handoff entries: %v", err)
				continue
			}
			if n > 0 {
				log.Info("Purged %d expired handoff entries", n)
			}
		}
	}
}
