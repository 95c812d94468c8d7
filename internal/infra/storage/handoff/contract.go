package handoff

import (
	"context"
	"database/sql"
)

// DBExecutor интерфейс подключения к БД (*sql.DB)
type DBExecutor interface {
	PingContext(ctx context.Context) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
