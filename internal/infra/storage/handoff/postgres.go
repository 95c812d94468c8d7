package handoff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/NBNE-SignsBooking/pkg/psqlbuilder"
)

const tableName = "handoff_entries"

// PostgresStore хранилище hand-off в PostgreSQL (таблица handoff_entries)
type PostgresStore struct {
	db  DBExecutor
	ttl time.Duration
	now func() time.Time
}

// NewPostgresStore создает хранилище поверх подключения к БД
func NewPostgresStore(db DBExecutor, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, now: time.Now}
}

// Put сохраняет значение; повторная запись перезаписывает значение и продлевает срок жизни
func (s *PostgresStore) Put(ctx context.Context, sessionID, key, value string) error {
	if sessionID == "" {
		return ErrEmptySession
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("session_id", "key", "value", "expires_at").
		Values(sessionID, key, value, s.now().Add(s.ttl).UTC()).
		Suffix("ON CONFLICT (session_id, key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Put - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Put - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	if sessionID == "" {
		return "", ErrEmptySession
	}

	query, args, err := psqlbuilder.Select("value").
		From(tableName).
		Where(squirrel.Eq{"session_id": sessionID, "key": key}).
		Where(squirrel.Gt{"expires_at": s.now().UTC()}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Get - scan value: %v", ErrScanRow, err)
	}
	return value, nil
}

func (s *PostgresStore) Clear(ctx context.Context, sessionID, key string) error {
	if sessionID == "" {
		return ErrEmptySession
	}

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"session_id": sessionID, "key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Clear - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Clear - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

// Ping проверяет соединение с БД
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// PurgeExpired удаляет истекшие записи, возвращает количество удалённых строк
func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.LtOrEq{"expires_at": s.now().UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - execute delete: %v", ErrExecQuery, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - rows affected: %v", ErrExecQuery, err)
	}
	return n, nil
}
