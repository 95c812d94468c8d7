package handoff

import "errors"

var (
	// ErrKeyNotFound возвращается, когда значение отсутствует или истекло
	ErrKeyNotFound = errors.New("handoff.store: key not found")

	// ErrEmptySession возвращается, когда не передан идентификатор сессии
	ErrEmptySession = errors.New("handoff.store: empty session id")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("handoff.store: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса
	ErrExecQuery = errors.New("handoff.store: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("handoff.store: failed to scan row")
)
