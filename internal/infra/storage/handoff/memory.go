package handoff

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore хранилище hand-off в памяти процесса
// Подходит для одного инстанса; при рестарте данные теряются
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore создает хранилище в памяти
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, sessionID, key, value string) error {
	if sessionID == "" {
		return ErrEmptySession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	s.entries[entryKey(sessionID, key)] = memoryEntry{value: value, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID, key string) (string, error) {
	if sessionID == "" {
		return "", ErrEmptySession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := entryKey(sessionID, key)
	entry, ok := s.entries[k]
	if !ok {
		return "", ErrKeyNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, k)
		return "", ErrKeyNotFound
	}
	return entry.value, nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID, key string) error {
	if sessionID == "" {
		return ErrEmptySession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, entryKey(sessionID, key))
	return nil
}

// Len количество хранимых записей, включая ещё не удалённые истекшие
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// sweep удаляет истекшие записи, вызывается под мьютексом
func (s *MemoryStore) sweep(now time.Time) {
	for k, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, k)
		}
	}
}

func entryKey(sessionID, key string) string {
	return "handoff:" + sessionID + ":" + key
}
