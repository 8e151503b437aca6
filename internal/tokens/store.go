package tokens

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record — запись о выпущенной паре токенов.
// Хранится под двумя ключами (access и refresh), но остаётся одной записью:
// инвалидация пары убирает оба ключа.
type Record struct {
	AccessToken  string
	RefreshToken string
	UserID       uuid.UUID
	ExpiresAt    time.Time
}

// Store — key-value хранилище пар токенов с per-entry истечением.
//
// Контракт:
//   - Put индексирует запись по обоим токенам;
//   - Access возвращает запись по access-токену; просроченные и
//     отсутствующие записи неразличимы (ok=false в обоих случаях);
//   - ConsumeRefresh атомарно изымает пару по refresh-токену: при
//     конкурентных вызовах с одним токеном ровно один получает ok=true;
//   - Sweep удаляет просроченные записи (для фоновой уборки; Access и
//     ConsumeRefresh и без неё лениво отбрасывают просроченное).
type Store interface {
	Put(ctx context.Context, rec Record) error
	Access(ctx context.Context, accessToken string) (Record, bool, error)
	ConsumeRefresh(ctx context.Context, refreshToken string) (Record, bool, error)
	Sweep(ctx context.Context) error
	Close() error
}

// MemoryStore — in-process реализация Store на map с мьютексом.
// Часы инжектируются для детерминированных тестов.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*Record // оба токена записи указывают на один *Record.
	now     func() time.Time
}

// NewMemoryStore создаёт MemoryStore. now == nil означает time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}

	return &MemoryStore{
		entries: make(map[string]*Record),
		now:     now,
	}
}

// Put индексирует запись по обоим токенам.
func (s *MemoryStore) Put(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := rec
	s.entries[rec.AccessToken] = &r
	s.entries[rec.RefreshToken] = &r

	return nil
}

// Access возвращает запись по access-токену.
// Просроченная запись лениво изымается и неотличима от отсутствующей.
func (s *MemoryStore) Access(_ context.Context, accessToken string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.entries[accessToken]
	if !ok || rec.AccessToken != accessToken {
		return Record{}, false, nil
	}

	if !s.now().Before(rec.ExpiresAt) {
		s.evict(rec)
		return Record{}, false, nil
	}

	return *rec, true, nil
}

// ConsumeRefresh атомарно изымает пару по refresh-токену.
// Под одним мьютексом проверка и удаление — второй конкурентный вызов
// с тем же токеном наблюдает уже изъятую пару.
func (s *MemoryStore) ConsumeRefresh(_ context.Context, refreshToken string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.entries[refreshToken]
	if !ok || rec.RefreshToken != refreshToken {
		return Record{}, false, nil
	}

	s.evict(rec)

	if !s.now().Before(rec.ExpiresAt) {
		return Record{}, false, nil
	}

	return *rec, true, nil
}

// Sweep удаляет все просроченные записи.
func (s *MemoryStore) Sweep(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, rec := range s.entries {
		if !now.Before(rec.ExpiresAt) {
			s.evict(rec)
		}
	}

	return nil
}

// Close реализует Store; для in-memory хранилища — no-op.
func (s *MemoryStore) Close() error { return nil }

// evict удаляет оба ключа записи; вызывается под мьютексом.
func (s *MemoryStore) evict(rec *Record) {
	delete(s.entries, rec.AccessToken)
	delete(s.entries, rec.RefreshToken)
}

var _ Store = (*MemoryStore)(nil)
