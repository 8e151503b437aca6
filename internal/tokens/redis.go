package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore — реализация Store поверх Redis для multi-instance развёртывания.
//
// Запись сериализуется в JSON и кладётся под оба ключа с TTL до ExpiresAt;
// истечение отдаёт сам Redis. Одноразовость refresh-токена обеспечивает
// атомарный GETDEL: из конкурентных потребителей значение получает ровно один.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "hub:tok:".
func NewRedisStore(redisURL, prefix string) (*RedisStore, error) {
	const op = "tokens.NewRedisStore"

	if prefix == "" {
		prefix = "hub:tok:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisStore{rdb: rdb, prefix: prefix}, nil
}

func (s *RedisStore) key(token string) string { return s.prefix + token }

// Put сохраняет запись под обоими токенами с TTL до ExpiresAt.
func (s *RedisStore) Put(ctx context.Context, rec Record) error {
	const op = "tokens.RedisStore.Put"

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.key(rec.AccessToken), raw, ttl)
	pipe.Set(ctx, s.key(rec.RefreshToken), raw, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Access возвращает запись по access-токену.
func (s *RedisStore) Access(ctx context.Context, accessToken string) (Record, bool, error) {
	const op = "tokens.RedisStore.Access"

	raw, err := s.rdb.Get(ctx, s.key(accessToken)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, false, nil
		}

		return Record{}, false, fmt.Errorf("%s: %w", op, err)
	}

	rec, err := decodeRecord(raw)
	if err != nil {
		return Record{}, false, fmt.Errorf("%s: %w", op, err)
	}

	// Ключ access-токена обязан быть именно access-членом пары:
	// refresh-токен не годится для доступа к API.
	if rec.AccessToken != accessToken {
		return Record{}, false, nil
	}

	return rec, true, nil
}

// ConsumeRefresh атомарно изымает пару: GETDEL по refresh-ключу выигрывает
// ровно один из конкурентных вызовов, после чего удаляется и access-ключ.
func (s *RedisStore) ConsumeRefresh(ctx context.Context, refreshToken string) (Record, bool, error) {
	const op = "tokens.RedisStore.ConsumeRefresh"

	raw, err := s.rdb.GetDel(ctx, s.key(refreshToken)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, false, nil
		}

		return Record{}, false, fmt.Errorf("%s: %w", op, err)
	}

	rec, err := decodeRecord(raw)
	if err != nil {
		return Record{}, false, fmt.Errorf("%s: %w", op, err)
	}

	if rec.RefreshToken != refreshToken {
		return Record{}, false, nil
	}

	if err := s.rdb.Del(ctx, s.key(rec.AccessToken)).Err(); err != nil {
		return Record{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return rec, true, nil
}

// Sweep — no-op: истечение записей обеспечивает TTL на стороне Redis.
func (s *RedisStore) Sweep(context.Context) error { return nil }

// Close закрывает клиент Redis.
func (s *RedisStore) Close() error { return s.rdb.Close() }

func decodeRecord(raw []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, err
	}

	return rec, nil
}

var _ Store = (*RedisStore)(nil)
