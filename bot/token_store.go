package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// TokenStore keeps one backend token per Telegram user until the token expires.
type TokenStore interface {
	Get(ctx context.Context, telegramID int64) (string, bool, error)
	Set(ctx context.Context, telegramID int64, token string) error
	Delete(ctx context.Context, telegramID int64) error
}

// tokenExpiry reads exp without checking the signature; the backend is the
// only party that validates tokens.
func tokenExpiry(token string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
	storedAt  time.Time
}

// MemoryTokenStore is a bounded in-process store. When full it drops expired
// entries first, then the oldest one.
type MemoryTokenStore struct {
	mu         sync.Mutex
	entries    map[int64]memoryEntry
	maxEntries int
	now        func() time.Time
}

func NewMemoryTokenStore(maxEntries int) *MemoryTokenStore {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &MemoryTokenStore{
		entries:    make(map[int64]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (s *MemoryTokenStore) Get(_ context.Context, telegramID int64) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[telegramID]
	if !ok {
		return "", false, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, telegramID)
		return "", false, nil
	}
	return entry.token, true, nil
}

func (s *MemoryTokenStore) Set(_ context.Context, telegramID int64, token string) error {
	expiresAt, err := tokenExpiry(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !now.Before(expiresAt) {
		delete(s.entries, telegramID)
		return nil
	}
	if _, exists := s.entries[telegramID]; !exists && len(s.entries) >= s.maxEntries {
		s.evictLocked(now)
	}
	s.entries[telegramID] = memoryEntry{token: token, expiresAt: expiresAt, storedAt: now}
	return nil
}

func (s *MemoryTokenStore) Delete(_ context.Context, telegramID int64) error {
	s.mu.Lock()
	delete(s.entries, telegramID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryTokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryTokenStore) evictLocked(now time.Time) {
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
	if len(s.entries) < s.maxEntries {
		return
	}

	var (
		oldestID  int64
		oldestAt  time.Time
		haveFirst bool
	)
	for id, entry := range s.entries {
		if !haveFirst || entry.storedAt.Before(oldestAt) {
			oldestID, oldestAt, haveFirst = id, entry.storedAt, true
		}
	}
	delete(s.entries, oldestID)
}

// RedisTokenStore shares tokens between bot replicas; Redis expires the keys.
type RedisTokenStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client, prefix: "bot:token:", now: time.Now}
}

func (s *RedisTokenStore) key(telegramID int64) string {
	return s.prefix + strconv.FormatInt(telegramID, 10)
}

func (s *RedisTokenStore) Get(ctx context.Context, telegramID int64) (string, bool, error) {
	token, err := s.client.Get(ctx, s.key(telegramID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

func (s *RedisTokenStore) Set(ctx context.Context, telegramID int64, token string) error {
	expiresAt, err := tokenExpiry(token)
	if err != nil {
		return err
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, telegramID)
	}
	return s.client.Set(ctx, s.key(telegramID), token, ttl).Err()
}

func (s *RedisTokenStore) Delete(ctx context.Context, telegramID int64) error {
	return s.client.Del(ctx, s.key(telegramID)).Err()
}
