package utils

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// QueryCache stores JSON query results under versioned keys. Bumping the
// generation of a prefix makes every cached entry under it unreachable; the
// stale keys then age out through their TTL.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	return &QueryCache{client: client, ttl: ttl}
}

func (q *QueryCache) generation(ctx context.Context, prefix string) (string, error) {
	gen, err := q.client.Get(ctx, prefix+":gen").Result()
	if err == redis.Nil {
		return "0", nil
	}
	return gen, err
}

// Key builds the cache key for prefix and params under the current generation.
func (q *QueryCache) Key(ctx context.Context, prefix string, params map[string]string) (string, error) {
	gen, err := q.generation(ctx, prefix)
	if err != nil {
		return "", err
	}
	return GenerateQueryCacheKey(prefix+":g"+gen, params), nil
}

func (q *QueryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := q.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(data), dest)
}

func (q *QueryCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return q.client.Set(ctx, key, data, q.ttl).Err()
}

// Invalidate moves prefix to a new generation.
func (q *QueryCache) Invalidate(ctx context.Context, prefix string) error {
	return q.client.Incr(ctx, prefix+":gen").Err()
}

func GenerateQueryCacheKey(prefix string, queryParams map[string]string) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, k := range keys {
		if i > 0 {
			builder.WriteString(":")
		}
		builder.WriteString(k)
		builder.WriteString("=")
		builder.WriteString(queryParams[k])
	}

	hash := md5.Sum([]byte(builder.String()))
	return prefix + ":" + hex.EncodeToString(hash[:])
}

func FormatOptionalUint(v *uint) string {
	if v == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*v), 10)
}
