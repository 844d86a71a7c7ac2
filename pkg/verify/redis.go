package verify

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/px/pkg/errors"
)

// RedisKeyPrefix namespaces verification entries in a shared Redis.
const RedisKeyPrefix = "px:types:"

// RedisStore shares verification results between machines through Redis.
// Set buffers writes in memory; Flush sends them in one pipeline.
type RedisStore struct {
	client *redis.Client

	mu      sync.Mutex
	pending map[string]Availability
}

// NewRedisStore connects to the Redis instance at rawURL
// (redis://[user:pass@]host:port/db).
func NewRedisStore(ctx context.Context, rawURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeCacheRead, err, "connect to redis at %s", opts.Addr)
	}
	return NewRedisStoreFromClient(client), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, pending: make(map[string]Availability)}
}

func (s *RedisStore) Get(ctx context.Context, pkg string) (Availability, error) {
	s.mu.Lock()
	a, ok := s.pending[pkg]
	s.mu.Unlock()
	if ok {
		return a, nil
	}

	val, err := s.client.Get(ctx, RedisKeyPrefix+pkg).Result()
	if stderrors.Is(err, redis.Nil) {
		return Unknown, nil
	}
	if err != nil {
		return Unknown, errors.Wrap(errors.ErrCodeCacheRead, err, "redis get %s", pkg)
	}
	return parseAvailability(val), nil
}

func (s *RedisStore) Set(ctx context.Context, pkg string, a Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[pkg] = a
	return nil
}

func (s *RedisStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return nil
	}
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for pkg, a := range s.pending {
			if a.Known() {
				pipe.Set(ctx, RedisKeyPrefix+pkg, a.String(), 0)
			} else {
				pipe.Del(ctx, RedisKeyPrefix+pkg)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheWrite, err, "redis flush")
	}
	clear(s.pending)
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]Entry, error) {
	keys, err := s.keys(ctx)
	if err != nil {
		return nil, err
	}
	entries := make(map[string]Availability, len(keys))
	if len(keys) > 0 {
		vals, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCacheRead, err, "redis mget")
		}
		for i, v := range vals {
			if str, ok := v.(string); ok {
				entries[strings.TrimPrefix(keys[i], RedisKeyPrefix)] = parseAvailability(str)
			}
		}
	}
	return sortedEntries(entries), nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	keys, err := s.keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			return errors.Wrap(errors.ErrCodeCacheWrite, err, "redis del")
		}
	}
	s.mu.Lock()
	clear(s.pending)
	s.mu.Unlock()
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, RedisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCacheRead, err, "redis scan")
	}
	return keys, nil
}

func parseAvailability(s string) Availability {
	switch s {
	case HasTypes.String():
		return HasTypes
	case NoTypes.String():
		return NoTypes
	default:
		return Unknown
	}
}

var (
	_ Store  = (*RedisStore)(nil)
	_ Lister = (*RedisStore)(nil)
)
