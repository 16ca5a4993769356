// Package cache holds the optional redis-backed token session cache. It
// spares the token store a lookup on every authenticated request; a cache
// miss or an unreachable redis simply falls through to the database.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

const opTimeout = 3 * time.Second

type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TTL          time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Addr:         "localhost:6379",
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		TTL:          15 * time.Minute,
	}
}

// TokenCache maps token digests to user ids and keeps a per-user set of
// cached digests so a logout can drop every session of that user at once.
// Callers key entries by a digest of the full plaintext token, so a cache
// hit proves possession of the token itself. A nil *TokenCache is valid and
// behaves as an always-miss cache.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(config *Config) *TokenCache {
	if config == nil {
		config = DefaultConfig()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})

	return &TokenCache{client: rdb, ttl: config.TTL}
}

// NewWithClient wires an existing client, used by tests with miniredis.
func NewWithClient(client *redis.Client, ttl time.Duration) *TokenCache {
	return &TokenCache{client: client, ttl: ttl}
}

func tokenKey(digest string) string { return "token:" + digest }

func userKey(userID uint) string { return "user_tokens:" + strconv.FormatUint(uint64(userID), 10) }

// Get returns the cached user id for a token digest, or ErrCacheMiss.
func (c *TokenCache) Get(ctx context.Context, digest string) (uint, error) {
	if c == nil {
		return 0, ErrCacheMiss
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	val, err := c.client.Get(ctx, tokenKey(digest)).Result()
	if err == redis.Nil {
		return 0, ErrCacheMiss
	}
	if err != nil {
		// Treat a down cache as a miss; the token store is authoritative.
		return 0, ErrCacheMiss
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrCacheMiss
	}
	return uint(userID), nil
}

// Put records a validated token session.
func (c *TokenCache) Put(ctx context.Context, digest string, userID uint) error {
	if c == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, tokenKey(digest), strconv.FormatUint(uint64(userID), 10), c.ttl)
	pipe.SAdd(ctx, userKey(userID), digest)
	pipe.Expire(ctx, userKey(userID), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache token session: %w", err)
	}
	return nil
}

// InvalidateUser drops every cached session of a user. Called on logout so
// revoked tokens stop authenticating immediately.
func (c *TokenCache) InvalidateUser(ctx context.Context, userID uint) error {
	if c == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	digests, err := c.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to load cached sessions for user %d: %w", userID, err)
	}

	keys := make([]string, 0, len(digests)+1)
	for _, id := range digests {
		keys = append(keys, tokenKey(id))
	}
	keys = append(keys, userKey(userID))

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate sessions for user %d: %w", userID, err)
	}
	return nil
}

func (c *TokenCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
