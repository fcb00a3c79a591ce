// Package cache keeps the sorted leaderboard in Redis between progress writes.
package cache

import (
	"context"
	"time"

	"ecotrack/internal/model"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	leaderboardKey        = "ecotrack:leaderboard"
	DefaultLeaderboardTTL = 30 * time.Second
)

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type LeaderboardCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	if ttl <= 0 {
		ttl = DefaultLeaderboardTTL
	}
	return &LeaderboardCache{
		client: client,
		key:    leaderboardKey,
		ttl:    ttl,
	}
}

// Get returns the cached rows; ok is false on a miss.
func (c *LeaderboardCache) Get(ctx context.Context) ([]*model.UserProgress, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "cache: get leaderboard")
	}

	var rows []*model.UserProgress
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false, errors.Wrap(err, "cache: decode leaderboard")
	}
	return rows, true, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, rows []*model.UserProgress) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return errors.Wrap(err, "cache: encode leaderboard")
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "cache: set leaderboard")
	}
	return nil
}

func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return errors.Wrap(err, "cache: invalidate leaderboard")
	}
	return nil
}
