// Package redisad keeps discovered Google place IDs in a Redis hash so the
// mapping survives restarts and is shared across instances.
package redisad

import (
	"context"

	"github.com/redis/go-redis/v9"

	"flex_reviews/internal/adapters/observability"
)

const hashKey = "placeids"

type PlaceIDs struct{ c *redis.Client }

func New(addr, pass string, db int) *PlaceIDs {
	return &PlaceIDs{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (p *PlaceIDs) Get(ctx context.Context, propertyID string) (string, bool, error) {
	v, err := p.c.HGet(ctx, hashKey, propertyID).Result()
	if err == redis.Nil {
		observability.ObservePlaceID("miss")
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	observability.ObservePlaceID("hit")
	return v, true, nil
}

func (p *PlaceIDs) Set(ctx context.Context, propertyID, placeID string) error {
	observability.ObservePlaceID("set")
	return p.c.HSet(ctx, hashKey, propertyID, placeID).Err()
}

func (p *PlaceIDs) All(ctx context.Context) (map[string]string, error) {
	return p.c.HGetAll(ctx, hashKey).Result()
}
