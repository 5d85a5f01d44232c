// Copyright (c) 2026 PressArt. All rights reserved.

package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pressart/storefront/internal/platform/apperr"
	"github.com/pressart/storefront/internal/platform/constants"
)

// MsgStorageUnavailable is shown when the guest cart store cannot be reached.
const MsgStorageUnavailable = "Your cart is temporarily unavailable. Please try again."

// RedisStore implements [GuestStore] for the API server. Each guest cart is a
// JSON string under "pressart-cart-guest:<guest id>" whose TTL is refreshed
// on every save.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisStore creates a Redis-backed [GuestStore].
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func redisKey(guestID string) string {
	return constants.RedisPrefixGuestCart + guestID
}

/*
Load retrieves the guest cart.

Parameters:
  - context: context.Context
  - guestID: string

Returns:
  - []Line: Stored lines, or an empty cart when absent, expired or unreadable
  - error: SERVICE_UNAVAILABLE when Redis cannot be reached
*/
func (repository *RedisStore) Load(context context.Context, guestID string) ([]Line, error) {
	data, err := repository.client.Get(context, redisKey(guestID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Line{}, nil
		}
		return nil, unavailable("get", err)
	}

	return decodeLines(repository.logger, data, guestID), nil
}

// Save stores the guest cart and resets its TTL.
func (repository *RedisStore) Save(context context.Context, guestID string, lines []Line) error {
	data, err := encodeLines(lines)
	if err != nil {
		return err
	}

	if err := repository.client.Set(context, redisKey(guestID), data, repository.ttl).Err(); err != nil {
		return unavailable("set", err)
	}
	return nil
}

// Clear deletes the guest cart.
func (repository *RedisStore) Clear(context context.Context, guestID string) error {
	if err := repository.client.Del(context, redisKey(guestID)).Err(); err != nil {
		return unavailable("delete", err)
	}
	return nil
}

func unavailable(action string, err error) error {
	appErr := apperr.ServiceUnavailable(MsgStorageUnavailable)
	appErr.Cause = fmt.Errorf("redis_guest_cart_%s_failed: %w", action, err)
	return appErr
}
