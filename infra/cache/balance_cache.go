package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RedisBalanceCache stores account balances under "balance_<id>" with a
// TTL. It is a read accelerator only: the ledger stays authoritative
// and a stale or missing entry is never an error for callers.
type RedisBalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBalanceCache(client *redis.Client, ttl time.Duration) *RedisBalanceCache {
	return &RedisBalanceCache{client: client, ttl: ttl}
}

func (c *RedisBalanceCache) GetBalance(ctx context.Context, accountID uuid.UUID) (*decimal.Decimal, error) {
	val, err := c.client.Get(ctx, balanceKey(accountID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var balance decimal.Decimal
	if err := json.Unmarshal([]byte(val), &balance); err != nil {
		return nil, fmt.Errorf("decode cached balance: %w", err)
	}
	return &balance, nil
}

func (c *RedisBalanceCache) SetBalance(ctx context.Context, accountID uuid.UUID, balance decimal.Decimal) error {
	val, err := json.Marshal(balance)
	if err != nil {
		return fmt.Errorf("encode balance: %w", err)
	}

	if err := c.client.Set(ctx, balanceKey(accountID), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func balanceKey(accountID uuid.UUID) string {
	return "balance_" + accountID.String()
}
