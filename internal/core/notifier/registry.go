package notifier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const channelPrefix = "user_notifications:"

// RedisRegistry fans notifications out over redis pub/sub, keyed by
// user id. Any instance holding the user's live connection subscribes
// to that user's channel, so delivery is not pinned to the process
// that executed the transaction.
type RedisRegistry struct {
	client *redis.Client
}

func NewRedisRegistry(client *redis.Client) *RedisRegistry {
	return &RedisRegistry{client: client}
}

func (r *RedisRegistry) Send(ctx context.Context, userID uuid.UUID, message string) error {
	if err := r.client.Publish(ctx, userChannel(userID), message).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Subscribe returns the live message stream for a user. The caller owns
// the subscription and must Close it when the connection goes away.
func (r *RedisRegistry) Subscribe(ctx context.Context, userID uuid.UUID) *redis.PubSub {
	return r.client.Subscribe(ctx, userChannel(userID))
}

func userChannel(userID uuid.UUID) string {
	return channelPrefix + userID.String()
}
