package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RealtimeGateway pushes live status payloads to a connected client.
type RealtimeGateway interface {
	Push(ctx context.Context, targetID string, payload any) error
}

// RedisRealtimeGateway publishes payloads on a per-target Redis
// channel consumed by the websocket edge.
type RedisRealtimeGateway struct {
	client *redis.Client
}

func NewRedisRealtimeGateway(client *redis.Client) *RedisRealtimeGateway {
	return &RedisRealtimeGateway{client: client}
}

func realtimeChannel(targetID string) string {
	return "realtime:" + targetID
}

func (g *RedisRealtimeGateway) Push(ctx context.Context, targetID string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("realtime push: failed to marshal payload: %w", err)
	}
	if err := g.client.Publish(ctx, realtimeChannel(targetID), raw).Err(); err != nil {
		return fmt.Errorf("realtime push: failed to publish to %s: %w", realtimeChannel(targetID), err)
	}
	return nil
}
