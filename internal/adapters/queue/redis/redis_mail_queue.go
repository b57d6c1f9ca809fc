package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/webxtars/vybh-backend/internal/adapters/mail"
)

const outboundKey = "mail:outbound"

// RedisMailQueue is the outbound email queue: registration enqueues,
// the notifier worker drains.
type RedisMailQueue struct {
	client *redis.Client
}

func NewRedisMailQueue(client *redis.Client) *RedisMailQueue {
	return &RedisMailQueue{client: client}
}

func (q *RedisMailQueue) Enqueue(ctx context.Context, m mail.Message) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, outboundKey, b).Err()
}

// Dequeue blocks up to one second for a message. ok is false when the
// queue stayed empty, so the caller can re-check its context.
func (q *RedisMailQueue) Dequeue(ctx context.Context) (m mail.Message, ok bool, err error) {
	vals, err := q.client.BRPop(ctx, time.Second, outboundKey).Result()
	switch {
	case err == redis.Nil:
		return mail.Message{}, false, nil
	case err != nil:
		return mail.Message{}, false, err
	}

	if err := json.Unmarshal([]byte(vals[1]), &m); err != nil {
		return mail.Message{}, false, err
	}
	return m, true, nil
}
