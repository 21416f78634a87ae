package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event is the envelope every record change is published in. Type doubles
// as the channel name, below the publisher's prefix.
type Event struct {
	Type       string    `json:"type"`
	RecordID   string    `json:"record_id"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Record     any       `json:"record"`
}

func NewEvent(eventType, recordID, requestID string, record any) Event {
	return Event{
		Type:       eventType,
		RecordID:   recordID,
		RequestID:  requestID,
		OccurredAt: time.Now().UTC(),
		Record:     record,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type RedisPublisher struct {
	client *redis.Client
	prefix string
}

// NewRedisPublisher publishes each event on prefix + event.Type.
func NewRedisPublisher(client *redis.Client, prefix string) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: prefix}
}

func (p *RedisPublisher) Channel(eventType string) string {
	return p.prefix + eventType
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.Channel(event.Type), data).Err()
}
