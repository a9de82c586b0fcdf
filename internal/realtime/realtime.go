package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_realtime.go github.com/fitforge/teamsync/internal/realtime Publisher,Feed

// EventType classifies a row change
type EventType string

const (
	// EventInsert indicates a row was created
	EventInsert EventType = "INSERT"

	// EventUpdate indicates a row was overwritten
	EventUpdate EventType = "UPDATE"

	// EventDelete indicates a row was removed
	EventDelete EventType = "DELETE"
)

// Event is a row-change notification. Row holds the changed row as JSON;
// for deletes it holds the row as it was before removal.
type Event struct {
	Type  EventType       `json:"type"`
	Table string          `json:"table"`
	Row   json.RawMessage `json:"row"`
}

// NewEvent builds an Event from a row value, marshaling it to JSON.
func NewEvent(t EventType, table string, row any) (Event, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s row: %w", table, err)
	}
	return Event{Type: t, Table: table, Row: raw}, nil
}

// Channel naming. Subscription scope mirrors the column filters the
// coordinator needs: invites by recipient, invites by sender, session by id,
// presence by session, notifications by user.

// InviteInboxChannel carries invite changes addressed to uid.
func InviteInboxChannel(uid string) string { return "events:invites:to:" + uid }

// InviteOutboxChannel carries changes to invites sent by uid.
func InviteOutboxChannel(uid string) string { return "events:invites:from:" + uid }

// SessionChannel carries changes to a single team session row.
func SessionChannel(sessionID string) string { return "events:sessions:" + sessionID }

// PresenceChannel carries presence changes within a session.
func PresenceChannel(sessionID string) string { return "events:presence:" + sessionID }

// NotificationChannel carries notification inserts for a user.
func NotificationChannel(uid string) string { return "events:notifications:" + uid }

// Publisher emits row-change events. Repositories publish after each write
// so subscribers see changes regardless of which process wrote them.
type Publisher interface {
	Publish(ctx context.Context, channel string, event Event) error
}

// Feed delivers row-change events for a set of channels. The returned
// channel closes when ctx is canceled. Delivery is best-effort; consumers
// are expected to pair a Feed with periodic refetches.
type Feed interface {
	Subscribe(ctx context.Context, channels ...string) (<-chan Event, error)
}

// Config holds configuration for the Redis event bus
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisBus implements Publisher and Feed over Redis pub/sub
type redisBus struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed event bus
func NewRedis(cfg *Config) (*redisBus, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisBus{client: cfg.RedisClient}, nil
}

// Publish emits an event on a channel. Events are fire-and-forget; there is
// no replay for subscribers that were not listening.
func (b *redisBus) Publish(ctx context.Context, channel string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe opens a pub/sub subscription on the given channels and decodes
// incoming payloads. Malformed payloads are skipped.
func (b *redisBus) Subscribe(ctx context.Context, channels ...string) (<-chan Event, error) {
	if len(channels) == 0 {
		return nil, errors.New("at least one channel is required")
	}

	sub := b.client.Subscribe(ctx, channels...)

	// Wait for the subscription handshake so callers see events published
	// after Subscribe returns.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	msgs := sub.Channel()
	out := make(chan Event, 16)

	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
