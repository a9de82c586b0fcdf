package presence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fitforge/teamsync/internal/models"
	"github.com/fitforge/teamsync/internal/realtime"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for the per-session presence hash, field = user ID
	presenceKeyPrefix = "presence:"

	// Table name used on the change feed
	tableName = "team_session_presence"
)

// Config holds configuration for the Redis presence repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Publisher announces row changes on the realtime feed
	Publisher realtime.Publisher
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client    *redis.Client
	publisher realtime.Publisher
}

// NewRedis creates a new Redis-backed presence repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if cfg.Publisher == nil {
		return nil, errors.New("publisher cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client:    cfg.RedisClient,
		publisher: cfg.Publisher,
	}, nil
}

// UpsertPresence writes a participant's liveness record to Redis
func (r *redisRepository) UpsertPresence(ctx context.Context, input *UpsertPresenceInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	rec := input.Record
	if rec.SessionID == "" || rec.UserID == "" {
		return errors.New("session ID and user ID cannot be empty")
	}

	recordJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal presence record: %w", err)
	}

	presenceKey := fmt.Sprintf("%s%s", presenceKeyPrefix, rec.SessionID)
	created, err := r.client.HSet(ctx, presenceKey, rec.UserID, recordJSON).Result()
	if err != nil {
		return fmt.Errorf("failed to upsert presence: %w", err)
	}

	eventType := realtime.EventUpdate
	if created > 0 {
		eventType = realtime.EventInsert
	}
	r.publish(ctx, eventType, rec)

	return nil
}

// ListPresence retrieves every presence record for a session from Redis
func (r *redisRepository) ListPresence(ctx context.Context, input *ListPresenceInput) (*ListPresenceOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	presenceKey := fmt.Sprintf("%s%s", presenceKeyPrefix, input.SessionID)
	rows, err := r.client.HGetAll(ctx, presenceKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list presence: %w", err)
	}

	records := make([]*models.PresenceRecord, 0, len(rows))
	for _, recordJSON := range rows {
		var rec models.PresenceRecord
		if err := json.Unmarshal([]byte(recordJSON), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal presence record: %w", err)
		}
		records = append(records, &rec)
	}

	return &ListPresenceOutput{Records: records}, nil
}

// DeletePresence removes one participant's record from Redis
func (r *redisRepository) DeletePresence(ctx context.Context, input *DeletePresenceInput) error {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return errors.New("input, session ID and user ID cannot be empty")
	}

	presenceKey := fmt.Sprintf("%s%s", presenceKeyPrefix, input.SessionID)
	if err := r.client.HDel(ctx, presenceKey, input.UserID).Err(); err != nil {
		return fmt.Errorf("failed to delete presence: %w", err)
	}

	r.publish(ctx, realtime.EventDelete, &models.PresenceRecord{
		SessionID: input.SessionID,
		UserID:    input.UserID,
	})

	return nil
}

// DeleteSessionPresence removes every record for a session from Redis
func (r *redisRepository) DeleteSessionPresence(ctx context.Context, input *DeleteSessionPresenceInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	presenceKey := fmt.Sprintf("%s%s", presenceKeyPrefix, input.SessionID)
	if err := r.client.Del(ctx, presenceKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session presence: %w", err)
	}

	return nil
}

// publish announces a presence change. Failures are not surfaced; the
// periodic hydrate converges readers that missed an event.
func (r *redisRepository) publish(ctx context.Context, t realtime.EventType, rec *models.PresenceRecord) {
	ev, err := realtime.NewEvent(t, tableName, rec)
	if err != nil {
		return
	}
	_ = r.publisher.Publish(ctx, realtime.PresenceChannel(rec.SessionID), ev)
}
