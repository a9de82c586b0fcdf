package notification

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
	// Key prefixes for Redis
	notificationKeyPrefix = "notification:"
	userIndexKeyPrefix    = "notifications:user:"

	// Table name used on the change feed
	tableName = "notifications"
)

// Config holds configuration for the Redis notification repository
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

// NewRedis creates a new Redis-backed notification repository
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

// CreateNotification persists a notification to Redis
func (r *redisRepository) CreateNotification(ctx context.Context, input *CreateNotificationInput) error {
	if input == nil || input.Notification == nil {
		return errors.New("input and notification cannot be nil")
	}

	n := input.Notification
	if n.ID == "" || n.UserID == "" {
		return errors.New("notification ID and user ID cannot be empty")
	}

	notificationJSON, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, fmt.Sprintf("%s%s", notificationKeyPrefix, n.ID), notificationJSON, 0)
	pipe.ZAdd(ctx, fmt.Sprintf("%s%s", userIndexKeyPrefix, n.UserID), redis.Z{
		Score:  float64(n.CreatedAt.UnixNano()),
		Member: n.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	if ev, err := realtime.NewEvent(realtime.EventInsert, tableName, n); err == nil {
		_ = r.publisher.Publish(ctx, realtime.NotificationChannel(n.UserID), ev)
	}

	return nil
}

// ListByUser retrieves a user's notifications from Redis, newest first
func (r *redisRepository) ListByUser(ctx context.Context, input *ListByUserInput) (*ListByUserOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	ids, err := r.client.ZRevRange(ctx, fmt.Sprintf("%s%s", userIndexKeyPrefix, input.UserID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get notification IDs: %w", err)
	}

	notifications := make([]*models.Notification, 0, len(ids))
	for _, id := range ids {
		notificationJSON, err := r.client.Get(ctx, fmt.Sprintf("%s%s", notificationKeyPrefix, id)).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get notification %s: %w", id, err)
		}

		var n models.Notification
		if err := json.Unmarshal([]byte(notificationJSON), &n); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification %s: %w", id, err)
		}
		notifications = append(notifications, &n)
	}

	return &ListByUserOutput{Notifications: notifications}, nil
}

// MarkInviteRead marks all of a user's invite notifications read
func (r *redisRepository) MarkInviteRead(ctx context.Context, input *MarkInviteReadInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("input and user ID cannot be empty")
	}

	out, err := r.ListByUser(ctx, &ListByUserInput{UserID: input.UserID})
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	dirty := false
	for _, n := range out.Notifications {
		if n.Type != models.NotificationTypeInvite || n.Read {
			continue
		}
		n.Read = true
		notificationJSON, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("failed to marshal notification: %w", err)
		}
		pipe.Set(ctx, fmt.Sprintf("%s%s", notificationKeyPrefix, n.ID), notificationJSON, 0)
		dirty = true
	}

	if !dirty {
		return nil
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}
