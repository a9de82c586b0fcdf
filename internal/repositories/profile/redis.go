package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fitforge/teamsync/internal/models"
	"github.com/redis/go-redis/v9"
)

// Key prefix for Redis
const profileKeyPrefix = "profile:"

// ErrProfileNotFound is returned when a profile is not found
var ErrProfileNotFound = errors.New("profile not found")

// Config holds configuration for the Redis profile repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed profile repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{client: cfg.RedisClient}, nil
}

// SaveProfile persists a profile to Redis
func (r *redisRepository) SaveProfile(ctx context.Context, input *SaveProfileInput) error {
	if input == nil || input.Profile == nil {
		return errors.New("input and profile cannot be nil")
	}

	if input.Profile.ID == "" {
		return errors.New("profile ID cannot be empty")
	}

	profileJSON, err := json.Marshal(input.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	profileKey := fmt.Sprintf("%s%s", profileKeyPrefix, input.Profile.ID)
	if err := r.client.Set(ctx, profileKey, profileJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// GetProfile retrieves a profile by user ID from Redis
func (r *redisRepository) GetProfile(ctx context.Context, input *GetProfileInput) (*models.Profile, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	profileKey := fmt.Sprintf("%s%s", profileKeyPrefix, input.UserID)
	profileJSON, err := r.client.Get(ctx, profileKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var p models.Profile
	if err := json.Unmarshal([]byte(profileJSON), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &p, nil
}
