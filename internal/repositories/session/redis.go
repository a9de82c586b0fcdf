package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitforge/teamsync/internal/models"
	"github.com/fitforge/teamsync/internal/realtime"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix  = "session:"
	joinCodeKeyPrefix = "joincode:"

	// Table name used on the change feed
	tableName = "team_sessions"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// ErrCodeNotFound is returned when a join code does not resolve to a session
var ErrCodeNotFound = errors.New("join code not found")

// Config holds configuration for the Redis session repository
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

// NewRedis creates a new Redis-backed session repository
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

// CreateSession persists a new session to Redis
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	sess := input.Session
	if sess.ID == "" || sess.HostUID == "" {
		return errors.New("session ID and host cannot be empty")
	}

	if err := r.write(ctx, sess); err != nil {
		return err
	}

	r.publish(ctx, realtime.EventInsert, sess)

	return nil
}

// SaveSession overwrites an existing session in Redis
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if err := r.write(ctx, input.Session); err != nil {
		return err
	}

	r.publish(ctx, realtime.EventUpdate, input.Session)

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.TeamSession, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	return r.get(ctx, input.SessionID)
}

// SetJoinCode merges a join code into the session's workout state
func (r *redisRepository) SetJoinCode(ctx context.Context, input *SetJoinCodeInput) (*models.TeamSession, error) {
	if input == nil || input.SessionID == "" || input.Code == "" {
		return nil, errors.New("input, session ID and code cannot be empty")
	}

	sess, err := r.get(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	code := normalizeCode(input.Code)
	var previousCode string
	if sess.WorkoutState != nil {
		previousCode = sess.WorkoutState.JoinCode
	}

	// Merge into the existing blob; a session holds a single code.
	state := &models.WorkoutState{}
	if sess.WorkoutState != nil {
		*state = *sess.WorkoutState
	}
	if len(input.WorkoutData) > 0 {
		state.WorkoutData = input.WorkoutData
	}
	state.JoinCode = code
	state.JoinExpiresAt = input.ExpiresAt
	sess.WorkoutState = state

	sessionJSON, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.Pipeline()

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, sess.ID)
	pipe.Set(ctx, sessionKey, sessionJSON, 0)

	if previousCode != "" && previousCode != code {
		pipe.Del(ctx, fmt.Sprintf("%s%s", joinCodeKeyPrefix, previousCode))
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	pipe.Set(ctx, fmt.Sprintf("%s%s", joinCodeKeyPrefix, code), sess.ID, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to set join code: %w", err)
	}

	r.publish(ctx, realtime.EventUpdate, sess)

	return sess, nil
}

// GetSessionByCode resolves a join code to its owning session
func (r *redisRepository) GetSessionByCode(ctx context.Context, input *GetSessionByCodeInput) (*models.TeamSession, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	code := normalizeCode(input.Code)
	sessionID, err := r.client.Get(ctx, fmt.Sprintf("%s%s", joinCodeKeyPrefix, code)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to resolve join code: %w", err)
	}

	sess, err := r.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// The index could outlive a regeneration by a narrow race; the blob
	// is the authority on which code is current.
	if sess.WorkoutState == nil || sess.WorkoutState.JoinCode != code {
		return nil, ErrCodeNotFound
	}

	return sess, nil
}

func (r *redisRepository) get(ctx context.Context, sessionID string) (*models.TeamSession, error) {
	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, sessionID)
	sessionJSON, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess models.TeamSession
	if err := json.Unmarshal([]byte(sessionJSON), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &sess, nil
}

func (r *redisRepository) write(ctx context.Context, sess *models.TeamSession) error {
	sessionJSON, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, sess.ID)
	if err := r.client.Set(ctx, sessionKey, sessionJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// publish announces a session change on the session's feed channel.
// Failures are not surfaced; lifecycle sync self-heals on the next read.
func (r *redisRepository) publish(ctx context.Context, t realtime.EventType, sess *models.TeamSession) {
	ev, err := realtime.NewEvent(t, tableName, sess)
	if err != nil {
		return
	}
	_ = r.publisher.Publish(ctx, realtime.SessionChannel(sess.ID), ev)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
