package invite

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
	inviteKeyPrefix      = "invite:"
	pendingToKeyPrefix   = "invites:pending:to:"
	acceptedByKeyPrefix  = "invites:accepted:session:"

	// Table name used on the change feed
	tableName = "invites"
)

// ErrInviteNotFound is returned when an invite is not found
var ErrInviteNotFound = errors.New("invite not found")

// ErrInviteResolved is returned when updating an invite that already left
// the pending state
var ErrInviteResolved = errors.New("invite already resolved")

// Config holds configuration for the Redis invite repository
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

// NewRedis creates a new Redis-backed invite repository
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

// CreateInvite persists a new invite to Redis
func (r *redisRepository) CreateInvite(ctx context.Context, input *CreateInviteInput) error {
	if input == nil || input.Invite == nil {
		return errors.New("input and invite cannot be nil")
	}

	inv := input.Invite
	if inv.ID == "" || inv.FromUID == "" || inv.ToUID == "" {
		return errors.New("invite ID, sender and recipient cannot be empty")
	}

	inviteJSON, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("failed to marshal invite: %w", err)
	}

	pipe := r.client.Pipeline()

	inviteKey := fmt.Sprintf("%s%s", inviteKeyPrefix, inv.ID)
	pipe.Set(ctx, inviteKey, inviteJSON, 0)

	if inv.Status == models.InviteStatusPending {
		pendingKey := fmt.Sprintf("%s%s", pendingToKeyPrefix, inv.ToUID)
		pipe.ZAdd(ctx, pendingKey, redis.Z{
			Score:  float64(inv.CreatedAt.UnixNano()),
			Member: inv.ID,
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save invite: %w", err)
	}

	r.publish(ctx, realtime.EventInsert, inv, realtime.InviteInboxChannel(inv.ToUID))

	return nil
}

// GetInvite retrieves an invite by ID from Redis
func (r *redisRepository) GetInvite(ctx context.Context, input *GetInviteInput) (*models.Invite, error) {
	if input == nil || input.InviteID == "" {
		return nil, errors.New("input and invite ID cannot be empty")
	}

	inviteKey := fmt.Sprintf("%s%s", inviteKeyPrefix, input.InviteID)
	inviteJSON, err := r.client.Get(ctx, inviteKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	var inv models.Invite
	if err := json.Unmarshal([]byte(inviteJSON), &inv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invite: %w", err)
	}

	return &inv, nil
}

// UpdateInviteStatus resolves a pending invite to a terminal status
func (r *redisRepository) UpdateInviteStatus(ctx context.Context, input *UpdateInviteStatusInput) (*models.Invite, error) {
	if input == nil || input.InviteID == "" {
		return nil, errors.New("input and invite ID cannot be empty")
	}

	if input.Status != models.InviteStatusAccepted && input.Status != models.InviteStatusRejected {
		return nil, errors.New("status must be accepted or rejected")
	}

	inv, err := r.GetInvite(ctx, &GetInviteInput{InviteID: input.InviteID})
	if err != nil {
		return nil, err
	}

	if inv.Status != models.InviteStatusPending {
		return nil, ErrInviteResolved
	}

	inv.Status = input.Status

	inviteJSON, err := json.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invite: %w", err)
	}

	pipe := r.client.Pipeline()

	inviteKey := fmt.Sprintf("%s%s", inviteKeyPrefix, inv.ID)
	pipe.Set(ctx, inviteKey, inviteJSON, 0)

	pendingKey := fmt.Sprintf("%s%s", pendingToKeyPrefix, inv.ToUID)
	pipe.ZRem(ctx, pendingKey, inv.ID)

	if inv.Status == models.InviteStatusAccepted && inv.TeamSessionID != "" {
		acceptedKey := fmt.Sprintf("%s%s", acceptedByKeyPrefix, inv.TeamSessionID)
		pipe.ZAdd(ctx, acceptedKey, redis.Z{
			Score:  float64(inv.CreatedAt.UnixNano()),
			Member: inv.ID,
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to update invite: %w", err)
	}

	r.publish(ctx, realtime.EventUpdate, inv,
		realtime.InviteInboxChannel(inv.ToUID),
		realtime.InviteOutboxChannel(inv.FromUID))

	return inv, nil
}

// ListPendingByRecipient retrieves pending invites addressed to a user
func (r *redisRepository) ListPendingByRecipient(ctx context.Context, input *ListPendingByRecipientInput) (*ListPendingByRecipientOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	pendingKey := fmt.Sprintf("%s%s", pendingToKeyPrefix, input.UserID)
	ids, err := r.client.ZRevRange(ctx, pendingKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get pending invite IDs: %w", err)
	}

	invites, err := r.getMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	// The index can lag the row; only surface invites still pending.
	pending := make([]*models.Invite, 0, len(invites))
	for _, inv := range invites {
		if inv.Status == models.InviteStatusPending {
			pending = append(pending, inv)
		}
	}

	return &ListPendingByRecipientOutput{Invites: pending}, nil
}

// ListAcceptedBySession retrieves accepted invites a sender issued for one session
func (r *redisRepository) ListAcceptedBySession(ctx context.Context, input *ListAcceptedBySessionInput) (*ListAcceptedBySessionOutput, error) {
	if input == nil || input.FromUID == "" || input.SessionID == "" {
		return nil, errors.New("input, sender ID and session ID cannot be empty")
	}

	acceptedKey := fmt.Sprintf("%s%s", acceptedByKeyPrefix, input.SessionID)
	ids, err := r.client.ZRevRange(ctx, acceptedKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get accepted invite IDs: %w", err)
	}

	invites, err := r.getMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	accepted := make([]*models.Invite, 0, len(invites))
	for _, inv := range invites {
		if inv.FromUID == input.FromUID && inv.Status == models.InviteStatusAccepted {
			accepted = append(accepted, inv)
		}
	}

	return &ListAcceptedBySessionOutput{Invites: accepted}, nil
}

// getMany fetches invites by ID, skipping rows deleted between the index
// read and the fetch.
func (r *redisRepository) getMany(ctx context.Context, ids []string) ([]*models.Invite, error) {
	if len(ids) == 0 {
		return []*models.Invite{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, pipe.Get(ctx, fmt.Sprintf("%s%s", inviteKeyPrefix, id)))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get invites: %w", err)
	}

	invites := make([]*models.Invite, 0, len(ids))
	for _, cmd := range cmds {
		inviteJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get invite: %w", err)
		}

		var inv models.Invite
		if err := json.Unmarshal([]byte(inviteJSON), &inv); err != nil {
			return nil, fmt.Errorf("failed to unmarshal invite: %w", err)
		}
		invites = append(invites, &inv)
	}

	return invites, nil
}

// publish announces a row change. The feed is advisory; poll paths cover
// dropped events, so publish failures are not surfaced to the writer.
func (r *redisRepository) publish(ctx context.Context, t realtime.EventType, inv *models.Invite, channels ...string) {
	ev, err := realtime.NewEvent(t, tableName, inv)
	if err != nil {
		return
	}
	for _, ch := range channels {
		_ = r.publisher.Publish(ctx, ch, ev)
	}
}
