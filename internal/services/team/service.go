package team

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitforge/teamsync/internal/common/clock"
	"github.com/fitforge/teamsync/internal/common/identifier"
	"github.com/fitforge/teamsync/internal/models"
	inviteRepo "github.com/fitforge/teamsync/internal/repositories/invite"
	notificationRepo "github.com/fitforge/teamsync/internal/repositories/notification"
	presenceRepo "github.com/fitforge/teamsync/internal/repositories/presence"
	profileRepo "github.com/fitforge/teamsync/internal/repositories/profile"
	sessionRepo "github.com/fitforge/teamsync/internal/repositories/session"
)

const (
	// DefaultCodeTTLMinutes is the join-code lifetime when none is given
	DefaultCodeTTLMinutes = 90

	// MinCodeTTLMinutes is the join-code lifetime floor
	MinCodeTTLMinutes = 10

	// fallbackSenderName is used when a sender's profile cannot be read
	fallbackSenderName = "Unknown"
)

// Config holds configuration for the team service
type Config struct {
	// DefaultCodeTTLMinutes overrides the default join-code lifetime
	DefaultCodeTTLMinutes int

	// MinCodeTTLMinutes overrides the join-code lifetime floor
	MinCodeTTLMinutes int
}

// service implements the Service interface
type service struct {
	config       *Config
	inviteRepo   inviteRepo.Repository
	sessionRepo  sessionRepo.Repository
	presenceRepo presenceRepo.Repository
	profileRepo  profileRepo.Repository
	notifRepo    notificationRepo.Repository
	clock        clock.Clock
	idGen        identifier.Generator
}

// NewService creates a new team service
func NewService(cfg *Config, invites inviteRepo.Repository, sessions sessionRepo.Repository, presences presenceRepo.Repository, profiles profileRepo.Repository, notifications notificationRepo.Repository, clk clock.Clock, idGen identifier.Generator) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.DefaultCodeTTLMinutes <= 0 {
		cfg.DefaultCodeTTLMinutes = DefaultCodeTTLMinutes
	}
	if cfg.MinCodeTTLMinutes <= 0 {
		cfg.MinCodeTTLMinutes = MinCodeTTLMinutes
	}

	if invites == nil {
		return nil, ErrNilInviteRepo
	}
	if sessions == nil {
		return nil, ErrNilSessionRepo
	}
	if presences == nil {
		return nil, ErrNilPresenceRepo
	}
	if profiles == nil {
		return nil, ErrNilProfileRepo
	}
	if notifications == nil {
		return nil, ErrNilNotifRepo
	}
	if clk == nil {
		return nil, ErrNilClock
	}
	if idGen == nil {
		return nil, ErrNilIDGenerator
	}

	return &service{
		config:       cfg,
		inviteRepo:   invites,
		sessionRepo:  sessions,
		presenceRepo: presences,
		profileRepo:  profiles,
		notifRepo:    notifications,
		clock:        clk,
		idGen:        idGen,
	}, nil
}

// SendInvite creates a pending invite, creating a session first when the
// sender has none
func (s *service) SendInvite(ctx context.Context, input *SendInviteInput) (*SendInviteOutput, error) {
	if input == nil || input.From.UID == "" || input.ToUID == "" {
		return nil, ErrInvalidUser
	}

	out := &SendInviteOutput{SessionID: input.TeamSessionID}

	if out.SessionID == "" {
		sess, err := s.createSession(ctx, input.From, nil)
		if err != nil {
			return nil, err
		}
		out.SessionID = sess.ID
		out.Session = sess

		if input.SeedPresence {
			// Best-effort; the heartbeat rewrites this shortly.
			_ = s.presenceRepo.UpsertPresence(ctx, &presenceRepo.UpsertPresenceInput{
				Record: &models.PresenceRecord{
					SessionID: sess.ID,
					UserID:    input.From.UID,
					Status:    models.PresenceStatusOnline,
					UpdatedAt: s.clock.Now(),
				},
			})
		}
	}

	inv := &models.Invite{
		ID:            s.idGen.NewID(),
		FromUID:       input.From.UID,
		ToUID:         input.ToUID,
		WorkoutData:   input.WorkoutData,
		TeamSessionID: out.SessionID,
		Status:        models.InviteStatusPending,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.inviteRepo.CreateInvite(ctx, &inviteRepo.CreateInviteInput{Invite: inv}); err != nil {
		return nil, fmt.Errorf("failed to send invite: %w", err)
	}
	out.Invite = inv

	// The notification row backs the fallback delivery channel; losing
	// it only costs redundancy.
	_ = s.notifRepo.CreateNotification(ctx, &notificationRepo.CreateNotificationInput{
		Notification: &models.Notification{
			ID:         s.idGen.NewID(),
			UserID:     input.ToUID,
			Type:       models.NotificationTypeInvite,
			SenderName: input.From.DisplayName,
			Text:       fmt.Sprintf("%s invited you to train together.", input.From.DisplayName),
			CreatedAt:  s.clock.Now(),
		},
	})

	return out, nil
}

// AcceptInvite validates a pending invite, adds the acceptor to the roster
// and resolves the workout payload
func (s *service) AcceptInvite(ctx context.Context, input *AcceptInviteInput) (*AcceptInviteOutput, error) {
	if input == nil || input.InviteID == "" || input.User.UID == "" {
		return nil, ErrInvalidInvite
	}

	inv, err := s.inviteRepo.GetInvite(ctx, &inviteRepo.GetInviteInput{InviteID: input.InviteID})
	if err != nil {
		if errors.Is(err, inviteRepo.ErrInviteNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}

	if inv.ToUID != input.User.UID {
		return nil, ErrInvalidInvite
	}

	if inv.Status != models.InviteStatusPending {
		return nil, ErrInviteResolved
	}

	sess, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: inv.TeamSessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if sess.Status != models.SessionStatusActive {
		return nil, ErrSessionClosed
	}

	if err := s.addParticipant(ctx, sess, input.User); err != nil {
		return nil, err
	}

	if _, err := s.inviteRepo.UpdateInviteStatus(ctx, &inviteRepo.UpdateInviteStatusInput{
		InviteID: inv.ID,
		Status:   models.InviteStatusAccepted,
	}); err != nil {
		if errors.Is(err, inviteRepo.ErrInviteResolved) {
			return nil, ErrInviteResolved
		}
		return nil, err
	}

	workout := inv.WorkoutData
	if len(workout) == 0 && sess.WorkoutState != nil {
		workout = sess.WorkoutState.WorkoutData
	}

	return &AcceptInviteOutput{
		SessionID:    sess.ID,
		HostUID:      sess.HostUID,
		Participants: sess.Participants,
		WorkoutData:  workout,
	}, nil
}

// RejectInvite resolves a pending invite to rejected
func (s *service) RejectInvite(ctx context.Context, input *RejectInviteInput) error {
	if input == nil || input.InviteID == "" {
		return ErrInvalidInvite
	}

	inv, err := s.inviteRepo.GetInvite(ctx, &inviteRepo.GetInviteInput{InviteID: input.InviteID})
	if err != nil {
		if errors.Is(err, inviteRepo.ErrInviteNotFound) {
			return ErrInviteNotFound
		}
		return err
	}

	if input.UserID != "" && inv.ToUID != input.UserID {
		return ErrInvalidInvite
	}

	if _, err := s.inviteRepo.UpdateInviteStatus(ctx, &inviteRepo.UpdateInviteStatusInput{
		InviteID: input.InviteID,
		Status:   models.InviteStatusRejected,
	}); err != nil {
		if errors.Is(err, inviteRepo.ErrInviteResolved) {
			return ErrInviteResolved
		}
		return err
	}

	return nil
}

// ListPendingInvites lists pending invites addressed to a user, enriched
// with sender profiles
func (s *service) ListPendingInvites(ctx context.Context, input *ListPendingInvitesInput) (*ListPendingInvitesOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidUser
	}

	out, err := s.inviteRepo.ListPendingByRecipient(ctx, &inviteRepo.ListPendingByRecipientInput{
		UserID: input.UserID,
	})
	if err != nil {
		return nil, err
	}

	enriched := make([]*IncomingInvite, 0, len(out.Invites))
	for _, inv := range out.Invites {
		entry := &IncomingInvite{
			Invite:   inv,
			FromName: fallbackSenderName,
		}
		if p, err := s.profileRepo.GetProfile(ctx, &profileRepo.GetProfileInput{UserID: inv.FromUID}); err == nil {
			if p.DisplayName != "" {
				entry.FromName = p.DisplayName
			}
			entry.FromPhoto = p.PhotoURL
		}
		enriched = append(enriched, entry)
	}

	return &ListPendingInvitesOutput{Invites: enriched}, nil
}

// ListAcceptedInvites lists accepted invites a sender issued for one session
func (s *service) ListAcceptedInvites(ctx context.Context, input *ListAcceptedInvitesInput) (*ListAcceptedInvitesOutput, error) {
	if input == nil || input.FromUID == "" || input.SessionID == "" {
		return nil, ErrInvalidUser
	}

	out, err := s.inviteRepo.ListAcceptedBySession(ctx, &inviteRepo.ListAcceptedBySessionInput{
		FromUID:   input.FromUID,
		SessionID: input.SessionID,
	})
	if err != nil {
		return nil, err
	}

	return &ListAcceptedInvitesOutput{Invites: out.Invites}, nil
}

// CreateJoinCode attaches a fresh admission code to a session
func (s *service) CreateJoinCode(ctx context.Context, input *CreateJoinCodeInput) (*CreateJoinCodeOutput, error) {
	if input == nil || input.Host.UID == "" {
		return nil, ErrInvalidUser
	}

	ttlMinutes := input.TTLMinutes
	if ttlMinutes <= 0 {
		ttlMinutes = s.config.DefaultCodeTTLMinutes
	}
	if ttlMinutes < s.config.MinCodeTTLMinutes {
		ttlMinutes = s.config.MinCodeTTLMinutes
	}

	code := s.idGen.NewJoinCode()
	now := s.clock.Now()
	ttl := time.Duration(ttlMinutes) * time.Minute
	expiresAt := now.Add(ttl)

	out := &CreateJoinCodeOutput{
		SessionID: input.SessionID,
		Code:      code,
		ExpiresAt: expiresAt,
	}

	if out.SessionID == "" {
		sess, err := s.createSession(ctx, input.Host, nil)
		if err != nil {
			return nil, err
		}
		out.SessionID = sess.ID
		out.Session = sess
	}

	if _, err := s.sessionRepo.SetJoinCode(ctx, &sessionRepo.SetJoinCodeInput{
		SessionID:   out.SessionID,
		Code:        code,
		ExpiresAt:   expiresAt,
		TTL:         ttl,
		WorkoutData: input.WorkoutData,
	}); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return out, nil
}

// JoinByCode admits a user into the session a code resolves to
func (s *service) JoinByCode(ctx context.Context, input *JoinByCodeInput) (*JoinByCodeOutput, error) {
	if input == nil || input.User.UID == "" {
		return nil, ErrInvalidUser
	}

	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, ErrInvalidCode
	}

	sess, err := s.sessionRepo.GetSessionByCode(ctx, &sessionRepo.GetSessionByCodeInput{Code: code})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrCodeNotFound) || errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	if sess.Status != models.SessionStatusActive {
		return nil, ErrSessionClosed
	}

	if sess.WorkoutState != nil && !sess.WorkoutState.JoinExpiresAt.IsZero() && s.clock.Now().After(sess.WorkoutState.JoinExpiresAt) {
		return nil, ErrCodeExpired
	}

	if err := s.addParticipant(ctx, sess, input.User); err != nil {
		return nil, err
	}

	var workout json.RawMessage
	if sess.WorkoutState != nil {
		workout = sess.WorkoutState.WorkoutData
	}

	return &JoinByCodeOutput{
		SessionID:    sess.ID,
		HostUID:      sess.HostUID,
		Participants: sess.Participants,
		WorkoutData:  workout,
	}, nil
}

// LeaveSession removes a participant from the roster
func (s *service) LeaveSession(ctx context.Context, input *LeaveSessionInput) error {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return ErrInvalidUser
	}

	sess, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: input.SessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	remaining := make([]models.Participant, 0, len(sess.Participants))
	for _, p := range sess.Participants {
		if p.UID != input.UserID {
			remaining = append(remaining, p)
		}
	}
	sess.Participants = remaining

	if input.UserID == sess.HostUID {
		sess.Status = models.SessionStatusEnded
	} else if len(sess.Participants) == 0 {
		sess.Status = models.SessionStatusFinished
	}
	sess.UpdatedAt = s.clock.Now()

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		return err
	}

	_ = s.presenceRepo.DeletePresence(ctx, &presenceRepo.DeletePresenceInput{
		SessionID: input.SessionID,
		UserID:    input.UserID,
	})
	if sess.Status != models.SessionStatusActive {
		_ = s.presenceRepo.DeleteSessionPresence(ctx, &presenceRepo.DeleteSessionPresenceInput{
			SessionID: input.SessionID,
		})
	}

	return nil
}

// EndSession flips a session to ended. Host only.
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) error {
	if input == nil || input.SessionID == "" || input.HostUID == "" {
		return ErrInvalidUser
	}

	sess, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: input.SessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	if sess.HostUID != input.HostUID {
		return ErrNotHost
	}

	sess.Status = models.SessionStatusEnded
	sess.UpdatedAt = s.clock.Now()

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		return err
	}

	_ = s.presenceRepo.DeleteSessionPresence(ctx, &presenceRepo.DeleteSessionPresenceInput{
		SessionID: input.SessionID,
	})

	return nil
}

// GetSession retrieves a session by ID
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*models.TeamSession, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrSessionNotFound
	}

	sess, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: input.SessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return sess, nil
}

// UpsertPresence writes a participant's heartbeat record
func (s *service) UpsertPresence(ctx context.Context, input *UpsertPresenceInput) error {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return ErrInvalidUser
	}

	status := input.Status
	if status == "" {
		status = models.PresenceStatusOnline
	}

	return s.presenceRepo.UpsertPresence(ctx, &presenceRepo.UpsertPresenceInput{
		Record: &models.PresenceRecord{
			SessionID: input.SessionID,
			UserID:    input.UserID,
			Status:    status,
			UpdatedAt: s.clock.Now(),
		},
	})
}

// ListPresence retrieves the presence table for a session
func (s *service) ListPresence(ctx context.Context, input *ListPresenceInput) (*ListPresenceOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrSessionNotFound
	}

	out, err := s.presenceRepo.ListPresence(ctx, &presenceRepo.ListPresenceInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		return nil, err
	}

	return &ListPresenceOutput{Records: out.Records}, nil
}

// GetProfile retrieves a user's public profile
func (s *service) GetProfile(ctx context.Context, input *GetProfileInput) (*models.Profile, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidUser
	}

	return s.profileRepo.GetProfile(ctx, &profileRepo.GetProfileInput{UserID: input.UserID})
}

// ListNotifications lists a user's notifications, newest first
func (s *service) ListNotifications(ctx context.Context, input *ListNotificationsInput) (*ListNotificationsOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidUser
	}

	out, err := s.notifRepo.ListByUser(ctx, &notificationRepo.ListByUserInput{
		UserID: input.UserID,
	})
	if err != nil {
		return nil, err
	}

	return &ListNotificationsOutput{Notifications: out.Notifications}, nil
}

// MarkInviteNotificationsRead marks a user's invite notifications read
func (s *service) MarkInviteNotificationsRead(ctx context.Context, input *MarkInviteNotificationsReadInput) error {
	if input == nil || input.UserID == "" {
		return ErrInvalidUser
	}

	return s.notifRepo.MarkInviteRead(ctx, &notificationRepo.MarkInviteReadInput{
		UserID: input.UserID,
	})
}

// createSession creates an active session hosted by the given user with a
// singleton roster.
func (s *service) createSession(ctx context.Context, host models.UserIdentity, state *models.WorkoutState) (*models.TeamSession, error) {
	now := s.clock.Now()
	sess := &models.TeamSession{
		ID:      s.idGen.NewID(),
		HostUID: host.UID,
		Status:  models.SessionStatusActive,
		Participants: []models.Participant{
			{UID: host.UID, Name: host.DisplayName, Photo: host.PhotoURL},
		},
		WorkoutState: state,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{Session: sess}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sess, nil
}

// addParticipant appends a user to the roster if absent and persists the
// session. Roster writes resolve last-write-wins; the periodic refetch
// heals a lost update.
func (s *service) addParticipant(ctx context.Context, sess *models.TeamSession, user models.UserIdentity) error {
	if sess.HasParticipant(user.UID) {
		return nil
	}

	sess.Participants = append(sess.Participants, models.Participant{
		UID:   user.UID,
		Name:  user.DisplayName,
		Photo: user.PhotoURL,
	})
	sess.UpdatedAt = s.clock.Now()

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		return fmt.Errorf("failed to update roster: %w", err)
	}

	return nil
}
