package coordinator

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/fitforge/teamsync/internal/common/clock"
	"github.com/fitforge/teamsync/internal/common/identifier"
	"github.com/fitforge/teamsync/internal/models"
	"github.com/fitforge/teamsync/internal/realtime"
	inviteRepo "github.com/fitforge/teamsync/internal/repositories/invite"
	notificationRepo "github.com/fitforge/teamsync/internal/repositories/notification"
	presenceRepo "github.com/fitforge/teamsync/internal/repositories/presence"
	profileRepo "github.com/fitforge/teamsync/internal/repositories/profile"
	sessionRepo "github.com/fitforge/teamsync/internal/repositories/session"
	"github.com/fitforge/teamsync/internal/services/team"
)

// countingService wraps the real service to observe call counts
type countingService struct {
	team.Service
	joinCalls atomic.Int32
}

func (c *countingService) JoinByCode(ctx context.Context, input *team.JoinByCodeInput) (*team.JoinByCodeOutput, error) {
	c.joinCalls.Add(1)
	return c.Service.JoinByCode(ctx, input)
}

type CoordinatorTestSuite struct {
	suite.Suite
	mr       *miniredis.Miniredis
	client   *redis.Client
	bus      realtime.Feed
	service  *countingService
	presence presenceRepo.Repository
	profiles profileRepo.Repository
	ctx      context.Context

	hostUser  models.UserIdentity
	guestUser models.UserIdentity
	workout   json.RawMessage
}

func (s *CoordinatorTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	bus, err := realtime.NewRedis(&realtime.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.bus = bus

	invites, err := inviteRepo.NewRedis(&inviteRepo.Config{RedisClient: s.client, Publisher: bus})
	s.Require().NoError(err)
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: s.client, Publisher: bus})
	s.Require().NoError(err)
	presences, err := presenceRepo.NewRedis(&presenceRepo.Config{RedisClient: s.client, Publisher: bus})
	s.Require().NoError(err)
	profiles, err := profileRepo.NewRedis(&profileRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	notifications, err := notificationRepo.NewRedis(&notificationRepo.Config{RedisClient: s.client, Publisher: bus})
	s.Require().NoError(err)
	s.presence = presences
	s.profiles = profiles

	svc, err := team.NewService(&team.Config{},
		invites, sessions, presences, profiles, notifications,
		clock.New(), identifier.New())
	s.Require().NoError(err)
	s.service = &countingService{Service: svc}

	s.ctx = context.Background()
	s.hostUser = models.UserIdentity{UID: "host-uid", DisplayName: "Host Hannah"}
	s.guestUser = models.UserIdentity{UID: "guest-uid", DisplayName: "Guest Gary"}
	s.workout = json.RawMessage(`{"title":"Push Day"}`)

	s.Require().NoError(profiles.SaveProfile(s.ctx, &profileRepo.SaveProfileInput{
		Profile: &models.Profile{ID: s.hostUser.UID, DisplayName: s.hostUser.DisplayName},
	}))
	s.Require().NoError(profiles.SaveProfile(s.ctx, &profileRepo.SaveProfileInput{
		Profile: &models.Profile{ID: s.guestUser.UID, DisplayName: s.guestUser.DisplayName},
	}))
}

func (s *CoordinatorTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}

func (s *CoordinatorTestSuite) newCoordinator(user models.UserIdentity, settings *models.Settings) *Coordinator {
	c, err := New(&Config{
		User:     user,
		Service:  s.service,
		Feed:     s.bus,
		Settings: settings,
	})
	s.Require().NoError(err)
	return c
}

func (s *CoordinatorTestSuite) teamworkSettings() *models.Settings {
	return &models.Settings{AllowTeamInvites: true, TeamworkV2: true, EnableSounds: true}
}

func (s *CoordinatorTestSuite) TestRefetchInvites_Idempotent() {
	host := s.newCoordinator(s.hostUser, nil)
	guest := s.newCoordinator(s.guestUser, nil)

	_, err := host.SendInvite(s.ctx, s.guestUser.UID, s.workout)
	s.Require().NoError(err)

	guest.RefetchInvites(s.ctx)
	first := guest.Invites()
	guest.RefetchInvites(s.ctx)
	second := guest.Invites()

	s.Len(first, 1)
	s.Len(second, 1)
	s.Equal(first[0].Invite.ID, second[0].Invite.ID)
	s.Equal(s.hostUser.DisplayName, second[0].FromName)
}

func (s *CoordinatorTestSuite) TestRefetchInvites_SuppressedBySetting() {
	host := s.newCoordinator(s.hostUser, nil)
	guest := s.newCoordinator(s.guestUser, &models.Settings{AllowTeamInvites: false})

	_, err := host.SendInvite(s.ctx, s.guestUser.UID, s.workout)
	s.Require().NoError(err)

	guest.RefetchInvites(s.ctx)
	s.Empty(guest.Invites())
}

func (s *CoordinatorTestSuite) TestAcceptInvite_AdoptsSessionAndStartsWorkout() {
	host := s.newCoordinator(s.hostUser, nil)
	guest := s.newCoordinator(s.guestUser, nil)

	sessionID, err := host.SendInvite(s.ctx, s.guestUser.UID, s.workout)
	s.Require().NoError(err)

	hostState := host.Session()
	s.Require().NotNil(hostState)
	s.True(hostState.IsHost)
	s.Equal(sessionID, hostState.ID)

	guest.RefetchInvites(s.ctx)
	invites := guest.Invites()
	s.Require().Len(invites, 1)

	var started json.RawMessage
	err = guest.AcceptInvite(s.ctx, invites[0], func(workout json.RawMessage) {
		started = workout
	})
	s.Require().NoError(err)

	s.JSONEq(string(s.workout), string(started))
	s.Empty(guest.Invites())

	guestState := guest.Session()
	s.Require().NotNil(guestState)
	s.False(guestState.IsHost)
	s.Equal(sessionID, guestState.ID)
	s.Equal(s.hostUser.DisplayName, guestState.HostName)
	s.Len(guestState.Participants, 2)
}

func (s *CoordinatorTestSuite) TestRejectAfterAccept_StatusMonotonic() {
	host := s.newCoordinator(s.hostUser, nil)
	guest := s.newCoordinator(s.guestUser, nil)

	_, err := host.SendInvite(s.ctx, s.guestUser.UID, s.workout)
	s.Require().NoError(err)

	guest.RefetchInvites(s.ctx)
	invites := guest.Invites()
	s.Require().Len(invites, 1)

	s.Require().NoError(guest.AcceptInvite(s.ctx, invites[0], nil))

	err = guest.RejectInvite(s.ctx, invites[0].Invite.ID)
	s.Error(err)
	s.ErrorIs(err, team.ErrInviteResolved)
}

func (s *CoordinatorTestSuite) TestAcceptedNotice_ShownExactlyOnceAcrossChannels() {
	var notices atomic.Int32
	host, err := New(&Config{
		User:    s.hostUser,
		Service: s.service,
		Feed:    s.bus,
		Notify: func(title, body string) {
			if title == "Invite accepted" {
				notices.Add(1)
			}
		},
	})
	s.Require().NoError(err)
	guest := s.newCoordinator(s.guestUser, nil)

	sessionID, err := host.SendInvite(s.ctx, s.guestUser.UID, s.workout)
	s.Require().NoError(err)

	guest.RefetchInvites(s.ctx)
	invites := guest.Invites()
	s.Require().Len(invites, 1)
	s.Require().NoError(guest.AcceptInvite(s.ctx, invites[0], nil))

	// Poll path twice, then a simulated realtime delivery of the same
	// acceptance. Only the first sighting may surface.
	host.PollAccepted(s.ctx)
	host.PollAccepted(s.ctx)

	accepted := *invites[0].Invite
	accepted.Status = models.InviteStatusAccepted
	row, err := json.Marshal(&accepted)
	s.Require().NoError(err)
	host.handleSessionEvent(s.ctx, sessionID, realtime.Event{
		Type:  realtime.EventUpdate,
		Table: "invites",
		Row:   row,
	})

	s.Equal(int32(1), notices.Load())

	notice := host.AcceptedNotice()
	s.Require().NotNil(notice)
	s.Equal(s.guestUser.DisplayName, notice.FromName)

	// Dismissal clears the display but never re-arms the notice.
	host.DismissAcceptedInvite()
	s.Nil(host.AcceptedNotice())
	host.PollAccepted(s.ctx)
	s.Nil(host.AcceptedNotice())
}

func (s *CoordinatorTestSuite) TestCreateJoinCode_DisabledWithoutTeamwork() {
	host := s.newCoordinator(s.hostUser, nil)

	res := host.CreateJoinCode(s.ctx, s.workout, 0)

	s.False(res.OK)
	s.Equal("disabled", res.Error)
}

func (s *CoordinatorTestSuite) TestJoinByCode_RoundTrip() {
	host := s.newCoordinator(s.hostUser, s.teamworkSettings())
	guest := s.newCoordinator(s.guestUser, s.teamworkSettings())

	res := host.CreateJoinCode(s.ctx, s.workout, 0)
	s.Require().True(res.OK)
	s.Len(res.Code, identifier.JoinCodeLength)
	s.Contains(res.URL, "?join="+res.Code)

	join := guest.JoinByCode(s.ctx, res.Code)
	s.Require().True(join.OK, join.Error)
	s.Equal(res.SessionID, join.SessionID)
	s.JSONEq(string(s.workout), string(join.Workout))

	state := guest.Session()
	s.Require().NotNil(state)
	s.False(state.IsHost)
	s.Equal(s.hostUser.DisplayName, state.HostName)
}

func (s *CoordinatorTestSuite) TestJoinByCode_SupersededCodeStopsAdmitting() {
	host := s.newCoordinator(s.hostUser, s.teamworkSettings())
	guest := s.newCoordinator(s.guestUser, s.teamworkSettings())

	first := host.CreateJoinCode(s.ctx, s.workout, 0)
	s.Require().True(first.OK)
	second := host.CreateJoinCode(s.ctx, s.workout, 0)
	s.Require().True(second.OK)
	s.Equal(first.SessionID, second.SessionID)

	stale := guest.JoinByCode(s.ctx, first.Code)
	s.False(stale.OK)
	s.NotEmpty(stale.Error)

	fresh := guest.JoinByCode(s.ctx, second.Code)
	s.True(fresh.OK, fresh.Error)
}

func (s *CoordinatorTestSuite) TestConsumeJoinLink_ExactlyOnce() {
	host := s.newCoordinator(s.hostUser, s.teamworkSettings())

	res := host.CreateJoinCode(s.ctx, s.workout, 0)
	s.Require().True(res.OK)

	var started atomic.Int32
	guest, err := New(&Config{
		User:     s.guestUser,
		Service:  s.service,
		Feed:     s.bus,
		Settings: s.teamworkSettings(),
		OnStartSession: func(workout json.RawMessage) {
			started.Add(1)
		},
	})
	s.Require().NoError(err)

	link := "https://app.fitforge.dev/train?join=" + res.Code + "&tab=home"
	before := s.service.joinCalls.Load()

	cleaned, result := guest.ConsumeJoinLink(s.ctx, link)
	s.Require().NotNil(result)
	s.True(result.OK, result.Error)
	s.NotContains(cleaned, "join=")
	s.Contains(cleaned, "tab=home")

	// A second mount cycle with the same URL must not re-join.
	cleanedAgain, resultAgain := guest.ConsumeJoinLink(s.ctx, link)
	s.Nil(resultAgain)
	s.NotContains(cleanedAgain, "join=")

	s.Equal(before+1, s.service.joinCalls.Load())
	s.Equal(int32(1), started.Load())
}

func (s *CoordinatorTestSuite) TestConsumeJoinLink_FailureStillStripsAndConsumes() {
	guest := s.newCoordinator(s.guestUser, s.teamworkSettings())

	link := "https://app.fitforge.dev/train?join=NOPE99"
	before := s.service.joinCalls.Load()

	cleaned, result := guest.ConsumeJoinLink(s.ctx, link)
	s.Require().NotNil(result)
	s.False(result.OK)
	s.NotContains(cleaned, "join=")

	_, resultAgain := guest.ConsumeJoinLink(s.ctx, link)
	s.Nil(resultAgain)
	s.Equal(before+1, s.service.joinCalls.Load())
}

func (s *CoordinatorTestSuite) TestPresence_ConvergesAfterDroppedEvent() {
	host := s.newCoordinator(s.hostUser, s.teamworkSettings())

	res := host.CreateJoinCode(s.ctx, s.workout, 0)
	s.Require().True(res.OK)

	// A presence write whose event the host never saw.
	s.Require().NoError(s.presence.UpsertPresence(s.ctx, &presenceRepo.UpsertPresenceInput{
		Record: &models.PresenceRecord{
			SessionID: res.SessionID,
			UserID:    s.guestUser.UID,
			Status:    models.PresenceStatusAway,
		},
	}))

	host.hydratePresence(s.ctx, res.SessionID)

	table := host.Presence()
	s.Require().Contains(table, s.guestUser.UID)
	s.Equal(models.PresenceStatusAway, table[s.guestUser.UID].Status)
}

func (s *CoordinatorTestSuite) TestLeaveSession_ClearsLocalState() {
	host := s.newCoordinator(s.hostUser, s.teamworkSettings())

	res := host.CreateJoinCode(s.ctx, s.workout, 0)
	s.Require().True(res.OK)
	s.Require().NotNil(host.Session())

	s.Require().NoError(host.LeaveSession(s.ctx))
	s.Nil(host.Session())
	s.Empty(host.Presence())

	// Host leaving ended the session; a late join must fail.
	guest := s.newCoordinator(s.guestUser, s.teamworkSettings())
	join := guest.JoinByCode(s.ctx, res.Code)
	s.False(join.OK)
}

func (s *CoordinatorTestSuite) TestLifecycleEvent_ClearsSessionForEveryone() {
	guest := s.newCoordinator(s.guestUser, s.teamworkSettings())
	host := s.newCoordinator(s.hostUser, s.teamworkSettings())

	res := host.CreateJoinCode(s.ctx, s.workout, 0)
	s.Require().True(res.OK)
	join := guest.JoinByCode(s.ctx, res.Code)
	s.Require().True(join.OK)

	ended := &models.TeamSession{
		ID:      res.SessionID,
		HostUID: s.hostUser.UID,
		Status:  models.SessionStatusEnded,
	}
	row, err := json.Marshal(ended)
	s.Require().NoError(err)

	guest.handleSessionEvent(s.ctx, res.SessionID, realtime.Event{
		Type:  realtime.EventUpdate,
		Table: "team_sessions",
		Row:   row,
	})

	s.Nil(guest.Session())
	s.Nil(guest.AcceptedNotice())
}

func (s *CoordinatorTestSuite) TestInboundInviteEvent_DedupedPrepend() {
	guest := s.newCoordinator(s.guestUser, nil)
	host := s.newCoordinator(s.hostUser, nil)

	_, err := host.SendInvite(s.ctx, s.guestUser.UID, s.workout)
	s.Require().NoError(err)

	guest.RefetchInvites(s.ctx)
	invites := guest.Invites()
	s.Require().Len(invites, 1)

	// The realtime INSERT for an invite already fetched must not
	// duplicate it.
	row, err := json.Marshal(invites[0].Invite)
	s.Require().NoError(err)
	guest.handleUserEvent(s.ctx, realtime.Event{
		Type:  realtime.EventInsert,
		Table: "invites",
		Row:   row,
	})

	s.Len(guest.Invites(), 1)
}
