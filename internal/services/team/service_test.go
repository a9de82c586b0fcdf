package team

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fitforge/teamsync/internal/common/clock/mocks"
	idMocks "github.com/fitforge/teamsync/internal/common/identifier/mocks"
	"github.com/fitforge/teamsync/internal/models"
	inviteRepo "github.com/fitforge/teamsync/internal/repositories/invite"
	inviteMocks "github.com/fitforge/teamsync/internal/repositories/invite/mocks"
	notificationMocks "github.com/fitforge/teamsync/internal/repositories/notification/mocks"
	presenceRepo "github.com/fitforge/teamsync/internal/repositories/presence"
	presenceMocks "github.com/fitforge/teamsync/internal/repositories/presence/mocks"
	profileRepo "github.com/fitforge/teamsync/internal/repositories/profile"
	profileMocks "github.com/fitforge/teamsync/internal/repositories/profile/mocks"
	sessionRepo "github.com/fitforge/teamsync/internal/repositories/session"
	sessionMocks "github.com/fitforge/teamsync/internal/repositories/session/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type TeamServiceTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockInviteRepo   *inviteMocks.MockRepository
	mockSessionRepo  *sessionMocks.MockRepository
	mockPresenceRepo *presenceMocks.MockRepository
	mockProfileRepo  *profileMocks.MockRepository
	mockNotifRepo    *notificationMocks.MockRepository
	mockClock        *mocks.MockClock
	mockIDGen        *idMocks.MockGenerator
	teamService      Service
	ctx              context.Context

	// Test data
	testTime      time.Time
	testSessionID string
	testInviteID  string
	testHostUID   string
	testHostName  string
	testGuestUID  string
	testGuestName string
	testWorkout   json.RawMessage

	// Reusable test fixtures
	activeSession *models.TeamSession
	pendingInvite *models.Invite
}

func (s *TeamServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockInviteRepo = inviteMocks.NewMockRepository(s.mockCtrl)
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockPresenceRepo = presenceMocks.NewMockRepository(s.mockCtrl)
	s.mockProfileRepo = profileMocks.NewMockRepository(s.mockCtrl)
	s.mockNotifRepo = notificationMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockIDGen = idMocks.NewMockGenerator(s.mockCtrl)

	s.ctx = context.Background()

	s.testTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	s.testSessionID = "test-session-id"
	s.testInviteID = "test-invite-id"
	s.testHostUID = "host-uid"
	s.testHostName = "Host Hannah"
	s.testGuestUID = "guest-uid"
	s.testGuestName = "Guest Gary"
	s.testWorkout = json.RawMessage(`{"name":"Leg Day"}`)

	s.activeSession = &models.TeamSession{
		ID:      s.testSessionID,
		HostUID: s.testHostUID,
		Status:  models.SessionStatusActive,
		Participants: []models.Participant{
			{UID: s.testHostUID, Name: s.testHostName},
		},
		CreatedAt: s.testTime,
		UpdatedAt: s.testTime,
	}

	s.pendingInvite = &models.Invite{
		ID:            s.testInviteID,
		FromUID:       s.testHostUID,
		ToUID:         s.testGuestUID,
		WorkoutData:   s.testWorkout,
		TeamSessionID: s.testSessionID,
		Status:        models.InviteStatusPending,
		CreatedAt:     s.testTime,
	}

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	svc, err := NewService(&Config{},
		s.mockInviteRepo, s.mockSessionRepo, s.mockPresenceRepo,
		s.mockProfileRepo, s.mockNotifRepo, s.mockClock, s.mockIDGen)
	s.Require().NoError(err)
	s.teamService = svc
}

func (s *TeamServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTeamServiceSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}

func (s *TeamServiceTestSuite) TestNewService_NilDeps() {
	_, err := NewService(nil, s.mockInviteRepo, s.mockSessionRepo, s.mockPresenceRepo, s.mockProfileRepo, s.mockNotifRepo, s.mockClock, s.mockIDGen)
	s.Equal(ErrNilConfig, err)

	_, err = NewService(&Config{}, nil, s.mockSessionRepo, s.mockPresenceRepo, s.mockProfileRepo, s.mockNotifRepo, s.mockClock, s.mockIDGen)
	s.Equal(ErrNilInviteRepo, err)

	_, err = NewService(&Config{}, s.mockInviteRepo, s.mockSessionRepo, s.mockPresenceRepo, s.mockProfileRepo, s.mockNotifRepo, nil, s.mockIDGen)
	s.Equal(ErrNilClock, err)

	_, err = NewService(&Config{}, s.mockInviteRepo, s.mockSessionRepo, s.mockPresenceRepo, s.mockProfileRepo, s.mockNotifRepo, s.mockClock, nil)
	s.Equal(ErrNilIDGenerator, err)
}

func (s *TeamServiceTestSuite) TestSendInvite_CreatesSession() {
	s.mockIDGen.EXPECT().NewID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().CreateSession(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.CreateSessionInput) error {
			s.Equal(s.testSessionID, input.Session.ID)
			s.Equal(s.testHostUID, input.Session.HostUID)
			s.Equal(models.SessionStatusActive, input.Session.Status)
			s.Len(input.Session.Participants, 1)
			s.Equal(s.testHostUID, input.Session.Participants[0].UID)
			return nil
		})
	s.mockPresenceRepo.EXPECT().UpsertPresence(s.ctx, &presenceRepo.UpsertPresenceInput{
		Record: &models.PresenceRecord{
			SessionID: s.testSessionID,
			UserID:    s.testHostUID,
			Status:    models.PresenceStatusOnline,
			UpdatedAt: s.testTime,
		},
	}).Return(nil)
	s.mockIDGen.EXPECT().NewID().Return(s.testInviteID)
	s.mockInviteRepo.EXPECT().CreateInvite(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *inviteRepo.CreateInviteInput) error {
			s.Equal(s.testInviteID, input.Invite.ID)
			s.Equal(s.testGuestUID, input.Invite.ToUID)
			s.Equal(s.testSessionID, input.Invite.TeamSessionID)
			s.Equal(models.InviteStatusPending, input.Invite.Status)
			return nil
		})
	s.mockIDGen.EXPECT().NewID().Return("notif-id")
	s.mockNotifRepo.EXPECT().CreateNotification(s.ctx, gomock.Any()).Return(nil)

	out, err := s.teamService.SendInvite(s.ctx, &SendInviteInput{
		From:         models.UserIdentity{UID: s.testHostUID, DisplayName: s.testHostName},
		ToUID:        s.testGuestUID,
		WorkoutData:  s.testWorkout,
		SeedPresence: true,
	})

	s.NoError(err)
	s.Equal(s.testSessionID, out.SessionID)
	s.NotNil(out.Session)
	s.Equal(s.testInviteID, out.Invite.ID)
}

func (s *TeamServiceTestSuite) TestSendInvite_ReusesSession() {
	s.mockIDGen.EXPECT().NewID().Return(s.testInviteID)
	s.mockInviteRepo.EXPECT().CreateInvite(s.ctx, gomock.Any()).Return(nil)
	s.mockIDGen.EXPECT().NewID().Return("notif-id")
	s.mockNotifRepo.EXPECT().CreateNotification(s.ctx, gomock.Any()).Return(nil)

	out, err := s.teamService.SendInvite(s.ctx, &SendInviteInput{
		From:          models.UserIdentity{UID: s.testHostUID},
		ToUID:         s.testGuestUID,
		TeamSessionID: s.testSessionID,
	})

	s.NoError(err)
	s.Equal(s.testSessionID, out.SessionID)
	s.Nil(out.Session)
}

func (s *TeamServiceTestSuite) TestSendInvite_MissingUser() {
	_, err := s.teamService.SendInvite(s.ctx, &SendInviteInput{ToUID: s.testGuestUID})
	s.Equal(ErrInvalidUser, err)
}

func (s *TeamServiceTestSuite) TestAcceptInvite() {
	s.mockInviteRepo.EXPECT().GetInvite(s.ctx, &inviteRepo.GetInviteInput{InviteID: s.testInviteID}).
		Return(s.pendingInvite, nil)
	s.mockSessionRepo.EXPECT().GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(s.activeSession, nil)
	s.mockSessionRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SaveSessionInput) error {
			s.Len(input.Session.Participants, 2)
			s.Equal(s.testGuestUID, input.Session.Participants[1].UID)
			return nil
		})
	s.mockInviteRepo.EXPECT().UpdateInviteStatus(s.ctx, &inviteRepo.UpdateInviteStatusInput{
		InviteID: s.testInviteID,
		Status:   models.InviteStatusAccepted,
	}).Return(s.pendingInvite, nil)

	out, err := s.teamService.AcceptInvite(s.ctx, &AcceptInviteInput{
		InviteID: s.testInviteID,
		User:     models.UserIdentity{UID: s.testGuestUID, DisplayName: s.testGuestName},
	})

	s.NoError(err)
	s.Equal(s.testSessionID, out.SessionID)
	s.Len(out.Participants, 2)
	s.Equal(s.testWorkout, out.WorkoutData)
}

func (s *TeamServiceTestSuite) TestAcceptInvite_WrongRecipient() {
	s.mockInviteRepo.EXPECT().GetInvite(s.ctx, gomock.Any()).Return(s.pendingInvite, nil)

	_, err := s.teamService.AcceptInvite(s.ctx, &AcceptInviteInput{
		InviteID: s.testInviteID,
		User:     models.UserIdentity{UID: "somebody-else"},
	})

	s.Equal(ErrInvalidInvite, err)
}

func (s *TeamServiceTestSuite) TestAcceptInvite_AlreadyResolved() {
	s.pendingInvite.Status = models.InviteStatusRejected
	s.mockInviteRepo.EXPECT().GetInvite(s.ctx, gomock.Any()).Return(s.pendingInvite, nil)

	_, err := s.teamService.AcceptInvite(s.ctx, &AcceptInviteInput{
		InviteID: s.testInviteID,
		User:     models.UserIdentity{UID: s.testGuestUID},
	})

	s.Equal(ErrInviteResolved, err)
}

func (s *TeamServiceTestSuite) TestAcceptInvite_SessionClosed() {
	s.activeSession.Status = models.SessionStatusEnded
	s.mockInviteRepo.EXPECT().GetInvite(s.ctx, gomock.Any()).Return(s.pendingInvite, nil)
	s.mockSessionRepo.EXPECT().GetSession(s.ctx, gomock.Any()).Return(s.activeSession, nil)

	_, err := s.teamService.AcceptInvite(s.ctx, &AcceptInviteInput{
		InviteID: s.testInviteID,
		User:     models.UserIdentity{UID: s.testGuestUID},
	})

	s.Equal(ErrSessionClosed, err)
}

func (s *TeamServiceTestSuite) TestAcceptInvite_NotFound() {
	s.mockInviteRepo.EXPECT().GetInvite(s.ctx, gomock.Any()).
		Return(nil, inviteRepo.ErrInviteNotFound)

	_, err := s.teamService.AcceptInvite(s.ctx, &AcceptInviteInput{
		InviteID: "missing",
		User:     models.UserIdentity{UID: s.testGuestUID},
	})

	s.Equal(ErrInviteNotFound, err)
}

func (s *TeamServiceTestSuite) TestRejectInvite() {
	s.mockInviteRepo.EXPECT().GetInvite(s.ctx, gomock.Any()).Return(s.pendingInvite, nil)
	s.mockInviteRepo.EXPECT().UpdateInviteStatus(s.ctx, &inviteRepo.UpdateInviteStatusInput{
		InviteID: s.testInviteID,
		Status:   models.InviteStatusRejected,
	}).Return(s.pendingInvite, nil)

	err := s.teamService.RejectInvite(s.ctx, &RejectInviteInput{
		InviteID: s.testInviteID,
		UserID:   s.testGuestUID,
	})

	s.NoError(err)
}

func (s *TeamServiceTestSuite) TestRejectInvite_RaceWithAccept() {
	s.mockInviteRepo.EXPECT().GetInvite(s.ctx, gomock.Any()).Return(s.pendingInvite, nil)
	s.mockInviteRepo.EXPECT().UpdateInviteStatus(s.ctx, gomock.Any()).
		Return(nil, inviteRepo.ErrInviteResolved)

	err := s.teamService.RejectInvite(s.ctx, &RejectInviteInput{InviteID: s.testInviteID})

	s.Equal(ErrInviteResolved, err)
}

func (s *TeamServiceTestSuite) TestListPendingInvites_ProfileFallback() {
	other := &models.Invite{ID: "other-invite", FromUID: "stranger-uid", ToUID: s.testGuestUID, Status: models.InviteStatusPending}
	s.mockInviteRepo.EXPECT().ListPendingByRecipient(s.ctx, &inviteRepo.ListPendingByRecipientInput{UserID: s.testGuestUID}).
		Return(&inviteRepo.ListPendingByRecipientOutput{Invites: []*models.Invite{s.pendingInvite, other}}, nil)
	s.mockProfileRepo.EXPECT().GetProfile(s.ctx, &profileRepo.GetProfileInput{UserID: s.testHostUID}).
		Return(&models.Profile{ID: s.testHostUID, DisplayName: s.testHostName, PhotoURL: "http://p"}, nil)
	s.mockProfileRepo.EXPECT().GetProfile(s.ctx, &profileRepo.GetProfileInput{UserID: "stranger-uid"}).
		Return(nil, profileRepo.ErrProfileNotFound)

	out, err := s.teamService.ListPendingInvites(s.ctx, &ListPendingInvitesInput{UserID: s.testGuestUID})

	s.NoError(err)
	s.Len(out.Invites, 2)
	s.Equal(s.testHostName, out.Invites[0].FromName)
	s.Equal("http://p", out.Invites[0].FromPhoto)
	s.Equal("Unknown", out.Invites[1].FromName)
}

func (s *TeamServiceTestSuite) TestCreateJoinCode_Defaults() {
	s.mockIDGen.EXPECT().NewJoinCode().Return("ABC234")
	s.mockIDGen.EXPECT().NewID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().CreateSession(s.ctx, gomock.Any()).Return(nil)
	s.mockSessionRepo.EXPECT().SetJoinCode(s.ctx, &sessionRepo.SetJoinCodeInput{
		SessionID:   s.testSessionID,
		Code:        "ABC234",
		ExpiresAt:   s.testTime.Add(90 * time.Minute),
		TTL:         90 * time.Minute,
		WorkoutData: s.testWorkout,
	}).Return(s.activeSession, nil)

	out, err := s.teamService.CreateJoinCode(s.ctx, &CreateJoinCodeInput{
		Host:        models.UserIdentity{UID: s.testHostUID, DisplayName: s.testHostName},
		WorkoutData: s.testWorkout,
	})

	s.NoError(err)
	s.Equal("ABC234", out.Code)
	s.Equal(s.testTime.Add(90*time.Minute), out.ExpiresAt)
	s.Equal(s.testSessionID, out.SessionID)
}

func (s *TeamServiceTestSuite) TestCreateJoinCode_FloorsTTL() {
	s.mockIDGen.EXPECT().NewJoinCode().Return("XYZ789")
	s.mockSessionRepo.EXPECT().SetJoinCode(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SetJoinCodeInput) (*models.TeamSession, error) {
			s.Equal(10*time.Minute, input.TTL)
			return s.activeSession, nil
		})

	out, err := s.teamService.CreateJoinCode(s.ctx, &CreateJoinCodeInput{
		Host:       models.UserIdentity{UID: s.testHostUID},
		SessionID:  s.testSessionID,
		TTLMinutes: 3,
	})

	s.NoError(err)
	s.Equal(s.testTime.Add(10*time.Minute), out.ExpiresAt)
}

func (s *TeamServiceTestSuite) TestJoinByCode() {
	s.activeSession.WorkoutState = &models.WorkoutState{
		WorkoutData:   s.testWorkout,
		JoinCode:      "ABC234",
		JoinExpiresAt: s.testTime.Add(time.Hour),
	}
	s.mockSessionRepo.EXPECT().GetSessionByCode(s.ctx, &sessionRepo.GetSessionByCodeInput{Code: "abc234"}).
		Return(s.activeSession, nil)
	s.mockSessionRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).Return(nil)

	out, err := s.teamService.JoinByCode(s.ctx, &JoinByCodeInput{
		Code: "  abc234 ",
		User: models.UserIdentity{UID: s.testGuestUID, DisplayName: s.testGuestName},
	})

	s.NoError(err)
	s.Equal(s.testSessionID, out.SessionID)
	s.Len(out.Participants, 2)
	s.Equal(s.testWorkout, out.WorkoutData)
}

func (s *TeamServiceTestSuite) TestJoinByCode_Unknown() {
	s.mockSessionRepo.EXPECT().GetSessionByCode(s.ctx, gomock.Any()).
		Return(nil, sessionRepo.ErrCodeNotFound)

	_, err := s.teamService.JoinByCode(s.ctx, &JoinByCodeInput{
		Code: "NOPE99",
		User: models.UserIdentity{UID: s.testGuestUID},
	})

	s.Equal(ErrInvalidCode, err)
}

func (s *TeamServiceTestSuite) TestJoinByCode_Expired() {
	s.activeSession.WorkoutState = &models.WorkoutState{
		JoinCode:      "ABC234",
		JoinExpiresAt: s.testTime.Add(-time.Minute),
	}
	s.mockSessionRepo.EXPECT().GetSessionByCode(s.ctx, gomock.Any()).Return(s.activeSession, nil)

	_, err := s.teamService.JoinByCode(s.ctx, &JoinByCodeInput{
		Code: "ABC234",
		User: models.UserIdentity{UID: s.testGuestUID},
	})

	s.Equal(ErrCodeExpired, err)
}

func (s *TeamServiceTestSuite) TestJoinByCode_AlreadyMember() {
	s.activeSession.WorkoutState = &models.WorkoutState{JoinCode: "ABC234"}
	s.mockSessionRepo.EXPECT().GetSessionByCode(s.ctx, gomock.Any()).Return(s.activeSession, nil)
	// No SaveSession: the roster already holds the user.

	out, err := s.teamService.JoinByCode(s.ctx, &JoinByCodeInput{
		Code: "ABC234",
		User: models.UserIdentity{UID: s.testHostUID},
	})

	s.NoError(err)
	s.Len(out.Participants, 1)
}

func (s *TeamServiceTestSuite) TestLeaveSession_GuestLeaves() {
	s.activeSession.Participants = append(s.activeSession.Participants,
		models.Participant{UID: s.testGuestUID, Name: s.testGuestName})
	s.mockSessionRepo.EXPECT().GetSession(s.ctx, gomock.Any()).Return(s.activeSession, nil)
	s.mockSessionRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SaveSessionInput) error {
			s.Len(input.Session.Participants, 1)
			s.Equal(models.SessionStatusActive, input.Session.Status)
			return nil
		})
	s.mockPresenceRepo.EXPECT().DeletePresence(s.ctx, &presenceRepo.DeletePresenceInput{
		SessionID: s.testSessionID,
		UserID:    s.testGuestUID,
	}).Return(nil)

	err := s.teamService.LeaveSession(s.ctx, &LeaveSessionInput{
		SessionID: s.testSessionID,
		UserID:    s.testGuestUID,
	})

	s.NoError(err)
}

func (s *TeamServiceTestSuite) TestLeaveSession_HostEndsSession() {
	s.activeSession.Participants = append(s.activeSession.Participants,
		models.Participant{UID: s.testGuestUID})
	s.mockSessionRepo.EXPECT().GetSession(s.ctx, gomock.Any()).Return(s.activeSession, nil)
	s.mockSessionRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SaveSessionInput) error {
			s.Equal(models.SessionStatusEnded, input.Session.Status)
			return nil
		})
	s.mockPresenceRepo.EXPECT().DeletePresence(s.ctx, gomock.Any()).Return(nil)
	s.mockPresenceRepo.EXPECT().DeleteSessionPresence(s.ctx, &presenceRepo.DeleteSessionPresenceInput{
		SessionID: s.testSessionID,
	}).Return(nil)

	err := s.teamService.LeaveSession(s.ctx, &LeaveSessionInput{
		SessionID: s.testSessionID,
		UserID:    s.testHostUID,
	})

	s.NoError(err)
}

func (s *TeamServiceTestSuite) TestEndSession() {
	s.mockSessionRepo.EXPECT().GetSession(s.ctx, gomock.Any()).Return(s.activeSession, nil)
	s.mockSessionRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SaveSessionInput) error {
			s.Equal(models.SessionStatusEnded, input.Session.Status)
			return nil
		})
	s.mockPresenceRepo.EXPECT().DeleteSessionPresence(s.ctx, &presenceRepo.DeleteSessionPresenceInput{
		SessionID: s.testSessionID,
	}).Return(nil)

	err := s.teamService.EndSession(s.ctx, &EndSessionInput{
		SessionID: s.testSessionID,
		HostUID:   s.testHostUID,
	})

	s.NoError(err)
}

func (s *TeamServiceTestSuite) TestEndSession_NotHost() {
	s.mockSessionRepo.EXPECT().GetSession(s.ctx, gomock.Any()).Return(s.activeSession, nil)

	err := s.teamService.EndSession(s.ctx, &EndSessionInput{
		SessionID: s.testSessionID,
		HostUID:   s.testGuestUID,
	})

	s.Equal(ErrNotHost, err)
}

func (s *TeamServiceTestSuite) TestUpsertPresence_DefaultsOnline() {
	s.mockPresenceRepo.EXPECT().UpsertPresence(s.ctx, &presenceRepo.UpsertPresenceInput{
		Record: &models.PresenceRecord{
			SessionID: s.testSessionID,
			UserID:    s.testGuestUID,
			Status:    models.PresenceStatusOnline,
			UpdatedAt: s.testTime,
		},
	}).Return(nil)

	err := s.teamService.UpsertPresence(s.ctx, &UpsertPresenceInput{
		SessionID: s.testSessionID,
		UserID:    s.testGuestUID,
	})

	s.NoError(err)
}
