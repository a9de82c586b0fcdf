package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/fitforge/teamsync/internal/models"
	"github.com/fitforge/teamsync/internal/realtime"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	bus, err := realtime.NewRedis(&realtime.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
		Publisher:   bus,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newSession(id string) *models.TeamSession {
	return &models.TeamSession{
		ID:      id,
		HostUID: "host-uid",
		Status:  models.SessionStatusActive,
		Participants: []models.Participant{
			{UID: "host-uid", Name: "Host"},
		},
		CreatedAt: s.testNow,
		UpdatedAt: s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetSession() {
	sess := s.newSession("session-1")

	err := s.repo.CreateSession(context.Background(), &CreateSessionInput{Session: sess})
	s.Require().NoError(err)

	got, err := s.repo.GetSession(context.Background(), &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal("session-1", got.ID)
	s.Equal("host-uid", got.HostUID)
	s.Equal(models.SessionStatusActive, got.Status)
	s.Require().Len(got.Participants, 1)
	s.Equal("host-uid", got.Participants[0].UID)
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{SessionID: "missing"})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestSetJoinCodeAndResolve() {
	sess := s.newSession("session-1")
	s.Require().NoError(s.repo.CreateSession(context.Background(), &CreateSessionInput{Session: sess}))

	updated, err := s.repo.SetJoinCode(context.Background(), &SetJoinCodeInput{
		SessionID:   "session-1",
		Code:        "ABCDEF",
		ExpiresAt:   s.testNow.Add(90 * time.Minute),
		TTL:         90 * time.Minute,
		WorkoutData: json.RawMessage(`{"title":"Push Day"}`),
	})
	s.Require().NoError(err)
	s.Require().NotNil(updated.WorkoutState)
	s.Equal("ABCDEF", updated.WorkoutState.JoinCode)
	s.JSONEq(`{"title":"Push Day"}`, string(updated.WorkoutState.WorkoutData))

	got, err := s.repo.GetSessionByCode(context.Background(), &GetSessionByCodeInput{Code: "abcdef"})
	s.Require().NoError(err)
	s.Equal("session-1", got.ID)
}

func (s *RedisRepositoryTestSuite) TestSetJoinCodeOverwritesPrevious() {
	sess := s.newSession("session-1")
	s.Require().NoError(s.repo.CreateSession(context.Background(), &CreateSessionInput{Session: sess}))

	_, err := s.repo.SetJoinCode(context.Background(), &SetJoinCodeInput{
		SessionID:   "session-1",
		Code:        "AAAAAA",
		ExpiresAt:   s.testNow.Add(time.Hour),
		TTL:         time.Hour,
		WorkoutData: json.RawMessage(`{"title":"Push Day"}`),
	})
	s.Require().NoError(err)

	_, err = s.repo.SetJoinCode(context.Background(), &SetJoinCodeInput{
		SessionID:   "session-1",
		Code:        "BBBBBB",
		ExpiresAt:   s.testNow.Add(time.Hour),
		TTL:         time.Hour,
		WorkoutData: json.RawMessage(`{"title":"Push Day"}`),
	})
	s.Require().NoError(err)

	// Only the newest code resolves.
	_, err = s.repo.GetSessionByCode(context.Background(), &GetSessionByCodeInput{Code: "AAAAAA"})
	s.Require().ErrorIs(err, ErrCodeNotFound)

	got, err := s.repo.GetSessionByCode(context.Background(), &GetSessionByCodeInput{Code: "BBBBBB"})
	s.Require().NoError(err)
	s.Equal("session-1", got.ID)
}

func (s *RedisRepositoryTestSuite) TestJoinCodeExpires() {
	sess := s.newSession("session-1")
	s.Require().NoError(s.repo.CreateSession(context.Background(), &CreateSessionInput{Session: sess}))

	_, err := s.repo.SetJoinCode(context.Background(), &SetJoinCodeInput{
		SessionID:   "session-1",
		Code:        "ABCDEF",
		ExpiresAt:   s.testNow.Add(time.Minute),
		TTL:         time.Minute,
		WorkoutData: json.RawMessage(`{}`),
	})
	s.Require().NoError(err)

	s.mr.FastForward(61 * time.Second)

	_, err = s.repo.GetSessionByCode(context.Background(), &GetSessionByCodeInput{Code: "ABCDEF"})
	s.Require().ErrorIs(err, ErrCodeNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveSessionPublishesUpdate() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := s.newSession("session-1")
	s.Require().NoError(s.repo.CreateSession(ctx, &CreateSessionInput{Session: sess}))

	bus, err := realtime.NewRedis(&realtime.Config{RedisClient: s.client})
	s.Require().NoError(err)

	events, err := bus.Subscribe(ctx, realtime.SessionChannel("session-1"))
	s.Require().NoError(err)

	sess.Status = models.SessionStatusEnded
	s.Require().NoError(s.repo.SaveSession(ctx, &SaveSessionInput{Session: sess}))

	select {
	case ev := <-events:
		s.Equal(realtime.EventUpdate, ev.Type)
		var row models.TeamSession
		s.Require().NoError(json.Unmarshal(ev.Row, &row))
		s.Equal(models.SessionStatusEnded, row.Status)
	case <-time.After(2 * time.Second):
		s.Fail("timed out waiting for update event")
	}
}
