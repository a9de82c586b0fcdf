package presence

import (
	"context"
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

func (s *RedisRepositoryTestSuite) TestUpsertAndListPresence() {
	rec := &models.PresenceRecord{
		SessionID: "session-1",
		UserID:    "user-1",
		Status:    models.PresenceStatusOnline,
		UpdatedAt: s.testNow,
	}

	err := s.repo.UpsertPresence(context.Background(), &UpsertPresenceInput{Record: rec})
	s.Require().NoError(err)

	out, err := s.repo.ListPresence(context.Background(), &ListPresenceInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 1)
	s.Equal("user-1", out.Records[0].UserID)
	s.Equal(models.PresenceStatusOnline, out.Records[0].Status)
	s.Equal(s.testNow.Unix(), out.Records[0].UpdatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestUpsertOverwritesStatus() {
	rec := &models.PresenceRecord{
		SessionID: "session-1",
		UserID:    "user-1",
		Status:    models.PresenceStatusOnline,
		UpdatedAt: s.testNow,
	}
	s.Require().NoError(s.repo.UpsertPresence(context.Background(), &UpsertPresenceInput{Record: rec}))

	rec.Status = models.PresenceStatusAway
	rec.UpdatedAt = s.testNow.Add(15 * time.Second)
	s.Require().NoError(s.repo.UpsertPresence(context.Background(), &UpsertPresenceInput{Record: rec}))

	out, err := s.repo.ListPresence(context.Background(), &ListPresenceInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 1)
	s.Equal(models.PresenceStatusAway, out.Records[0].Status)
}

func (s *RedisRepositoryTestSuite) TestDeletePresence() {
	for _, uid := range []string{"user-1", "user-2"} {
		s.Require().NoError(s.repo.UpsertPresence(context.Background(), &UpsertPresenceInput{
			Record: &models.PresenceRecord{
				SessionID: "session-1",
				UserID:    uid,
				Status:    models.PresenceStatusOnline,
				UpdatedAt: s.testNow,
			},
		}))
	}

	err := s.repo.DeletePresence(context.Background(), &DeletePresenceInput{
		SessionID: "session-1",
		UserID:    "user-1",
	})
	s.Require().NoError(err)

	out, err := s.repo.ListPresence(context.Background(), &ListPresenceInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 1)
	s.Equal("user-2", out.Records[0].UserID)
}

func (s *RedisRepositoryTestSuite) TestDeleteSessionPresence() {
	s.Require().NoError(s.repo.UpsertPresence(context.Background(), &UpsertPresenceInput{
		Record: &models.PresenceRecord{
			SessionID: "session-1",
			UserID:    "user-1",
			Status:    models.PresenceStatusOnline,
			UpdatedAt: s.testNow,
		},
	}))

	err := s.repo.DeleteSessionPresence(context.Background(), &DeleteSessionPresenceInput{SessionID: "session-1"})
	s.Require().NoError(err)

	out, err := s.repo.ListPresence(context.Background(), &ListPresenceInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Empty(out.Records)
}

func (s *RedisRepositoryTestSuite) TestDeletePublishesDeleteEvent() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Require().NoError(s.repo.UpsertPresence(ctx, &UpsertPresenceInput{
		Record: &models.PresenceRecord{
			SessionID: "session-1",
			UserID:    "user-1",
			Status:    models.PresenceStatusOnline,
			UpdatedAt: s.testNow,
		},
	}))

	bus, err := realtime.NewRedis(&realtime.Config{RedisClient: s.client})
	s.Require().NoError(err)

	events, err := bus.Subscribe(ctx, realtime.PresenceChannel("session-1"))
	s.Require().NoError(err)

	s.Require().NoError(s.repo.DeletePresence(ctx, &DeletePresenceInput{
		SessionID: "session-1",
		UserID:    "user-1",
	}))

	select {
	case ev := <-events:
		s.Equal(realtime.EventDelete, ev.Type)
	case <-time.After(2 * time.Second):
		s.Fail("timed out waiting for delete event")
	}
}
