package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/meetnear/broadcast-service/config/env"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/domain"
	"github.com/meetnear/broadcast-service/pkg/shared"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Save(ctx context.Context, data *domain.Broadcast) error {
	args := m.Called(ctx, data)
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}
func (m *mockRepo) FindNearby(ctx context.Context, filter *domain.NearbyFilter) ([]domain.Broadcast, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).([]domain.Broadcast)
	return res, args.Error(1)
}
func (m *mockRepo) AddParticipant(ctx context.Context, id primitive.ObjectID, userID string) (*domain.Broadcast, error) {
	args := m.Called(ctx, id, userID)
	res, _ := args.Get(0).(*domain.Broadcast)
	return res, args.Error(1)
}
func (m *mockRepo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	res, _ := args.Get(0).([]byte)
	return res, args.Error(1)
}
func (m *mockCache) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(time.Duration), args.Error(1)
}
func (m *mockCache) Set(ctx context.Context, key string, value interface{}, expire time.Duration) error {
	args := m.Called(ctx, key, value, expire)
	return args.Error(0)
}
func (m *mockCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
func (m *mockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishMessage(ctx context.Context, args *shared.PublisherArgument) error {
	res := m.Called(ctx, args)
	return res.Error(0)
}

func validCreatePayload() *domain.CreateBroadcastRequest {
	now := time.Now()
	return &domain.CreateBroadcastRequest{
		Title:        "Morning run",
		ActivityType: "running",
		StartTime:    now,
		EndTime:      now.Add(2 * time.Hour),
		Location:     domain.GeoJSONPoint{Type: "Point", Coordinates: []float64{106.8456, -6.2088}},
	}
}

func TestCreateBroadcast(t *testing.T) {
	t.Run("Testcase #1: Positive, cache ttl clamped to remaining lifetime", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		publisher := new(mockPublisher)

		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		cache.On("Set", mock.Anything, mock.MatchedBy(func(key string) bool {
			return len(key) > len("broadcast:")
		}), mock.Anything, mock.MatchedBy(func(ttl time.Duration) bool {
			return ttl > time.Hour && ttl <= 2*time.Hour
		})).Return(nil)
		publisher.On("PublishMessage", mock.Anything, mock.MatchedBy(func(args *shared.PublisherArgument) bool {
			return args.Topic == domain.NotificationTopic
		})).Return(nil)

		uc := NewBroadcastUsecase(repo, cache, publisher)
		data, err := uc.CreateBroadcast(context.Background(), "user-1", validCreatePayload())

		assert.NoError(t, err)
		assert.Equal(t, "user-1", data.HostUserID)
		cache.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("Testcase #2: Negative, end time not after start time", func(t *testing.T) {
		uc := NewBroadcastUsecase(new(mockRepo), new(mockCache), new(mockPublisher))

		payload := validCreatePayload()
		payload.EndTime = payload.StartTime

		data, err := uc.CreateBroadcast(context.Background(), "user-1", payload)
		assert.Equal(t, ErrInvalidTimeRange, err)
		assert.Nil(t, data)
	})

	t.Run("Testcase #3: Cache write failure never fails the create", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		publisher := new(mockPublisher)

		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
		publisher.On("PublishMessage", mock.Anything, mock.Anything).Return(nil)

		uc := NewBroadcastUsecase(repo, cache, publisher)
		data, err := uc.CreateBroadcast(context.Background(), "user-1", validCreatePayload())

		assert.NoError(t, err)
		assert.NotNil(t, data)
	})

	t.Run("Testcase #4: Cache ttl clamped to zero for already passed end time", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		publisher := new(mockPublisher)

		payload := validCreatePayload()
		payload.StartTime = time.Now().Add(-2 * time.Hour)
		payload.EndTime = time.Now().Add(-1 * time.Hour)

		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Duration(0)).Return(nil)
		publisher.On("PublishMessage", mock.Anything, mock.Anything).Return(nil)

		uc := NewBroadcastUsecase(repo, cache, publisher)
		data, err := uc.CreateBroadcast(context.Background(), "user-1", payload)

		assert.NoError(t, err)
		assert.NotNil(t, data)
		cache.AssertExpectations(t)
	})

	t.Run("Testcase #5: Publish failure surfaced with persisted data", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		publisher := new(mockPublisher)

		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		publisher.On("PublishMessage", mock.Anything, mock.Anything).Return(errors.New("broker unreachable"))

		uc := NewBroadcastUsecase(repo, cache, publisher)
		data, err := uc.CreateBroadcast(context.Background(), "user-1", validCreatePayload())

		assert.Error(t, err)
		assert.NotNil(t, data)
		assert.Contains(t, err.Error(), "notification publish failed")
	})
}

func TestGetActiveBroadcasts(t *testing.T) {
	t.Run("Testcase #1: Default radius applied when filter radius is empty", func(t *testing.T) {
		baseEnv := env.BaseEnv()
		baseEnv.DefaultSearchRadiusMeters = 5000
		env.SetEnv(baseEnv)

		repo := new(mockRepo)
		repo.On("FindNearby", mock.Anything, mock.MatchedBy(func(filter *domain.NearbyFilter) bool {
			return filter.RadiusMeters == 5000
		})).Return([]domain.Broadcast{}, nil)

		uc := NewBroadcastUsecase(repo, new(mockCache), new(mockPublisher))
		data, err := uc.GetActiveBroadcasts(context.Background(), &domain.NearbyFilter{Longitude: 106.8, Latitude: -6.2})

		assert.NoError(t, err)
		assert.NotNil(t, data)
		repo.AssertExpectations(t)
	})

	t.Run("Testcase #2: Explicit radius passed through", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindNearby", mock.Anything, mock.MatchedBy(func(filter *domain.NearbyFilter) bool {
			return filter.RadiusMeters == 250
		})).Return([]domain.Broadcast{}, nil)

		uc := NewBroadcastUsecase(repo, new(mockCache), new(mockPublisher))
		_, err := uc.GetActiveBroadcasts(context.Background(), &domain.NearbyFilter{Longitude: 106.8, Latitude: -6.2, RadiusMeters: 250})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestJoinBroadcast(t *testing.T) {
	t.Run("Testcase #1: Positive, event carries participants count", func(t *testing.T) {
		id := primitive.NewObjectID()
		repo := new(mockRepo)
		publisher := new(mockPublisher)

		repo.On("AddParticipant", mock.Anything, id, "user-2").Return(&domain.Broadcast{
			ID: id, Status: domain.StatusActive, Participants: []string{"user-1", "user-2"},
		}, nil)
		publisher.On("PublishMessage", mock.Anything, mock.MatchedBy(func(args *shared.PublisherArgument) bool {
			return args.Key == id.Hex()
		})).Return(nil)

		uc := NewBroadcastUsecase(repo, new(mockCache), publisher)
		data, err := uc.JoinBroadcast(context.Background(), id.Hex(), "user-2")

		assert.NoError(t, err)
		assert.Len(t, data.Participants, 2)
		publisher.AssertExpectations(t)
	})

	t.Run("Testcase #2: Negative, invalid object id", func(t *testing.T) {
		publisher := new(mockPublisher)
		uc := NewBroadcastUsecase(new(mockRepo), new(mockCache), publisher)

		data, err := uc.JoinBroadcast(context.Background(), "not-a-hex-id", "user-2")

		assert.Equal(t, ErrBroadcastNotFound, err)
		assert.Nil(t, data)
		publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything)
	})

	t.Run("Testcase #3: Negative, broadcast missing or expired", func(t *testing.T) {
		id := primitive.NewObjectID()
		repo := new(mockRepo)
		publisher := new(mockPublisher)
		repo.On("AddParticipant", mock.Anything, id, "user-2").Return(nil, mongo.ErrNoDocuments)

		uc := NewBroadcastUsecase(repo, new(mockCache), publisher)
		data, err := uc.JoinBroadcast(context.Background(), id.Hex(), "user-2")

		assert.Equal(t, ErrBroadcastNotFound, err)
		assert.Nil(t, data)
		publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything)
	})

	t.Run("Testcase #4: Publish failure surfaced with joined data", func(t *testing.T) {
		id := primitive.NewObjectID()
		repo := new(mockRepo)
		publisher := new(mockPublisher)

		repo.On("AddParticipant", mock.Anything, id, "user-2").Return(&domain.Broadcast{
			ID: id, Participants: []string{"user-2"},
		}, nil)
		publisher.On("PublishMessage", mock.Anything, mock.Anything).Return(errors.New("broker unreachable"))

		uc := NewBroadcastUsecase(repo, new(mockCache), publisher)
		data, err := uc.JoinBroadcast(context.Background(), id.Hex(), "user-2")

		assert.Error(t, err)
		assert.NotNil(t, data)
	})
}

func TestExpireBroadcasts(t *testing.T) {
	t.Run("Testcase #1: Positive", func(t *testing.T) {
		now := time.Now()
		repo := new(mockRepo)
		repo.On("ExpireOverdue", mock.Anything, now).Return(int64(3), nil)

		uc := NewBroadcastUsecase(repo, new(mockCache), new(mockPublisher))
		modified, err := uc.ExpireBroadcasts(context.Background(), now)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), modified)
	})

	t.Run("Testcase #2: Negative, repository error", func(t *testing.T) {
		now := time.Now()
		repo := new(mockRepo)
		repo.On("ExpireOverdue", mock.Anything, now).Return(int64(0), errors.New("db error"))

		uc := NewBroadcastUsecase(repo, new(mockCache), new(mockPublisher))
		modified, err := uc.ExpireBroadcasts(context.Background(), now)

		assert.Error(t, err)
		assert.Zero(t, modified)
	})
}
