package workerhandler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/meetnear/broadcast-service/config/env"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/domain"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory/types"
	"github.com/meetnear/broadcast-service/pkg/helper"
)

type mockUsecase struct {
	mock.Mock
}

func (m *mockUsecase) CreateBroadcast(ctx context.Context, hostUserID string, payload *domain.CreateBroadcastRequest) (*domain.Broadcast, error) {
	args := m.Called(ctx, hostUserID, payload)
	res, _ := args.Get(0).(*domain.Broadcast)
	return res, args.Error(1)
}
func (m *mockUsecase) GetActiveBroadcasts(ctx context.Context, filter *domain.NearbyFilter) ([]domain.Broadcast, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).([]domain.Broadcast)
	return res, args.Error(1)
}
func (m *mockUsecase) JoinBroadcast(ctx context.Context, broadcastID, userID string) (*domain.Broadcast, error) {
	args := m.Called(ctx, broadcastID, userID)
	res, _ := args.Get(0).(*domain.Broadcast)
	return res, args.Error(1)
}
func (m *mockUsecase) ExpireBroadcasts(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func TestKafkaHandler(t *testing.T) {
	t.Run("Testcase #1: Handler mounted on notification topic", func(t *testing.T) {
		handler := NewKafkaHandler(new(mockUsecase))

		var group types.WorkerHandlerGroup
		handler.MountHandlers(&group)

		assert.Len(t, group.Handlers, 1)
		assert.Equal(t, domain.NotificationTopic, group.Handlers[0].Pattern)
	})

	t.Run("Testcase #2: Well formed event processed", func(t *testing.T) {
		handler := NewKafkaHandler(new(mockUsecase))

		message := []byte(`{"type":"BROADCAST_CREATED","userId":"user-1","broadcastId":"63c9a7b2e1d2f3a4b5c6d7e8","timestamp":"2026-09-01T06:00:00Z"}`)
		assert.NoError(t, handler.processNotification(context.Background(), message))
	})

	t.Run("Testcase #3: Malformed payload skipped without error", func(t *testing.T) {
		handler := NewKafkaHandler(new(mockUsecase))

		assert.NoError(t, handler.processNotification(context.Background(), []byte(`{not-json`)))
	})
}

func TestCronHandler(t *testing.T) {
	t.Run("Testcase #1: Handler mounted with sweep interval", func(t *testing.T) {
		baseEnv := env.BaseEnv()
		baseEnv.BroadcastSweepInterval = 5 * time.Minute
		env.SetEnv(baseEnv)

		handler := NewCronHandler(new(mockUsecase))

		var group types.WorkerHandlerGroup
		handler.MountHandlers(&group)

		assert.Len(t, group.Handlers, 1)
		jobName, _, interval := helper.ParseCronJobKey(group.Handlers[0].Pattern)
		assert.Equal(t, "broadcast-expiration", jobName)
		assert.Equal(t, "5m0s", interval)
	})

	t.Run("Testcase #2: Sweep delegates to usecase", func(t *testing.T) {
		uc := new(mockUsecase)
		uc.On("ExpireBroadcasts", mock.Anything, mock.Anything).Return(int64(2), nil)

		handler := NewCronHandler(uc)
		assert.NoError(t, handler.expireBroadcasts(context.Background(), nil))
		uc.AssertExpectations(t)
	})

	t.Run("Testcase #3: Zero overdue broadcasts still succeeds", func(t *testing.T) {
		uc := new(mockUsecase)
		uc.On("ExpireBroadcasts", mock.Anything, mock.Anything).Return(int64(0), nil)

		handler := NewCronHandler(uc)
		assert.NoError(t, handler.expireBroadcasts(context.Background(), nil))
		uc.AssertExpectations(t)
	})

	t.Run("Testcase #4: Negative, sweep error propagated", func(t *testing.T) {
		uc := new(mockUsecase)
		uc.On("ExpireBroadcasts", mock.Anything, mock.Anything).Return(int64(0), errors.New("db error"))

		handler := NewCronHandler(uc)
		assert.Error(t, handler.expireBroadcasts(context.Background(), nil))
	})
}
