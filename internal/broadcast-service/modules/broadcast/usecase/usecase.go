package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/domain"
)

// usecase error types, mapped to http status code in delivery layer
var (
	// ErrBroadcastNotFound broadcast is absent, already expired, or past its end time
	ErrBroadcastNotFound = errors.New("Broadcast not found or no longer active")
	// ErrInvalidTimeRange end time must be after start time
	ErrInvalidTimeRange = errors.New("End time must be after start time")
)

// BroadcastUsecase abstraction
type BroadcastUsecase interface {
	CreateBroadcast(ctx context.Context, hostUserID string, payload *domain.CreateBroadcastRequest) (*domain.Broadcast, error)
	GetActiveBroadcasts(ctx context.Context, filter *domain.NearbyFilter) ([]domain.Broadcast, error)
	JoinBroadcast(ctx context.Context, broadcastID, userID string) (*domain.Broadcast, error)
	ExpireBroadcasts(ctx context.Context, now time.Time) (int64, error)
}
