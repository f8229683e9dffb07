package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/domain"
)

// BroadcastRepository abstraction
type BroadcastRepository interface {
	Save(ctx context.Context, data *domain.Broadcast) error
	FindNearby(ctx context.Context, filter *domain.NearbyFilter) ([]domain.Broadcast, error)
	AddParticipant(ctx context.Context, id primitive.ObjectID, userID string) (*domain.Broadcast, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}
