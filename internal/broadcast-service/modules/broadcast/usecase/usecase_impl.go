package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/meetnear/broadcast-service/config/env"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/domain"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/repository"
	"github.com/meetnear/broadcast-service/pkg/codebase/interfaces"
	"github.com/meetnear/broadcast-service/pkg/logger"
	"github.com/meetnear/broadcast-service/pkg/shared"
	"github.com/meetnear/broadcast-service/pkg/tracer"
)

type broadcastUsecaseImpl struct {
	repo      repository.BroadcastRepository
	cache     interfaces.Cache
	publisher interfaces.Publisher
}

// NewBroadcastUsecase usecase impl constructor
func NewBroadcastUsecase(repo repository.BroadcastRepository, cache interfaces.Cache, publisher interfaces.Publisher) BroadcastUsecase {
	return &broadcastUsecaseImpl{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
	}
}

func (uc *broadcastUsecaseImpl) CreateBroadcast(ctx context.Context, hostUserID string, payload *domain.CreateBroadcastRequest) (data *domain.Broadcast, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "BroadcastUsecase:CreateBroadcast")
	defer func() { trace.SetError(err); trace.Finish() }()

	if !payload.EndTime.After(payload.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	data = &domain.Broadcast{
		Title:        payload.Title,
		Description:  payload.Description,
		HostUserID:   hostUserID,
		ActivityType: payload.ActivityType,
		StartTime:    payload.StartTime,
		EndTime:      payload.EndTime,
		Location: domain.GeoJSONPoint{
			Type:        "Point",
			Coordinates: payload.Location.Coordinates,
		},
	}

	if err := uc.repo.Save(ctx, data); err != nil {
		return nil, err
	}

	// cache entry is best effort, its absence must never change behavior
	ttl := time.Until(data.EndTime)
	if ttl < 0 {
		ttl = 0
	}
	cachePayload, _ := json.Marshal(data)
	if err := uc.cache.Set(ctx, data.CacheKey(), cachePayload, ttl); err != nil {
		logger.LogEf("create broadcast: failed write cache for %s: %v", data.ID.Hex(), err)
	}

	// publish failure must be stated, caller still receives the persisted broadcast
	if err := uc.publishEvent(ctx, domain.NotificationEvent{
		Type:        domain.EventBroadcastCreated,
		UserID:      hostUserID,
		BroadcastID: data.ID.Hex(),
		Timestamp:   time.Now(),
	}); err != nil {
		return data, fmt.Errorf("broadcast created but notification publish failed: %w", err)
	}

	return data, nil
}

func (uc *broadcastUsecaseImpl) GetActiveBroadcasts(ctx context.Context, filter *domain.NearbyFilter) (data []domain.Broadcast, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "BroadcastUsecase:GetActiveBroadcasts")
	defer func() { trace.SetError(err); trace.Finish() }()

	if filter.RadiusMeters <= 0 {
		filter.RadiusMeters = env.BaseEnv().DefaultSearchRadiusMeters
	}
	trace.SetTag("radius_meters", filter.RadiusMeters)

	return uc.repo.FindNearby(ctx, filter)
}

func (uc *broadcastUsecaseImpl) JoinBroadcast(ctx context.Context, broadcastID, userID string) (data *domain.Broadcast, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "BroadcastUsecase:JoinBroadcast")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.SetTag("broadcast_id", broadcastID)
	trace.SetTag("user_id", userID)

	id, err := primitive.ObjectIDFromHex(broadcastID)
	if err != nil {
		return nil, ErrBroadcastNotFound
	}

	data, err = uc.repo.AddParticipant(ctx, id, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBroadcastNotFound
		}
		return nil, err
	}

	if err := uc.publishEvent(ctx, domain.NotificationEvent{
		Type:        domain.EventUserJoined,
		UserID:      userID,
		BroadcastID: data.ID.Hex(),
		Timestamp:   time.Now(),
		Metadata: map[string]interface{}{
			"participantsCount": len(data.Participants),
		},
	}); err != nil {
		return data, fmt.Errorf("user joined but notification publish failed: %w", err)
	}

	return data, nil
}

func (uc *broadcastUsecaseImpl) ExpireBroadcasts(ctx context.Context, now time.Time) (modified int64, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "BroadcastUsecase:ExpireBroadcasts")
	defer func() { trace.SetError(err); trace.Finish() }()

	return uc.repo.ExpireOverdue(ctx, now)
}

func (uc *broadcastUsecaseImpl) publishEvent(ctx context.Context, event domain.NotificationEvent) error {
	event.EventID = uuid.NewString()
	message, _ := json.Marshal(event)
	return uc.publisher.PublishMessage(ctx, &shared.PublisherArgument{
		Topic:   domain.NotificationTopic,
		Key:     event.BroadcastID,
		Message: message,
	})
}
