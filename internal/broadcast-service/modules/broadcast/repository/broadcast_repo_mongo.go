package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/domain"
	"github.com/meetnear/broadcast-service/pkg/logger"
	"github.com/meetnear/broadcast-service/pkg/tracer"
)

// nearest-first result set is capped, query never pages
const maxNearbyResults = 100

type broadcastRepoMongo struct {
	readDB, writeDB *mongo.Database
	collection      string
}

// NewBroadcastRepoMongo create new broadcast mongo repository
func NewBroadcastRepoMongo(readDB, writeDB *mongo.Database) BroadcastRepository {
	repo := &broadcastRepoMongo{
		readDB:     readDB,
		writeDB:    writeDB,
		collection: "broadcasts",
	}
	repo.ensureIndexes()
	return repo
}

// geospatial index for $nearSphere, compound index for the sweeper and active filters
func (r *broadcastRepoMongo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.writeDB.Collection(r.collection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "endTime", Value: 1}}},
	})
	if err != nil {
		logger.LogYellow("broadcast repository: warning, failed create indexes: " + err.Error())
	}
}

func (r *broadcastRepoMongo) Save(ctx context.Context, data *domain.Broadcast) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "BroadcastRepoMongo:Save")
	defer func() { trace.SetError(err); trace.Finish() }()

	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	data.Status = domain.StatusActive
	data.CreatedAt = time.Now()
	if data.Participants == nil {
		data.Participants = []string{}
	}
	trace.SetTag("broadcast_id", data.ID.Hex())

	_, err = r.writeDB.Collection(r.collection).InsertOne(ctx, data)
	return
}

func (r *broadcastRepoMongo) FindNearby(ctx context.Context, filter *domain.NearbyFilter) (result []domain.Broadcast, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "BroadcastRepoMongo:FindNearby")
	defer func() { trace.SetError(err); trace.Finish() }()

	where := buildNearbyFilter(filter, time.Now())
	trace.Log("filter", where)

	cur, err := r.readDB.Collection(r.collection).Find(ctx, where,
		options.Find().SetLimit(maxNearbyResults))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	result = make([]domain.Broadcast, 0)
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *broadcastRepoMongo) AddParticipant(ctx context.Context, id primitive.ObjectID, userID string) (result *domain.Broadcast, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "BroadcastRepoMongo:AddParticipant")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.SetTag("broadcast_id", id.Hex())
	trace.SetTag("user_id", userID)

	// single atomic conditional write, never read-modify-write
	var updated domain.Broadcast
	err = r.writeDB.Collection(r.collection).FindOneAndUpdate(ctx,
		buildJoinableFilter(id, time.Now()),
		buildAddParticipantUpdate(userID),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *broadcastRepoMongo) ExpireOverdue(ctx context.Context, now time.Time) (modified int64, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "BroadcastRepoMongo:ExpireOverdue")
	defer func() { trace.SetError(err); trace.Finish() }()

	res, err := r.writeDB.Collection(r.collection).UpdateMany(ctx,
		buildOverdueFilter(now),
		bson.M{"$set": bson.M{"status": domain.StatusExpired}},
	)
	if err != nil {
		return 0, err
	}
	trace.SetTag("modified_count", res.ModifiedCount)
	return res.ModifiedCount, nil
}

func buildNearbyFilter(f *domain.NearbyFilter, now time.Time) bson.M {
	return bson.M{
		"status":  domain.StatusActive,
		"endTime": bson.M{"$gt": now},
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{f.Longitude, f.Latitude},
				},
				"$maxDistance": f.RadiusMeters,
			},
		},
	}
}

func buildJoinableFilter(id primitive.ObjectID, now time.Time) bson.M {
	return bson.M{
		"_id":     id,
		"status":  domain.StatusActive,
		"endTime": bson.M{"$gt": now},
	}
}

func buildAddParticipantUpdate(userID string) bson.M {
	return bson.M{"$addToSet": bson.M{"participants": userID}}
}

func buildOverdueFilter(now time.Time) bson.M {
	return bson.M{
		"status":  domain.StatusActive,
		"endTime": bson.M{"$lte": now},
	}
}
