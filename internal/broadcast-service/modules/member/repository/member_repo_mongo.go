package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/member/domain"
	"github.com/meetnear/broadcast-service/pkg/logger"
	"github.com/meetnear/broadcast-service/pkg/tracer"
)

type memberRepoMongo struct {
	readDB, writeDB *mongo.Database
	collection      string
}

// NewMemberRepoMongo create new member mongo repository
func NewMemberRepoMongo(readDB, writeDB *mongo.Database) MemberRepository {
	repo := &memberRepoMongo{
		readDB:     readDB,
		writeDB:    writeDB,
		collection: "members",
	}
	repo.ensureIndexes()
	return repo
}

func (r *memberRepoMongo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.writeDB.Collection(r.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.LogYellow("member repository: warning, failed create indexes: " + err.Error())
	}
}

func (r *memberRepoMongo) FindByEmail(ctx context.Context, email string) (result *domain.Member, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "MemberRepoMongo:FindByEmail")
	defer func() { trace.SetError(err); trace.Finish() }()

	var member domain.Member
	err = r.readDB.Collection(r.collection).FindOne(ctx, bson.M{"email": email}).Decode(&member)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepoMongo) Insert(ctx context.Context, data *domain.Member) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "MemberRepoMongo:Insert")
	defer func() { trace.SetError(err); trace.Finish() }()

	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	data.CreatedAt = time.Now()
	data.ModifiedAt = data.CreatedAt
	trace.SetTag("member_id", data.ID.Hex())

	_, err = r.writeDB.Collection(r.collection).InsertOne(ctx, data)
	return
}
