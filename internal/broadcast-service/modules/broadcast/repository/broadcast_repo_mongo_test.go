package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/domain"
)

func TestBuildNearbyFilter(t *testing.T) {
	now := time.Now()
	filter := buildNearbyFilter(&domain.NearbyFilter{Longitude: 106.8456, Latitude: -6.2088, RadiusMeters: 5000}, now)

	assert.Equal(t, domain.StatusActive, filter["status"])
	assert.Equal(t, bson.M{"$gt": now}, filter["endTime"])

	nearSphere := filter["location"].(bson.M)["$nearSphere"].(bson.M)
	assert.Equal(t, float64(5000), nearSphere["$maxDistance"])

	geometry := nearSphere["$geometry"].(bson.M)
	assert.Equal(t, "Point", geometry["type"])
	assert.Equal(t, []float64{106.8456, -6.2088}, geometry["coordinates"])
}

func TestBuildJoinableFilter(t *testing.T) {
	id := primitive.NewObjectID()
	now := time.Now()

	filter := buildJoinableFilter(id, now)
	assert.Equal(t, id, filter["_id"])
	assert.Equal(t, domain.StatusActive, filter["status"])
	assert.Equal(t, bson.M{"$gt": now}, filter["endTime"])
}

func TestBuildAddParticipantUpdate(t *testing.T) {
	update := buildAddParticipantUpdate("user-1")
	assert.Equal(t, bson.M{"$addToSet": bson.M{"participants": "user-1"}}, update)
}

func TestBuildOverdueFilter(t *testing.T) {
	now := time.Now()

	filter := buildOverdueFilter(now)
	assert.Equal(t, domain.StatusActive, filter["status"])
	assert.Equal(t, bson.M{"$lte": now}, filter["endTime"])
}
