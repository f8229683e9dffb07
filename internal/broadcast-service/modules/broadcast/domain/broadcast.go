package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// broadcast status, only transition is active to expired
const (
	// StatusActive broadcast can be discovered and joined
	StatusActive = "active"
	// StatusExpired broadcast passed its end time and has been swept
	StatusExpired = "expired"
)

// GeoJSONPoint model, coordinates order is [longitude, latitude]
type GeoJSONPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Longitude getter
func (p GeoJSONPoint) Longitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

// Latitude getter
func (p GeoJSONPoint) Latitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Broadcast model
type Broadcast struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	HostUserID   string             `bson:"hostUserId" json:"hostUserId"`
	ActivityType string             `bson:"activityType" json:"activityType"`
	StartTime    time.Time          `bson:"startTime" json:"startTime"`
	EndTime      time.Time          `bson:"endTime" json:"endTime"`
	Location     GeoJSONPoint       `bson:"location" json:"location"`
	Status       string             `bson:"status" json:"status"`
	Participants []string           `bson:"participants" json:"participants"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// CacheKey for single broadcast entry
func (b *Broadcast) CacheKey() string {
	return "broadcast:" + b.ID.Hex()
}

// CreateBroadcastRequest model
type CreateBroadcastRequest struct {
	Title        string       `json:"title" validate:"required,min=3,max=100"`
	Description  string       `json:"description" validate:"omitempty,max=500"`
	ActivityType string       `json:"activityType" validate:"required,min=3"`
	StartTime    time.Time    `json:"startTime" validate:"required"`
	EndTime      time.Time    `json:"endTime" validate:"required"`
	Location     GeoJSONPoint `json:"location"`
}

// NearbyFilter model for proximity query
type NearbyFilter struct {
	Longitude    float64
	Latitude     float64
	RadiusMeters float64
}
