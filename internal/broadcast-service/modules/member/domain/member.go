package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member model
type Member struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Email      string             `bson:"email" json:"email"`
	FullName   string             `bson:"fullName" json:"fullName"`
	Password   string             `bson:"password" json:"-"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	ModifiedAt time.Time          `bson:"modifiedAt" json:"modifiedAt"`
}

// RegisterRequest model
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest model
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse model
type LoginResponse struct {
	Token string `json:"token"`
}
