package usecase

import (
	"context"
	"errors"

	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/member/domain"
)

// usecase error types, mapped to http status code in delivery layer
var (
	// ErrEmailAlreadyRegistered email must be unique across members
	ErrEmailAlreadyRegistered = errors.New("Email already registered")
	// ErrWrongCredentials email or password mismatch, never tell which one
	ErrWrongCredentials = errors.New("Wrong email or password")
)

// MemberUsecase abstraction
type MemberUsecase interface {
	Register(ctx context.Context, payload *domain.RegisterRequest) (*domain.Member, error)
	Login(ctx context.Context, payload *domain.LoginRequest) (*domain.LoginResponse, error)
}
