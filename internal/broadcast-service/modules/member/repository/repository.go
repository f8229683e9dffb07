package repository

import (
	"context"

	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/member/domain"
)

// MemberRepository abstraction
type MemberRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Member, error)
	Insert(ctx context.Context, data *domain.Member) error
}
