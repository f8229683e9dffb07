package interfaces

import (
	"context"

	"github.com/meetnear/broadcast-service/pkg/shared"
)

// TokenValidator abstract interface
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*shared.TokenClaim, error)
}
