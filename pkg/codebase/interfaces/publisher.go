package interfaces

import (
	"context"

	"github.com/meetnear/broadcast-service/pkg/shared"
)

// Publisher abstraction
type Publisher interface {
	PublishMessage(ctx context.Context, args *shared.PublisherArgument) error
}
