package interfaces

import (
	"github.com/labstack/echo"

	"github.com/meetnear/broadcast-service/pkg/codebase/factory/types"
)

// EchoRestHandler delivery factory for echo handler
type EchoRestHandler interface {
	Mount(group *echo.Group)
}

// WorkerHandler delivery factory for all worker handler
type WorkerHandler interface {
	MountHandlers(group *types.WorkerHandlerGroup)
}
