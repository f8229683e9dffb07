package workerhandler

import (
	"context"
	"fmt"
	"time"

	"github.com/meetnear/broadcast-service/config/env"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/usecase"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory/types"
	"github.com/meetnear/broadcast-service/pkg/helper"
	"github.com/meetnear/broadcast-service/pkg/logger"
	"github.com/meetnear/broadcast-service/pkg/tracer"
)

// CronHandler struct
type CronHandler struct {
	uc usecase.BroadcastUsecase
}

// NewCronHandler constructor
func NewCronHandler(uc usecase.BroadcastUsecase) *CronHandler {
	return &CronHandler{
		uc: uc,
	}
}

// MountHandlers return map topic to handler func
func (h *CronHandler) MountHandlers(group *types.WorkerHandlerGroup) {
	group.Add(helper.CronJobKeyToString("broadcast-expiration", "", env.BaseEnv().BroadcastSweepInterval.String()), h.expireBroadcasts)
}

func (h *CronHandler) expireBroadcasts(ctx context.Context, message []byte) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "BroadcastDeliveryCron:ExpireBroadcasts")
	defer func() { trace.SetError(err); trace.Finish() }()

	modified, err := h.uc.ExpireBroadcasts(ctx, time.Now())
	if err != nil {
		return err
	}

	logger.LogI(fmt.Sprintf("expiration sweeper: marked %d broadcast(s) expired", modified))
	return nil
}
