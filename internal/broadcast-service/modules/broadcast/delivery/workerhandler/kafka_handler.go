package workerhandler

import (
	"context"
	"encoding/json"

	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/domain"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/usecase"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory/types"
	"github.com/meetnear/broadcast-service/pkg/logger"
	"github.com/meetnear/broadcast-service/pkg/tracer"
)

// KafkaHandler struct
type KafkaHandler struct {
	uc usecase.BroadcastUsecase
}

// NewKafkaHandler constructor
func NewKafkaHandler(uc usecase.BroadcastUsecase) *KafkaHandler {
	return &KafkaHandler{
		uc: uc,
	}
}

// MountHandlers return map topic to handler func
func (h *KafkaHandler) MountHandlers(group *types.WorkerHandlerGroup) {
	group.Add(domain.NotificationTopic, h.processNotification)
}

func (h *KafkaHandler) processNotification(ctx context.Context, message []byte) (err error) {
	trace, _ := tracer.StartTraceWithContext(ctx, "BroadcastDeliveryKafka:ProcessNotification")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.Log("message", message)

	var event domain.NotificationEvent
	if err := json.Unmarshal(message, &event); err != nil {
		// malformed payload is dropped, retrying can never repair it
		logger.LogEf("notification consumer: skip malformed payload: %v", err)
		return nil
	}

	logger.LogI("notification consumer: " + event.Type + " for broadcast " + event.BroadcastID)
	return nil
}
