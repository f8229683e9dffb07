package broadcast

import (
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/delivery/resthandler"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/delivery/workerhandler"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/repository"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/usecase"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory/dependency"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory/types"
	"github.com/meetnear/broadcast-service/pkg/codebase/interfaces"
)

const (
	// Name service name
	Name types.Module = "Broadcast"
)

// Module model
type Module struct {
	restHandler    *resthandler.RestHandler
	workerHandlers map[types.Worker]interfaces.WorkerHandler
}

// NewModule module constructor
func NewModule(deps dependency.Dependency) *Module {
	repo := repository.NewBroadcastRepoMongo(
		deps.GetMongoDatabase().ReadDB(), deps.GetMongoDatabase().WriteDB(),
	)
	uc := usecase.NewBroadcastUsecase(repo, deps.GetRedisPool().Cache(), deps.GetBroker().Publisher())

	var mod Module
	mod.restHandler = resthandler.NewRestHandler(uc, deps.GetMiddleware(), deps.GetValidator())
	mod.workerHandlers = map[types.Worker]interfaces.WorkerHandler{
		types.Kafka:     workerhandler.NewKafkaHandler(uc),
		types.Scheduler: workerhandler.NewCronHandler(uc),
	}
	return &mod
}

// RestHandler method
func (m *Module) RestHandler() interfaces.EchoRestHandler {
	return m.restHandler
}

// WorkerHandler method
func (m *Module) WorkerHandler(workerType types.Worker) interfaces.WorkerHandler {
	return m.workerHandlers[workerType]
}

// Name get module name
func (m *Module) Name() types.Module {
	return Name
}
