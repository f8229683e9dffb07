package member

import (
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/member/delivery/resthandler"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/member/repository"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/member/usecase"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory/dependency"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory/types"
	"github.com/meetnear/broadcast-service/pkg/codebase/interfaces"
	"github.com/meetnear/broadcast-service/pkg/token"
)

const (
	// Name service name
	Name types.Module = "Member"
)

// Module model
type Module struct {
	restHandler *resthandler.RestHandler
}

// NewModule module constructor
func NewModule(deps dependency.Dependency) *Module {
	repo := repository.NewMemberRepoMongo(
		deps.GetMongoDatabase().ReadDB(), deps.GetMongoDatabase().WriteDB(),
	)
	uc := usecase.NewMemberUsecase(repo, token.NewJWT())

	var mod Module
	mod.restHandler = resthandler.NewRestHandler(uc, deps.GetValidator())
	return &mod
}

// RestHandler method
func (m *Module) RestHandler() interfaces.EchoRestHandler {
	return m.restHandler
}

// WorkerHandler method
func (m *Module) WorkerHandler(workerType types.Worker) interfaces.WorkerHandler {
	return nil
}

// Name get module name
func (m *Module) Name() types.Module {
	return Name
}
