package broadcastservice

import (
	"github.com/meetnear/broadcast-service/config"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/member"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory/dependency"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory/types"
	"github.com/meetnear/broadcast-service/pkg/middleware"
	"github.com/meetnear/broadcast-service/pkg/token"
	"github.com/meetnear/broadcast-service/pkg/validator"
)

// Service model
type Service struct {
	deps    dependency.Dependency
	modules []factory.ModuleFactory
	name    types.Service
}

// NewService starting service
func NewService(serviceName string, cfg *config.Config) factory.ServiceFactory {
	deps := dependency.InitDependency(
		dependency.SetMiddleware(middleware.NewMiddleware(token.NewJWT(), cfg.RedisPool)),
		dependency.SetBroker(cfg.KafkaBroker),
		dependency.SetMongoDatabase(cfg.MongoDatabase),
		dependency.SetRedisPool(cfg.RedisPool),
		dependency.SetValidator(validator.NewValidator()),
	)

	modules := []factory.ModuleFactory{
		broadcast.NewModule(deps),
		member.NewModule(deps),
	}

	return &Service{
		deps:    deps,
		modules: modules,
		name:    types.Service(serviceName),
	}
}

// GetDependency method
func (s *Service) GetDependency() dependency.Dependency {
	return s.deps
}

// GetModules method
func (s *Service) GetModules() []factory.ModuleFactory {
	return s.modules
}

// Name method
func (s *Service) Name() types.Service {
	return s.name
}
