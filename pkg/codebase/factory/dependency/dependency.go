package dependency

import (
	"github.com/meetnear/broadcast-service/pkg/codebase/interfaces"
)

// Dependency base
type Dependency interface {
	GetMiddleware() interfaces.Middleware
	GetBroker() interfaces.Broker
	GetMongoDatabase() interfaces.MongoDatabase
	GetRedisPool() interfaces.RedisPool
	GetValidator() interfaces.Validator
}

// Option func type
type Option func(*deps)

type deps struct {
	mw        interfaces.Middleware
	broker    interfaces.Broker
	mongoDB   interfaces.MongoDatabase
	redisPool interfaces.RedisPool
	validator interfaces.Validator
}

// SetMiddleware option func
func SetMiddleware(mw interfaces.Middleware) Option {
	return func(d *deps) {
		d.mw = mw
	}
}

// SetBroker option func
func SetBroker(broker interfaces.Broker) Option {
	return func(d *deps) {
		d.broker = broker
	}
}

// SetMongoDatabase option func
func SetMongoDatabase(db interfaces.MongoDatabase) Option {
	return func(d *deps) {
		d.mongoDB = db
	}
}

// SetRedisPool option func
func SetRedisPool(db interfaces.RedisPool) Option {
	return func(d *deps) {
		d.redisPool = db
	}
}

// SetValidator option func
func SetValidator(validator interfaces.Validator) Option {
	return func(d *deps) {
		d.validator = validator
	}
}

// InitDependency constructor
func InitDependency(opts ...Option) Dependency {
	opt := new(deps)

	for _, o := range opts {
		o(opt)
	}

	return opt
}

func (d *deps) GetMiddleware() interfaces.Middleware {
	return d.mw
}
func (d *deps) GetBroker() interfaces.Broker {
	return d.broker
}
func (d *deps) GetMongoDatabase() interfaces.MongoDatabase {
	return d.mongoDB
}
func (d *deps) GetRedisPool() interfaces.RedisPool {
	return d.redisPool
}
func (d *deps) GetValidator() interfaces.Validator {
	return d.validator
}
