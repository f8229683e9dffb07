package config

import (
	"context"
	"fmt"
	"os"

	"github.com/meetnear/broadcast-service/config/broker"
	"github.com/meetnear/broadcast-service/config/database"
	"github.com/meetnear/broadcast-service/config/env"
	"github.com/meetnear/broadcast-service/pkg/codebase/interfaces"
	"github.com/meetnear/broadcast-service/pkg/logger"
)

// Config app
type Config struct {
	ServiceName   string
	MongoDatabase interfaces.MongoDatabase
	RedisPool     interfaces.RedisPool
	KafkaBroker   interfaces.Broker

	closers []interfaces.Closer
}

// Init app config
func Init(serviceName string) *Config {
	env.Load(serviceName)
	logger.SetDebugMode(env.BaseEnv().DebugMode)

	cfg := &Config{ServiceName: serviceName}

	ctx, cancel := context.WithTimeout(context.Background(), env.BaseEnv().LoadConfigTimeout)
	defer cancel()

	connectDone := make(chan struct{})
	errConnect := make(chan error)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errConnect <- fmt.Errorf("%v", r)
			}
			close(connectDone)
		}()

		cfg.MongoDatabase = database.InitMongoDB(ctx)
		cfg.RedisPool = database.InitRedis()
		cfg.KafkaBroker = broker.NewKafkaBroker(broker.GetDefaultKafkaConfig())
		cfg.closers = append(cfg.closers, cfg.MongoDatabase, cfg.RedisPool, cfg.KafkaBroker)
	}()

	// with timeout to init configuration
	select {
	case <-connectDone:
		return cfg
	case <-ctx.Done():
		panic(fmt.Errorf("timeout to init configuration: %v", ctx.Err()))
	case e := <-errConnect:
		panic(fmt.Errorf("failed init configuration :=> %v", e))
	}
}

// Exit graceful shutdown all connections
func (c *Config) Exit(ctx context.Context) {
	for _, cl := range c.closers {
		if err := cl.Disconnect(ctx); err != nil {
			logger.LogRed(err.Error())
		}
	}

	fmt.Printf("\x1b[32;1mSuccess close all connections\x1b[0m\n")
	os.Stdout.Sync()
}
