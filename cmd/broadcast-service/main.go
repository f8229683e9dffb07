package main

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/meetnear/broadcast-service/config"
	broadcastservice "github.com/meetnear/broadcast-service/internal/broadcast-service"
	"github.com/meetnear/broadcast-service/pkg/codebase/app"
	"github.com/meetnear/broadcast-service/pkg/tracer"
)

const serviceName = "broadcast-service"

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("\x1b[31;1mFailed to start %s service: %v\x1b[0m\n", serviceName, r)
			fmt.Printf("Stack trace: \n%s\n", debug.Stack())
		}
	}()

	cfg := config.Init(serviceName)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cfg.Exit(ctx)
	}()

	tracer.InitOpenTracing(serviceName)

	app.New(broadcastservice.NewService(serviceName, cfg)).Run()
}
