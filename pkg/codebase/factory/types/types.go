package types

import "context"

// Service is the type returned by a service name
type Service string

// Module is the type returned by a module name
type Module string

// Server is the type returned by an app server
type Server string

const (
	// REST server
	REST Server = "rest"
)

// Worker is the type returned by a classifier worker (kafka consumer, scheduler)
type Worker string

const (
	// Kafka worker
	Kafka Worker = "kafka"
	// Scheduler worker
	Scheduler Worker = "scheduler"
)

// WorkerHandlerFunc types
type WorkerHandlerFunc func(ctx context.Context, message []byte) error

// WorkerHandler types
type WorkerHandler struct {
	Pattern     string
	HandlerFunc WorkerHandlerFunc
}

// WorkerHandlerGroup group of worker handlers by pattern string
type WorkerHandlerGroup struct {
	Handlers []WorkerHandler
}

// Add method from WorkerHandlerGroup, pattern can contains unique topic name or scheduler job key
func (m *WorkerHandlerGroup) Add(pattern string, handlerFunc WorkerHandlerFunc) {
	m.Handlers = append(m.Handlers, WorkerHandler{
		Pattern: pattern, HandlerFunc: handlerFunc,
	})
}
