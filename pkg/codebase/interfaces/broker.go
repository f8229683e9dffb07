package interfaces

import (
	"github.com/Shopify/sarama"
)

// Broker abstraction
type Broker interface {
	GetConfig() *sarama.Config
	Publisher() Publisher
	Health() map[string]error
	Closer
}
