package broker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shopify/sarama"

	"github.com/meetnear/broadcast-service/config/env"
	"github.com/meetnear/broadcast-service/pkg/codebase/interfaces"
	"github.com/meetnear/broadcast-service/pkg/logger"
	"github.com/meetnear/broadcast-service/pkg/publisher"
)

// GetDefaultKafkaConfig construct default kafka config
func GetDefaultKafkaConfig(additionalConfigFunc ...func(*sarama.Config)) *sarama.Config {
	version := env.BaseEnv().Kafka.ClientVersion
	if version == "" {
		version = "2.0.0"
	}

	// set default configuration
	cfg := sarama.NewConfig()
	cfg.Version, _ = sarama.ParseKafkaVersion(version)
	cfg.ClientID = env.BaseEnv().Kafka.ClientID

	// Producer config
	cfg.Producer.Retry.Max = 15
	cfg.Producer.Retry.Backoff = 50 * time.Millisecond
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true

	// Consumer config
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin

	for _, additionalFunc := range additionalConfigFunc {
		additionalFunc(cfg)
	}

	return cfg
}

// KafkaBroker configuration
type KafkaBroker struct {
	brokerHost []string
	config     *sarama.Config
	client     sarama.Client
	pub        interfaces.Publisher
}

// NewKafkaBroker setup kafka configuration for publisher and consumer
func NewKafkaBroker(cfg *sarama.Config) *KafkaBroker {
	defer logger.LogWithDefer("Load Kafka broker configuration... ")()

	kb := &KafkaBroker{
		brokerHost: env.BaseEnv().Kafka.Brokers,
		config:     cfg,
	}

	saramaClient, err := sarama.NewClient(kb.brokerHost, kb.config)
	if err != nil {
		panic(fmt.Errorf("%s. Brokers: %s", err, strings.Join(kb.brokerHost, ", ")))
	}
	kb.client = saramaClient
	kb.pub = publisher.NewKafkaPublisher(saramaClient)

	return kb
}

// GetConfig method
func (k *KafkaBroker) GetConfig() *sarama.Config {
	return k.config
}

// Publisher method
func (k *KafkaBroker) Publisher() interfaces.Publisher {
	return k.pub
}

// Health method
func (k *KafkaBroker) Health() map[string]error {
	mErr := make(map[string]error)

	var err error
	if len(k.client.Brokers()) == 0 {
		err = errors.New("not ok")
	}
	mErr["kafka"] = err

	return mErr
}

// Disconnect method
func (k *KafkaBroker) Disconnect(ctx context.Context) error {
	defer logger.LogWithDefer("\x1b[33;5mkafka_broker\x1b[0m: disconnect...")()

	return k.client.Close()
}
