package kafkaworker

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/Shopify/sarama"

	"github.com/meetnear/broadcast-service/config/env"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory/types"
	"github.com/meetnear/broadcast-service/pkg/helper"
	"github.com/meetnear/broadcast-service/pkg/logger"
	"github.com/meetnear/broadcast-service/pkg/tracer"
)

type kafkaWorker struct {
	engine  sarama.ConsumerGroup
	service factory.ServiceFactory
	cancel  context.CancelFunc
}

// NewWorker create new kafka consumer worker
func NewWorker(service factory.ServiceFactory) factory.AppServerFactory {
	// init kafka consumer
	kafkaConsumer, err := sarama.NewConsumerGroup(
		env.BaseEnv().Kafka.Brokers,
		env.BaseEnv().Kafka.ConsumerGroup,
		service.GetDependency().GetBroker().GetConfig(),
	)
	if err != nil {
		log.Panicf("Error creating kafka consumer group client: %v", err)
	}

	return &kafkaWorker{
		engine:  kafkaConsumer,
		service: service,
	}
}

func (h *kafkaWorker) Serve() {

	handlers := make(map[string]types.WorkerHandlerFunc)
	var consumeTopics []string
	for _, m := range h.service.GetModules() {
		if wh := m.WorkerHandler(types.Kafka); wh != nil {
			var group types.WorkerHandlerGroup
			wh.MountHandlers(&group)
			for _, handler := range group.Handlers {
				handlers[handler.Pattern] = handler.HandlerFunc
				consumeTopics = append(consumeTopics, handler.Pattern)
				fmt.Println(helper.StringYellow(fmt.Sprintf("[KAFKA-CONSUMER] (topic): %-10s --> (module): %s", handler.Pattern, m.Name())))
			}
		}
	}
	fmt.Println(helper.StringYellow("⇨ Kafka consumer is active. Brokers: " + fmt.Sprintf("%v", env.BaseEnv().Kafka.Brokers)))

	consumer := kafkaConsumer{
		handlers: handlers,
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel

	// consume loop, rejoin group after rebalance
	for {
		if err := h.engine.Consume(ctx, consumeTopics, &consumer); err != nil {
			logger.LogRed("Error from kafka consumer: " + err.Error())
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (h *kafkaWorker) Shutdown(ctx context.Context) {
	deferFunc := logger.LogWithDefer("Stopping Kafka consumer worker...")
	defer deferFunc()

	if h.cancel != nil {
		h.cancel()
	}
	h.engine.Close()
}

// kafkaConsumer represents a Sarama consumer group consumer
type kafkaConsumer struct {
	handlers map[string]types.WorkerHandlerFunc
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (c *kafkaConsumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (c *kafkaConsumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim must start a consumer loop of ConsumerGroupClaim's Messages().
func (c *kafkaConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {

	for message := range claim.Messages() {
		if handler, ok := c.handlers[message.Topic]; ok {
			c.processMessage(session, message, handler)
		}
		session.MarkMessage(message, "")
	}

	return nil
}

func (c *kafkaConsumer) processMessage(session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage, handler types.WorkerHandlerFunc) {
	header := http.Header{}
	for _, h := range message.Headers {
		header.Set(string(h.Key), string(h.Value))
	}

	trace, ctx := tracer.StartTraceFromHeader(session.Context(), "KafkaConsumer", header)
	defer func() {
		if r := recover(); r != nil {
			trace.SetError(fmt.Errorf("%v", r))
		}
		logger.LogGreen("kafka_consumer > trace_url: " + tracer.GetTraceURL(ctx))
		trace.Finish()
	}()

	trace.SetTag("topic", message.Topic)
	trace.SetTag("key", string(message.Key))
	trace.SetTag("partition", message.Partition)
	trace.SetTag("offset", message.Offset)
	trace.Log("message", message.Value)

	log.Printf("\x1b[35;3mKafka Consumer: message consumed, timestamp = %v, topic = %s\x1b[0m", message.Timestamp, message.Topic)

	if err := handler(ctx, message.Value); err != nil {
		trace.SetError(err)
	}
}
