package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/Shopify/sarama"

	"github.com/meetnear/broadcast-service/pkg/helper"
	"github.com/meetnear/broadcast-service/pkg/logger"
	"github.com/meetnear/broadcast-service/pkg/shared"
	"github.com/meetnear/broadcast-service/pkg/tracer"
)

// KafkaPublisher kafka sync publisher
type KafkaPublisher struct {
	producer sarama.SyncProducer
}

// NewKafkaPublisher setup kafka publisher with client connection
func NewKafkaPublisher(client sarama.Client) *KafkaPublisher {
	producer, err := sarama.NewSyncProducerFromClient(client)
	if err != nil {
		logger.LogYellow(fmt.Sprintf("Kafka publisher: warning, %v. Should be panicked when using kafka publisher.", err))
		return nil
	}

	return &KafkaPublisher{producer: producer}
}

// PublishMessage method
func (p *KafkaPublisher) PublishMessage(ctx context.Context, args *shared.PublisherArgument) (err error) {
	trace, _ := tracer.StartTraceWithContext(ctx, "kafka:publish_message")
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
		trace.SetError(err)
		trace.Finish()
	}()

	trace.SetTag("topic", args.Topic)
	trace.SetTag("key", args.Key)
	trace.Log("message", args.Message)

	msg := &sarama.ProducerMessage{
		Topic:     args.Topic,
		Key:       sarama.ByteEncoder([]byte(args.Key)),
		Value:     sarama.ByteEncoder(args.Message),
		Timestamp: time.Now(),
	}

	for keyHeader, valueHeader := range args.Header {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{
			Key:   []byte(keyHeader),
			Value: helper.ToBytes(valueHeader),
		})
	}

	_, _, err = p.producer.SendMessage(msg)
	return
}
