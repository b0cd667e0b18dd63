package events

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaConfig struct {
	Brokers      []string
	BatchTimeout time.Duration
}

// Kafka publishes asynchronously. Delivery failures are reported to the logger.
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(cfg KafkaConfig, logger *zap.Logger) *Kafka {
	logger = logger.Named("kafka")
	return &Kafka{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           cfg.BatchTimeout,
			RequiredAcks:           kafka.RequireOne,
			Async:                  true,
			AllowAutoTopicCreation: true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					logger.Error("failed to deliver messages", zap.Int("count", len(messages)), zap.Error(err))
				}
			},
			ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
				logger.Sugar().Errorf(msg, args...)
			}),
		},
	}
}

func (k *Kafka) Publish(ctx context.Context, topic string, key, value []byte) error {
	err := k.writer.WriteMessages(ctx, kafka.Message{Topic: topic, Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("writing to %s: %w", topic, err)
	}
	return nil
}

// Close flushes pending messages.
func (k *Kafka) Close() error {
	return k.writer.Close()
}
