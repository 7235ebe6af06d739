// Package kafka publishes JSON events to a single topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lawfirm-site/internal/common/logger"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer sends keyed JSON messages to one topic.
type Producer struct {
	writer messageWriter
	topic  string
	logger logger.Logger
}

func NewProducer(brokers []string, topic string, log logger.Logger) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			WriteTimeout: 10 * time.Second,
		},
		topic:  topic,
		logger: log.WithFields(map[string]interface{}{"component": "kafka-producer", "topic": topic}),
	}
}

// Send marshals value and writes it under key. Messages with the same key
// land on the same partition.
func (p *Producer) Send(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal message %s: %w", key, err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to %s: %w", p.topic, err)
	}

	p.logger.Debug("message sent", map[string]interface{}{"key": key})
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
