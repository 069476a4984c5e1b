// Package producer is a thin fire-and-forget wrapper around franz-go,
// used to mirror analytics events onto a Kafka topic.
package producer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Message is one record to publish.
type Message struct {
	Topic string
	Key   []byte
	Value []byte
}

// Producer publishes messages in the background. Delivery failures are
// logged and dropped; the mirror is advisory, never load-bearing.
type Producer struct {
	client *kgo.Client
	logger *slog.Logger
	mu     sync.RWMutex
	closed bool
}

// New connects to the given comma-separated broker list.
func New(brokers string, logger *slog.Logger) (*Producer, error) {
	if strings.TrimSpace(brokers) == "" {
		return nil, fmt.Errorf("kafka brokers not configured")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(brokers, ",")...),
		kgo.RequiredAcks(kgo.LeaderAck()),
		kgo.DisableIdempotentWrite(),
		kgo.ProducerLinger(5*time.Millisecond),
		kgo.RecordDeliveryTimeout(10*time.Second),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &Producer{client: client, logger: logger}, nil
}

// ProduceAsync buffers a message for background delivery.
func (p *Producer) ProduceAsync(msg *Message) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return fmt.Errorf("producer is closed")
	}
	p.mu.RUnlock()

	record := &kgo.Record{Topic: msg.Topic, Key: msg.Key, Value: msg.Value}
	p.client.Produce(context.Background(), record, func(r *kgo.Record, err error) {
		if err != nil && p.logger != nil {
			p.logger.Error("kafka delivery failed",
				slog.String("topic", r.Topic),
				slog.Any("error", err))
		}
	})
	return nil
}

// Healthy reports broker connectivity.
func (p *Producer) Healthy(ctx context.Context) bool {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return false
	}
	return p.client.Ping(ctx) == nil
}

// Close flushes buffered messages and shuts the client down.
func (p *Producer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil && p.logger != nil {
		p.logger.Warn("kafka producer closed with unflushed messages",
			slog.Any("error", err))
	}
	p.client.Close()
	return nil
}
