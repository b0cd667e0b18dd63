// Package events publishes accounting events: credited shares and farmer record changes.
package events

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/farmpool/poold/logging"
)

var published = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pool",
	Subsystem: "events",
	Name:      "published_total",
	Help:      "Accounting events handed to the publisher, by topic and result.",
}, []string{"topic", "result"})

type Publisher interface {
	// Publish hands a message to the transport. key selects the partition.
	Publish(ctx context.Context, topic string, key, value []byte) error
	Close() error
}

type Topics struct {
	Shares  string
	Farmers string
}

// Sink encodes events and publishes them. Publishing failures are logged and
// never reported to the caller.
type Sink struct {
	publisher Publisher
	topics    Topics
}

func NewSink(publisher Publisher, topics Topics) *Sink {
	return &Sink{publisher: publisher, topics: topics}
}

func (s *Sink) Share(ctx context.Context, msg *ShareMsg) {
	s.publish(ctx, s.topics.Shares, msg.LauncherID, msg.Marshal())
}

func (s *Sink) Farmer(ctx context.Context, msg *FarmerMsg) {
	s.publish(ctx, s.topics.Farmers, msg.LauncherID, msg.Marshal())
}

func (s *Sink) publish(ctx context.Context, topic, key string, value []byte) {
	if err := s.publisher.Publish(ctx, topic, []byte(key), value); err != nil {
		published.WithLabelValues(topic, "error").Inc()
		logging.FromContext(ctx).Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("launcher_id", key),
			zap.Error(err),
		)
		return
	}
	published.WithLabelValues(topic, "ok").Inc()
}

func (s *Sink) Close() error {
	return s.publisher.Close()
}

type Message struct {
	Key   []byte
	Value []byte
}

// Memory keeps published messages in memory.
type Memory struct {
	mu       sync.Mutex
	messages map[string][]Message
}

func NewMemory() *Memory {
	return &Memory{messages: make(map[string][]Message)}
}

func (m *Memory) Publish(_ context.Context, topic string, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[topic] = append(m.messages[topic], Message{Key: key, Value: value})
	return nil
}

// Messages returns a copy of the messages published on topic.
func (m *Memory) Messages(topic string) []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.messages[topic]...)
}

func (m *Memory) Close() error {
	return nil
}

// Discard drops every message. It stands in when no broker is configured.
type Discard struct{}

func (Discard) Publish(context.Context, string, []byte, []byte) error { return nil }

func (Discard) Close() error { return nil }
