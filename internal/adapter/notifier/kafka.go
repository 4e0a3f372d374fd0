package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

const defaultPublishTimeout = 5 * time.Second

// messageWriter is the part of *kafka.Writer the notifier needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes money requests to a Kafka topic, keyed by the
// requesting user so one user's requests stay ordered.
type KafkaNotifier struct {
	writer  messageWriter
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewKafkaNotifier creates a notifier writing to topic on brokers.
func NewKafkaNotifier(brokers []string, topic string, m *metrics.Metrics) *KafkaNotifier {
	return newKafkaNotifierWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}, m)
}

func newKafkaNotifierWithWriter(w messageWriter, m *metrics.Metrics) *KafkaNotifier {
	return &KafkaNotifier{
		writer:  w,
		timeout: defaultPublishTimeout,
		metrics: m,
	}
}

// NotifyMoneyRequest publishes the request as JSON.
func (n *KafkaNotifier) NotifyMoneyRequest(ctx context.Context, req *domain.MoneyRequest) error {
	msg := NewMessage(req)

	payload, err := json.Marshal(msg)
	if err != nil {
		record(n.metrics, statusFailed)
		return fmt.Errorf("marshal money request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(req.FromUserID, 10)),
		Value: payload,
		Time:  msg.RequestedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(msg.EventType)},
		},
	})
	if err != nil {
		record(n.metrics, statusFailed)
		return fmt.Errorf("publish money request: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("event_id", msg.ID).Msg("money request published")
	record(n.metrics, statusPublished)

	return nil
}

// Close flushes and closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
