package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testRequest() *domain.MoneyRequest {
	return &domain.MoneyRequest{
		FromUserID:     1,
		RecipientEmail: "friend@example.com",
		Amount:         decimal.RequireFromString("20"),
		Note:           "lunch",
		RequestedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage(testRequest())

	if msg.Amount != "20.00" {
		t.Errorf("expected amount 20.00, got %s", msg.Amount)
	}
	if msg.EventType != EventMoneyRequested || msg.ID == "" {
		t.Errorf("unexpected message %+v", msg)
	}
	if other := NewMessage(testRequest()); other.ID == msg.ID {
		t.Errorf("expected unique message ids")
	}
}

func TestKafkaNotifierPublishes(t *testing.T) {
	writer := &fakeWriter{}
	m := metrics.New(prometheus.NewRegistry())
	n := newKafkaNotifierWithWriter(writer, m)

	if err := n.NotifyMoneyRequest(context.Background(), testRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(writer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(writer.messages))
	}
	got := writer.messages[0]
	if string(got.Key) != "1" {
		t.Errorf("expected key 1, got %q", got.Key)
	}

	var msg Message
	if err := json.Unmarshal(got.Value, &msg); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if msg.RecipientEmail != "friend@example.com" || msg.Amount != "20.00" || msg.Note != "lunch" {
		t.Errorf("unexpected payload %+v", msg)
	}

	if v := testutil.ToFloat64(m.NotificationsPublished.WithLabelValues(statusPublished)); v != 1 {
		t.Errorf("expected 1 published notification, got %v", v)
	}

	if err := n.Close(); err != nil || !writer.closed {
		t.Errorf("expected writer to be closed")
	}
}

func TestKafkaNotifierWriteError(t *testing.T) {
	writeErr := errors.New("broker unavailable")
	m := metrics.New(prometheus.NewRegistry())
	n := newKafkaNotifierWithWriter(&fakeWriter{err: writeErr}, m)

	err := n.NotifyMoneyRequest(context.Background(), testRequest())
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}

	if v := testutil.ToFloat64(m.NotificationsPublished.WithLabelValues(statusFailed)); v != 1 {
		t.Errorf("expected 1 failed notification, got %v", v)
	}
}

func TestLogNotifierWritesPayload(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	n := NewLogNotifier(nil)
	if err := n.NotifyMoneyRequest(ctx, testRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var entry struct {
		Message string  `json:"message"`
		Payload Message `json:"payload"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	if entry.Message != "money request" || entry.Payload.RecipientEmail != "friend@example.com" {
		t.Errorf("unexpected log entry %+v", entry)
	}
}
