// Package notifier delivers money requests outside the wallet.
package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

// EventMoneyRequested is the event type carried by every message.
const EventMoneyRequested = "money_requested"

// Notification statuses recorded in metrics.
const (
	statusLogged    = "logged"
	statusPublished = "published"
	statusFailed    = "failed"
)

// Message is the JSON payload published for a money request.
type Message struct {
	ID             string    `json:"id"`
	EventType      string    `json:"eventType"`
	FromUserID     int64     `json:"fromUserId"`
	RecipientEmail string    `json:"recipientEmail"`
	Amount         string    `json:"amount"`
	Note           string    `json:"note,omitempty"`
	RequestedAt    time.Time `json:"requestedAt"`
}

// NewMessage builds the wire message for req.
func NewMessage(req *domain.MoneyRequest) Message {
	return Message{
		ID:             ulid.Make().String(),
		EventType:      EventMoneyRequested,
		FromUserID:     req.FromUserID,
		RecipientEmail: req.RecipientEmail,
		Amount:         domain.FormatMoney(req.Amount),
		Note:           req.Note,
		RequestedAt:    req.RequestedAt.UTC(),
	}
}

// LogNotifier writes money requests to the request-scoped logger.
type LogNotifier struct {
	metrics *metrics.Metrics
}

// NewLogNotifier creates a new LogNotifier. metrics may be nil.
func NewLogNotifier(m *metrics.Metrics) *LogNotifier {
	return &LogNotifier{metrics: m}
}

// NotifyMoneyRequest logs the request.
func (n *LogNotifier) NotifyMoneyRequest(ctx context.Context, req *domain.MoneyRequest) error {
	msg := NewMessage(req)

	payload, err := json.Marshal(msg)
	if err != nil {
		record(n.metrics, statusFailed)
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("event_id", msg.ID).
		Str("event_type", msg.EventType).
		RawJSON("payload", payload).
		Msg("money request")

	record(n.metrics, statusLogged)

	return nil
}

func record(m *metrics.Metrics, status string) {
	if m != nil {
		m.NotificationsPublished.WithLabelValues(status).Inc()
	}
}
