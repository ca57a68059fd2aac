package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier is how the workflow services fan out email. Delivery is
// fire-and-forget: callers log a failed Notify and carry on, a state
// transition never rolls back because mail could not be queued.
//
//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	WithTx(tx *sql.Tx) Notifier
	Notify(ctx context.Context, recipients []string, subject, body string) error
}

// outboxNotifier enqueues a notification event in the caller's transaction.
// The producer worker ships it to Kafka and the consumer hands it to SMTP,
// so a committed transition is eventually delivered even if the broker is
// down at commit time.
type outboxNotifier struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewOutboxNotifier(outbox kafka.OutboxRepository, logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notification.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.outbox")
	}
	return &outboxNotifier{outbox: outbox, logger: l}
}

func (n *outboxNotifier) WithTx(tx *sql.Tx) Notifier {
	return &outboxNotifier{outbox: n.outbox.WithTx(tx), logger: n.logger}
}

func (n *outboxNotifier) Notify(ctx context.Context, recipients []string, subject, body string) error {
	if len(recipients) == 0 {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.NotificationEmailRequestedEvent{
		EventType:  "notification_email_requested",
		RequestID:  rid,
		Recipients: recipients,
		Subject:    subject,
		Body:       body,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outboxID := uuid.NewString()
	if err := n.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            outboxID,
		RequestID:     rid,
		AggregateType: "notification",
		AggregateID:   outboxID,
		EventType:     event.EventType,
		Topic:         events.NotificationEmailRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return err
	}

	n.logger.Debug("notification queued",
		zap.String("request_id", rid),
		zap.Int("recipients", len(recipients)),
		zap.String("subject", subject),
	)
	return nil
}
