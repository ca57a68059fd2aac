package consumer

import (
	"context"
	"encoding/json"

	"go-workforce/internal/events"
	"go-workforce/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeNotificationEmails drains the notification topic and hands each
// event to the mailer. Send failures are not committed so the message is
// redelivered; malformed payloads are committed and dropped.
func ConsumeNotificationEmails(
	ctx context.Context,
	reader *kafkago.Reader,
	mailer notification.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification_email")
	log.Info("notification email consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification email consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		var event events.NotificationEmailRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode notification_email_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := mailer.Send(ctx, event.Recipients, event.Subject, event.Body); err != nil {
			log.Error("send notification email failed",
				zap.String("request_id", event.RequestID),
				zap.Int("recipients", len(event.Recipients)),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
			continue
		}

		log.Info("notification email sent",
			zap.String("request_id", event.RequestID),
			zap.Int("recipients", len(event.Recipients)),
			zap.String("subject", event.Subject),
		)
	}
}
