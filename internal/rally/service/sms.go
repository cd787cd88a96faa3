package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/internal/rally/notify"
	"github.com/aussiebroadwan/rally/internal/rally/store"
	"github.com/aussiebroadwan/rally/pkg/idx"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

// sendLogged sends one SMS and records the attempt, successful or not, in
// the message log. The returned error is the send error; a failure to write
// the log row is only logged.
func sendLogged(
	ctx context.Context,
	sender notify.SMSSender,
	messages store.SMSMessages,
	msg domain.SMSMessage,
	now time.Time,
) error {
	providerID, sendErr := sender.SendSMS(ctx, msg.Phone, msg.Body)

	msg.ID = idx.New().String()
	msg.ProviderID = providerID
	msg.CreatedAt = now
	msg.Status = domain.SMSStatusSent
	if sendErr != nil {
		msg.Status = domain.SMSStatusFailed
		msg.Error = sendErr.Error()
	}

	if err := messages.CreateSMSMessage(ctx, msg); err != nil {
		slogx.FromContext(ctx).Error("failed to record sms",
			slog.String("kind", string(msg.Kind)),
			slog.Any("error", err),
		)
	}
	return sendErr
}
