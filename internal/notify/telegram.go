package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"comgatepay/internal/gateway"
)

// Notifier announces settled payments to an ops Telegram chat. A nil
// Notifier is valid and does nothing, so deployments without a bot token
// just skip wiring it.
type Notifier struct {
	bot    *tele.Bot
	chatID int64
	dedup  Deduper
	logger *zap.Logger
}

// NewNotifier creates a notifier for the given bot token and chat.
func NewNotifier(token string, chatID int64, dedup Deduper, logger *zap.Logger) (*Notifier, error) {
	// Send-only: no poller, the bot never receives updates.
	bot, err := tele.NewBot(tele.Settings{Token: token})
	if err != nil {
		return nil, fmt.Errorf("notify: create bot: %w", err)
	}
	return &Notifier{
		bot:    bot,
		chatID: chatID,
		dedup:  dedup,
		logger: logger,
	}, nil
}

// PaymentPaid announces one settled payment, at most once per transaction
// id regardless of how many paths observed it.
func (n *Notifier) PaymentPaid(ctx context.Context, status *gateway.PaymentStatus, amountCents int64) {
	if n == nil {
		return
	}

	already, err := n.dedup.Seen(ctx, status.TransactionID)
	if err != nil {
		n.logger.Warn("notify dedup check failed, announcing anyway", zap.Error(err))
	}
	if already {
		return
	}

	text := fmt.Sprintf(
		"💵 Přijata platba\n\nTransakce: %s\nRef. ID: %s\nČástka: %d.%02d Kč\nMetoda: %s",
		status.TransactionID,
		status.ReferenceID,
		amountCents/100, amountCents%100,
		status.Method,
	)

	if _, err := n.bot.Send(tele.ChatID(n.chatID), text); err != nil {
		n.logger.Error("failed to send payment notification",
			zap.String("transId", status.TransactionID),
			zap.Error(err))
	}
}
