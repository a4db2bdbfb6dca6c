package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"comgatepay/internal/comgate"
	"comgatepay/internal/gateway"
	"comgatepay/internal/notify"
	"comgatepay/internal/repository"
)

// Poller sweeps pending payments and asks the gateway for their current
// state. It covers payers who closed the browser before the return
// redirect ever fired.
type Poller struct {
	cron     *cron.Cron
	gateway  *gateway.Gateway
	payments *repository.PaymentRepository
	notifier *notify.Notifier
	interval time.Duration
	logger   *zap.Logger
}

func NewPoller(
	gw *gateway.Gateway,
	payments *repository.PaymentRepository,
	notifier *notify.Notifier,
	interval time.Duration,
	logger *zap.Logger,
) *Poller {
	if interval < time.Minute {
		interval = time.Minute
	}
	if interval > 59*time.Minute {
		interval = 59 * time.Minute
	}
	return &Poller{
		cron:     cron.New(cron.WithSeconds()),
		gateway:  gw,
		payments: payments,
		notifier: notifier,
		interval: interval,
		logger:   logger,
	}
}

// Start registers and starts the sweep job.
func (p *Poller) Start() {
	spec := fmt.Sprintf("0 */%d * * * *", int(p.interval.Minutes()))
	p.cron.AddFunc(spec, func() {
		p.logger.Debug("Running: pending payment sweep")
		p.sweep()
	})
	p.cron.Start()
	p.logger.Info("Payment poller started", zap.Duration("interval", p.interval))
}

// Stop stops the scheduler; the returned context is done once running
// jobs finish.
func (p *Poller) Stop() context.Context {
	return p.cron.Stop()
}

func (p *Poller) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pending, err := p.payments.FindPending(100)
	if err != nil {
		p.logger.Error("failed to load pending payments", zap.Error(err))
		return
	}

	for _, record := range pending {
		status, err := p.gateway.VerifyStatusByTransactionID(ctx, record.TransactionID)
		if err != nil {
			if errors.Is(err, comgate.ErrPaymentNotFound) {
				p.logger.Warn("pending payment unknown to gateway",
					zap.String("transId", record.TransactionID))
				continue
			}
			p.logger.Error("status poll failed",
				zap.String("transId", record.TransactionID), zap.Error(err))
			continue
		}

		if string(status.State) == record.State {
			continue
		}

		if err := p.payments.UpdateState(record.TransactionID, string(status.State), status.Method, status.CompletedAt); err != nil {
			p.logger.Error("failed to update polled payment",
				zap.String("transId", record.TransactionID), zap.Error(err))
			continue
		}

		p.logger.Info("payment state changed",
			zap.String("transId", record.TransactionID),
			zap.String("from", record.State),
			zap.String("to", string(status.State)))

		if status.Paid {
			p.notifier.PaymentPaid(ctx, status, record.AmountCents)
		}
	}
}
