package service

import (
	"context"
	"log/slog"

	"github.com/segyhp/kos-management/internal/domain"
)

// AuditListener writes payment events to the structured log
type AuditListener struct {
	log *slog.Logger
}

func NewAuditListener(log *slog.Logger) *AuditListener {
	if log == nil {
		log = slog.Default()
	}
	return &AuditListener{log: log.With("component", "payment_audit")}
}

func (a *AuditListener) OnPaymentMarkedAsPaid(ctx context.Context, event domain.PaymentMarkedAsPaid) error {
	p := event.Payment
	a.log.InfoContext(ctx, "Payment marked as paid",
		"payment_id", p.ID,
		"tenant_id", p.TenantID,
		"room_id", p.RoomID,
		"amount", p.AmountDue.StringFixed(2),
		"occurred_at", event.OccurredAt,
	)
	return nil
}

func (a *AuditListener) OnPaymentReceived(ctx context.Context, event domain.PaymentReceived) error {
	p := event.Payment
	a.log.InfoContext(ctx, "Payment received",
		"payment_id", p.ID,
		"tenant_id", p.TenantID,
		"amount_received", event.AmountReceived.StringFixed(2),
		"remaining_amount", p.RemainingAmount.StringFixed(2),
		"status", p.Status,
		"occurred_at", event.OccurredAt,
	)
	return nil
}
