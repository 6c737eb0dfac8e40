package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/internal/repository"
	"github.com/segyhp/kos-management/pkg/utils"
)

// NotificationDispatcher turns payment and expense events into one
// AdminNotification per admin user.
type NotificationDispatcher struct {
	admins        repository.AdminDirectory
	notifications repository.NotificationRepository
	log           *slog.Logger
}

func NewNotificationDispatcher(admins repository.AdminDirectory, notifications repository.NotificationRepository) *NotificationDispatcher {
	return &NotificationDispatcher{
		admins:        admins,
		notifications: notifications,
		log:           slog.Default().With("component", "notification_dispatcher"),
	}
}

func (d *NotificationDispatcher) OnPaymentMarkedAsPaid(ctx context.Context, event domain.PaymentMarkedAsPaid) error {
	p := event.Payment

	var method any
	if p.PaymentMethod != nil {
		method = *p.PaymentMethod
	}

	template := domain.AdminNotification{
		PaymentID: &p.ID,
		Type:      domain.NotificationPaymentMarkedPaid,
		Title:     "Pembayaran Lunas",
		Message: fmt.Sprintf("%s (Kamar %s) telah menyelesaikan pembayaran sebesar Rp %s",
			p.TenantName, p.RoomNumber, utils.FormatRupiah(p.AmountDue)),
		Data: domain.NotificationData{
			"tenant_id":      p.TenantID,
			"room_id":        p.RoomID,
			"amount":         p.AmountDue.StringFixed(2),
			"payment_method": method,
		},
	}

	return d.fanOut(ctx, template)
}

func (d *NotificationDispatcher) OnPaymentReceived(ctx context.Context, event domain.PaymentReceived) error {
	p := event.Payment
	label := p.Status.Label()

	template := domain.AdminNotification{
		PaymentID: &p.ID,
		Type:      domain.NotificationPaymentReceived,
		Title:     "Pembayaran Diterima - " + label,
		Message: fmt.Sprintf("%s (Kamar %s) telah membayar Rp %s. Status: %s",
			p.TenantName, p.RoomNumber, utils.FormatRupiah(event.AmountReceived), label),
		Data: domain.NotificationData{
			"tenant_id":        p.TenantID,
			"room_id":          p.RoomID,
			"amount_received":  event.AmountReceived.StringFixed(2),
			"remaining_amount": p.RemainingAmount.StringFixed(2),
			"status":           string(p.Status),
		},
	}

	return d.fanOut(ctx, template)
}

// NotifyExpenseDue tells every admin that an operational expense is coming due.
// The caller owns the enabled and already-notified guards.
func (d *NotificationDispatcher) NotifyExpenseDue(ctx context.Context, expense *domain.OperationalExpense) error {
	var description any
	if expense.Description != nil {
		description = *expense.Description
	}

	template := domain.AdminNotification{
		OperationalExpenseID: &expense.ID,
		Type:                 domain.NotificationExpenseReminder,
		Title:                "Pengingat Tagihan Operasional: " + expense.Name,
		Message: fmt.Sprintf("Tagihan operasional \"%s\" sebesar Rp %s akan jatuh tempo pada %s. Mohon segera lakukan pembayaran.",
			expense.Name, utils.FormatRupiah(expense.Amount), expense.DueDate.Format("02/01/2006")),
		Data: domain.NotificationData{
			"expense_id":   expense.ID,
			"expense_name": expense.Name,
			"amount":       expense.Amount.StringFixed(2),
			"due_date":     expense.DueDate.Format("2006-01-02"),
			"description":  description,
		},
	}

	return d.fanOut(ctx, template)
}

// fanOut stores a copy of template for each admin in order. It stops at the
// first failure; copies already stored for earlier admins stay.
func (d *NotificationDispatcher) fanOut(ctx context.Context, template domain.AdminNotification) error {
	admins, err := d.admins.ListAdmins(ctx)
	if err != nil {
		return err
	}

	for i, admin := range admins {
		n := template
		n.UserID = admin.ID
		if err := d.notifications.Create(ctx, &n); err != nil {
			return fmt.Errorf("notify admin %d (%d of %d): %w", admin.ID, i+1, len(admins), err)
		}
	}

	d.log.InfoContext(ctx, "admin notifications created", "type", template.Type, "recipients", len(admins))
	return nil
}
