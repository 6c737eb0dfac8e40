package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/internal/messaging"
	"github.com/segyhp/kos-management/internal/repository"
	"github.com/segyhp/kos-management/pkg/utils"
)

// Messenger delivers WhatsApp text messages
type Messenger interface {
	IsConfigured() bool
	Send(ctx context.Context, phone, message string) messaging.Result
	SendBulk(ctx context.Context, phones []string, message string) []messaging.Result
}

type ReminderSummary struct {
	Tenants     int             `json:"tenants"`
	Sent        int             `json:"sent"`
	Failed      int             `json:"failed"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// TenantReminderService sends WhatsApp reminders to tenants with bills due
// soon or already late, then a digest to the admins.
type TenantReminderService struct {
	payments   repository.PaymentRepository
	admins     repository.AdminDirectory
	messenger  Messenger
	windowDays int
	now        func() time.Time
	log        *slog.Logger
}

func NewTenantReminderService(
	payments repository.PaymentRepository,
	admins repository.AdminDirectory,
	messenger Messenger,
	windowDays int,
	loc *time.Location,
) *TenantReminderService {
	return &TenantReminderService{
		payments:   payments,
		admins:     admins,
		messenger:  messenger,
		windowDays: windowDays,
		now:        func() time.Time { return time.Now().In(loc) },
		log:        slog.Default().With("component", "tenant_reminder"),
	}
}

type tenantBills struct {
	name     string
	phone    string
	room     string
	payments []*domain.PaymentDetail
}

func (s *TenantReminderService) SendReminders(ctx context.Context) (*ReminderSummary, error) {
	summary := &ReminderSummary{Outstanding: decimal.Zero}

	if !s.messenger.IsConfigured() {
		s.log.WarnContext(ctx, "whatsapp gateway not configured, skipping tenant reminders")
		return summary, nil
	}

	today := utils.DateOf(s.now())
	payments, err := s.payments.ListDueForReminder(ctx, today.AddDate(0, 0, s.windowDays))
	if err != nil {
		return nil, err
	}

	// rows arrive ordered by tenant
	var groups []*tenantBills
	for _, p := range payments {
		if len(groups) == 0 || groups[len(groups)-1].payments[0].TenantID != p.TenantID {
			groups = append(groups, &tenantBills{name: p.TenantName, phone: p.TenantPhone, room: p.RoomNumber})
		}
		g := groups[len(groups)-1]
		g.payments = append(g.payments, p)
		summary.Outstanding = summary.Outstanding.Add(p.RemainingAmount)
	}

	for _, g := range groups {
		result := s.messenger.Send(ctx, g.phone, tenantReminderMessage(g, today))
		if result.Success {
			summary.Sent++
		} else {
			summary.Failed++
			s.log.WarnContext(ctx, "tenant reminder failed", "tenant", g.name, "phone", result.Phone, "error", result.Error)
		}
	}
	summary.Tenants = len(groups)

	if summary.Tenants > 0 {
		s.sendDigest(ctx, summary)
	}

	s.log.InfoContext(ctx, "tenant reminders finished",
		"tenants", summary.Tenants,
		"sent", summary.Sent,
		"failed", summary.Failed,
		"outstanding", summary.Outstanding.StringFixed(2),
	)

	return summary, nil
}

func (s *TenantReminderService) sendDigest(ctx context.Context, summary *ReminderSummary) {
	admins, err := s.admins.ListAdmins(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "listing admins for reminder digest", "error", err)
		return
	}

	var phones []string
	for _, a := range admins {
		if a.Phone != nil && *a.Phone != "" {
			phones = append(phones, *a.Phone)
		}
	}
	if len(phones) == 0 {
		return
	}

	message := fmt.Sprintf("Pengingat pembayaran terkirim ke %d dari %d penyewa. Total tagihan belum lunas: Rp %s",
		summary.Sent, summary.Tenants, utils.FormatRupiah(summary.Outstanding))

	for _, result := range s.messenger.SendBulk(ctx, phones, message) {
		if !result.Success {
			s.log.WarnContext(ctx, "admin digest failed", "phone", result.Phone, "error", result.Error)
		}
	}
}

func tenantReminderMessage(g *tenantBills, today time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Halo %s,\n\nBerikut tagihan kos Kamar %s yang belum lunas:\n", g.name, g.room)

	total := decimal.Zero
	for _, p := range g.payments {
		status := p.Status.Label()
		if p.IsOverdue(today) {
			status = domain.PaymentStatusOverdue.Label()
		}
		fmt.Fprintf(&b, "- Jatuh tempo %s: Rp %s (%s)\n",
			p.DueDate.Format("02/01/2006"), utils.FormatRupiah(p.RemainingAmount), status)
		total = total.Add(p.RemainingAmount)
	}

	fmt.Fprintf(&b, "\nTotal: Rp %s\nMohon segera lakukan pembayaran. Terima kasih.", utils.FormatRupiah(total))
	return b.String()
}
