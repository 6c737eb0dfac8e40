package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/internal/repository"
	customError "github.com/segyhp/kos-management/pkg/errors"
	"github.com/segyhp/kos-management/pkg/utils"
)

// PaymentListener reacts to committed payment changes
type PaymentListener interface {
	OnPaymentMarkedAsPaid(ctx context.Context, event domain.PaymentMarkedAsPaid) error
	OnPaymentReceived(ctx context.Context, event domain.PaymentReceived) error
}

// PaymentService owns every change to a payment's amounts and status
type PaymentService struct {
	payments  repository.PaymentRepository
	tenants   repository.TenantRepository
	rooms     repository.RoomRepository
	listeners []PaymentListener
	loc       *time.Location
	now       func() time.Time
	log       *slog.Logger
}

func NewPaymentService(
	payments repository.PaymentRepository,
	tenants repository.TenantRepository,
	rooms repository.RoomRepository,
	loc *time.Location,
	listeners ...PaymentListener,
) *PaymentService {
	return &PaymentService{
		payments:  payments,
		tenants:   tenants,
		rooms:     rooms,
		listeners: listeners,
		loc:       loc,
		now:       func() time.Time { return time.Now().In(loc) },
		log:       slog.Default().With("component", "payment_service"),
	}
}

// CreatePayment opens a bill for the tenant's room at its monthly rate. The
// due date defaults to the 25th of next month.
func (s *PaymentService) CreatePayment(ctx context.Context, request *domain.CreatePaymentRequest) (*domain.PaymentDetail, error) {
	tenant, err := s.tenants.GetByID(ctx, request.TenantID)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, tenant.RoomID)
	if err != nil {
		return nil, err
	}

	dueDate := utils.NextDueDate(s.now())
	if request.DueDate != "" {
		dueDate, err = time.ParseInLocation("2006-01-02", request.DueDate, s.loc)
		if err != nil {
			return nil, customError.WrapValidation(fmt.Errorf("due_date: %w", err))
		}
	}

	payment := domain.NewPayment(tenant.ID, room, dueDate)
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "payment created",
		"payment_id", payment.ID,
		"tenant_id", tenant.ID,
		"amount_due", payment.AmountDue.StringFixed(2),
		"due_date", payment.DueDate.Format("2006-01-02"),
	)

	return &domain.PaymentDetail{
		Payment:     *payment,
		TenantName:  tenant.Name,
		TenantPhone: tenant.Phone,
		RoomNumber:  room.RoomNumber,
	}, nil
}

// MarkAsPaid settles the bill in full. Settling an already paid bill changes
// nothing and notifies nobody.
func (s *PaymentService) MarkAsPaid(ctx context.Context, id int64, paymentMethod string) (*domain.PaymentDetail, error) {
	today := s.now()

	detail, changed, err := s.payments.Mutate(ctx, id, func(p *domain.Payment) (bool, error) {
		return p.MarkPaid(optional(paymentMethod), today), nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.emitMarkedAsPaid(ctx, domain.PaymentMarkedAsPaid{Payment: detail, OccurredAt: today})
	}

	return detail, nil
}

// AddPayment records an installment of amount against the bill
func (s *PaymentService) AddPayment(ctx context.Context, id int64, amount decimal.Decimal, paymentMethod, notes string) (*domain.PaymentDetail, error) {
	today := s.now()

	detail, _, err := s.payments.Mutate(ctx, id, func(p *domain.Payment) (bool, error) {
		if err := p.AddInstallment(amount, optional(paymentMethod), today); err != nil {
			return false, err
		}
		if notes != "" {
			p.Notes = &notes
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.emitReceived(ctx, domain.PaymentReceived{Payment: detail, AmountReceived: amount, OccurredAt: today})

	return detail, nil
}

// SweepOverdue rewrites legacy statuses and flags past-due bills overdue
func (s *PaymentService) SweepOverdue(ctx context.Context) (*domain.SweepResult, error) {
	legacy, overdue, err := s.payments.SweepOverdue(ctx, s.now())
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "overdue sweep finished", "legacy_rewritten", legacy, "marked_overdue", overdue)

	return &domain.SweepResult{LegacyRewritten: legacy, MarkedOverdue: overdue}, nil
}

// Listeners run after the transaction committed, so their failures are
// logged rather than failing the payment change.
func (s *PaymentService) emitMarkedAsPaid(ctx context.Context, event domain.PaymentMarkedAsPaid) {
	for _, l := range s.listeners {
		if err := l.OnPaymentMarkedAsPaid(ctx, event); err != nil {
			s.log.ErrorContext(ctx, "payment listener failed",
				"event", "payment_marked_as_paid",
				"payment_id", event.Payment.ID,
				"error", err,
			)
		}
	}
}

func (s *PaymentService) emitReceived(ctx context.Context, event domain.PaymentReceived) {
	for _, l := range s.listeners {
		if err := l.OnPaymentReceived(ctx, event); err != nil {
			s.log.ErrorContext(ctx, "payment listener failed",
				"event", "payment_received",
				"payment_id", event.Payment.ID,
				"error", err,
			)
		}
	}
}

func (s *PaymentService) GetPayment(ctx context.Context, id int64) (*domain.PaymentDetail, error) {
	return s.payments.GetDetail(ctx, id)
}

func (s *PaymentService) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]*domain.PaymentDetail, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, customError.WrapValidation(fmt.Errorf("unknown payment status %q", filter.Status))
	}
	return s.payments.List(ctx, filter)
}

// Overdue lists unpaid bills past their due date
func (s *PaymentService) Overdue(ctx context.Context) (*domain.OverduePayments, error) {
	payments, err := s.payments.ListOverdue(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return &domain.OverduePayments{Count: len(payments), Payments: payments}, nil
}

// Report aggregates every payment into the overall billing report
func (s *PaymentService) Report(ctx context.Context) (*domain.OverallReport, error) {
	stats, err := s.payments.Stats(ctx, s.now())
	if err != nil {
		return nil, err
	}

	percentage := utils.Percentage(
		decimal.NewFromInt(int64(stats.PaidCount)),
		decimal.NewFromInt(int64(stats.TotalPayments)),
	)

	return &domain.OverallReport{
		TotalPayments:     stats.TotalPayments,
		PaidCount:         stats.PaidCount,
		UnpaidCount:       stats.UnpaidCount,
		OverdueCount:      stats.OverdueCount,
		TotalPaidAmount:   stats.TotalPaidAmount,
		TotalOutstanding:  stats.TotalOutstanding,
		TotalDueAmount:    stats.TotalDueAmount,
		PaymentPercentage: percentage,
	}, nil
}

// TenantUnpaid lists a tenant's bills that are not paid yet
func (s *PaymentService) TenantUnpaid(ctx context.Context, tenantID int64) (*domain.TenantUnpaidPayments, error) {
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.ListUnpaidByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	outstanding := decimal.Zero
	for _, p := range payments {
		outstanding = outstanding.Add(p.RemainingAmount)
	}

	return &domain.TenantUnpaidPayments{
		TenantName:       tenant.Name,
		TotalOutstanding: outstanding,
		UnpaidCount:      len(payments),
		Payments:         payments,
	}, nil
}

func (s *PaymentService) RoomSummary(ctx context.Context, roomID int64) (*domain.RoomSummary, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	tenant, err := s.rooms.ActiveTenant(ctx, roomID)
	if err != nil {
		return nil, err
	}

	totals, err := s.payments.RoomTotals(ctx, roomID)
	if err != nil {
		return nil, err
	}

	unpaid, err := s.payments.ListUnpaidByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return &domain.RoomSummary{
		RoomNumber:       room.RoomNumber,
		MonthlyRate:      room.MonthlyRate,
		ActiveTenant:     tenant,
		TotalPayments:    totals.TotalPayments,
		PaidPayments:     totals.PaidCount,
		UnpaidCount:      totals.UnpaidCount,
		TotalOutstanding: totals.TotalRemaining,
		UnpaidPayments:   unpaid,
	}, nil
}

func (s *PaymentService) TenantSummary(ctx context.Context, tenantID int64) (*domain.TenantSummary, error) {
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, tenant.RoomID)
	if err != nil {
		return nil, err
	}

	totals, err := s.payments.TenantTotals(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	unpaid, err := s.payments.ListUnpaidByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &domain.TenantSummary{
		TenantName:          tenant.Name,
		RoomNumber:          room.RoomNumber,
		CheckInDate:         tenant.CheckInDate.Format("2006-01-02"),
		TotalMonthsOccupied: utils.MonthsBetween(tenant.CheckInDate, s.now()),
		TotalPaid:           totals.TotalPaid,
		TotalDue:            totals.TotalDue,
		TotalRemaining:      totals.TotalRemaining,
		UnpaidCount:         totals.UnpaidCount,
		HasUnpaid:           totals.UnpaidCount > 0,
		UnpaidPayments:      unpaid,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
