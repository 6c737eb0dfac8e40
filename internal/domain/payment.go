package domain

import (
	"time"

	"github.com/shopspring/decimal"

	customError "github.com/segyhp/kos-management/pkg/errors"
	"github.com/segyhp/kos-management/pkg/utils"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"

	// PaymentStatusLegacyUnpaid only exists in rows written before the
	// four-state enum; the overdue sweep rewrites it to pending.
	PaymentStatusLegacyUnpaid PaymentStatus = "unpaid"
)

// Valid reports whether s is one of the four current statuses
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// Label is the Indonesian status wording used in admin notifications
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentStatusPaid:
		return "Lunas"
	case PaymentStatusPartial:
		return "Sebagian"
	case PaymentStatusPending:
		return "Tertunda"
	case PaymentStatusOverdue:
		return "Jatuh Tempo"
	default:
		return string(s)
	}
}

const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodEWallet      = "e_wallet"
	PaymentMethodQRIS         = "qris"
)

// Payment is one billing cycle of a tenant's rent
type Payment struct {
	ID              int64           `json:"id" db:"id"`
	TenantID        int64           `json:"tenant_id" db:"tenant_id"`
	RoomID          int64           `json:"room_id" db:"room_id"`
	AmountDue       decimal.Decimal `json:"amount_due" db:"amount_due"`
	AmountPaid      decimal.Decimal `json:"amount_paid" db:"amount_paid"`
	RemainingAmount decimal.Decimal `json:"remaining_amount" db:"remaining_amount"`
	DueDate         time.Time       `json:"due_date" db:"due_date"`
	PaidDate        *time.Time      `json:"paid_date,omitempty" db:"paid_date"`
	Status          PaymentStatus   `json:"status" db:"status"`
	PaymentMethod   *string         `json:"payment_method,omitempty" db:"payment_method"`
	Notes           *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// PaymentDetail is a payment joined with the tenant and room it bills
type PaymentDetail struct {
	Payment
	TenantName  string `json:"tenant_name" db:"tenant_name"`
	TenantPhone string `json:"-" db:"tenant_phone"`
	RoomNumber  string `json:"room_number" db:"room_number"`
}

// NewPayment opens a bill for the room's monthly rate
func NewPayment(tenantID int64, room *Room, dueDate time.Time) *Payment {
	p := &Payment{
		TenantID:   tenantID,
		RoomID:     room.ID,
		AmountDue:  room.MonthlyRate,
		AmountPaid: decimal.Zero,
		DueDate:    utils.DateOf(dueDate),
		Status:     PaymentStatusPending,
	}
	p.applyBalance(dueDate)
	return p
}

// Balance derives the payment's balance as of today
func (p *Payment) Balance(today time.Time) Balance {
	return CalculateBalance(p.AmountDue, p.AmountPaid, p.DueDate, p.Status, today)
}

// applyBalance re-establishes remaining_amount and status from the amounts.
// Every mutation ends with it.
func (p *Payment) applyBalance(today time.Time) {
	b := p.Balance(today)
	p.RemainingAmount = b.Remaining
	p.Status = b.Status
}

// MarkPaid settles the bill in full. It returns false and leaves the payment
// untouched when it is already settled.
func (p *Payment) MarkPaid(method *string, today time.Time) bool {
	if p.IsPaid() {
		return false
	}

	p.AmountPaid = p.AmountDue
	paidDate := utils.DateOf(today)
	p.PaidDate = &paidDate
	if method != nil && *method != "" {
		p.PaymentMethod = method
	}
	p.applyBalance(today)

	return true
}

// AddInstallment records a partial (or final) payment of amount.
// Non-positive amounts and amounts above the remaining balance are rejected.
func (p *Payment) AddInstallment(amount decimal.Decimal, method *string, today time.Time) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return customError.WrapInvalidPaymentAmount(amount)
	}

	remaining := decimal.Max(decimal.Zero, p.AmountDue.Sub(p.AmountPaid))
	if amount.GreaterThan(remaining) {
		return customError.WrapOverpayment(amount, remaining)
	}

	wasPaid := p.IsPaid()
	p.AmountPaid = p.AmountPaid.Add(amount)
	if method != nil && *method != "" {
		p.PaymentMethod = method
	}
	p.applyBalance(today)

	if p.Status == PaymentStatusPaid && !wasPaid {
		paidDate := utils.DateOf(today)
		p.PaidDate = &paidDate
	}

	return nil
}

// IsPaid reports whether the bill is settled
func (p *Payment) IsPaid() bool {
	return p.Status == PaymentStatusPaid && p.RemainingAmount.LessThanOrEqual(decimal.Zero)
}

// IsOverdue reports whether the bill is unsettled past its due date
func (p *Payment) IsOverdue(today time.Time) bool {
	return p.Balance(today).Overdue
}

// DaysOverdue counts days past the due date, 0 when not overdue
func (p *Payment) DaysOverdue(today time.Time) int {
	if !p.IsOverdue(today) {
		return 0
	}
	return max(0, utils.DaysBetween(p.DueDate, today))
}

// PaymentPercentage is the share of amount_due already paid
func (p *Payment) PaymentPercentage() decimal.Decimal {
	return utils.Percentage(p.AmountPaid, p.AmountDue)
}
