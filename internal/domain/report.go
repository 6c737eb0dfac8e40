package domain

import "github.com/shopspring/decimal"

// PaymentFilter narrows payment listings. Zero values mean "any".
type PaymentFilter struct {
	Status   PaymentStatus
	TenantID int64
	RoomID   int64
}

// PaymentStats are the raw aggregates behind the overall report
type PaymentStats struct {
	TotalPayments    int             `db:"total_payments"`
	PaidCount        int             `db:"paid_count"`
	UnpaidCount      int             `db:"unpaid_count"`
	OverdueCount     int             `db:"overdue_count"`
	TotalPaidAmount  decimal.Decimal `db:"total_paid_amount"`
	TotalOutstanding decimal.Decimal `db:"total_outstanding"`
	TotalDueAmount   decimal.Decimal `db:"total_due_amount"`
}

// PaymentTotals aggregates the payments of one tenant or room. Due and
// remaining only count bills that are not paid.
type PaymentTotals struct {
	TotalPayments  int             `db:"total_payments"`
	PaidCount      int             `db:"paid_count"`
	UnpaidCount    int             `db:"unpaid_count"`
	TotalPaid      decimal.Decimal `db:"total_paid"`
	TotalDue       decimal.Decimal `db:"total_due"`
	TotalRemaining decimal.Decimal `db:"total_remaining"`
}

type OverallReport struct {
	TotalPayments     int             `json:"total_payments"`
	PaidCount         int             `json:"paid_count"`
	UnpaidCount       int             `json:"unpaid_count"`
	OverdueCount      int             `json:"overdue_count"`
	TotalPaidAmount   decimal.Decimal `json:"total_paid_amount"`
	TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
	TotalDueAmount    decimal.Decimal `json:"total_due_amount"`
	PaymentPercentage decimal.Decimal `json:"payment_percentage"`
}

type RoomSummary struct {
	RoomNumber       string           `json:"room_number"`
	MonthlyRate      decimal.Decimal  `json:"monthly_rate"`
	ActiveTenant     *Tenant          `json:"active_tenant"`
	TotalPayments    int              `json:"total_payments"`
	PaidPayments     int              `json:"paid_payments"`
	UnpaidCount      int              `json:"unpaid_count"`
	TotalOutstanding decimal.Decimal  `json:"total_outstanding"`
	UnpaidPayments   []*PaymentDetail `json:"unpaid_payments"`
}

type TenantSummary struct {
	TenantName          string           `json:"tenant_name"`
	RoomNumber          string           `json:"room_number"`
	CheckInDate         string           `json:"check_in_date"`
	TotalMonthsOccupied int              `json:"total_months_occupied"`
	TotalPaid           decimal.Decimal  `json:"total_paid"`
	TotalDue            decimal.Decimal  `json:"total_due"`
	TotalRemaining      decimal.Decimal  `json:"total_remaining"`
	UnpaidCount         int              `json:"unpaid_count"`
	HasUnpaid           bool             `json:"has_unpaid"`
	UnpaidPayments      []*PaymentDetail `json:"unpaid_payments"`
}

type TenantUnpaidPayments struct {
	TenantName       string           `json:"tenant_name"`
	TotalOutstanding decimal.Decimal  `json:"total_outstanding"`
	UnpaidCount      int              `json:"unpaid_count"`
	Payments         []*PaymentDetail `json:"payments"`
}

type OverduePayments struct {
	Count    int              `json:"count"`
	Payments []*PaymentDetail `json:"payments"`
}

// SweepResult reports what one overdue sweep changed
type SweepResult struct {
	LegacyRewritten int64 `json:"legacy_rewritten"`
	MarkedOverdue   int64 `json:"marked_overdue"`
	ExpensesOverdue int64 `json:"expenses_overdue"`
}
