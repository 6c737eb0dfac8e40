package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the derived state of a bill for a given day
type Balance struct {
	Remaining decimal.Decimal
	Status    PaymentStatus
	Overdue   bool
}

// CalculateBalance derives the remaining amount and status from the due and
// paid amounts. The derived status is only ever paid, partial or pending;
// overdue is reported separately and applied by the daily sweep.
func CalculateBalance(amountDue, amountPaid decimal.Decimal, dueDate time.Time, currentStatus PaymentStatus, today time.Time) Balance {
	remaining := decimal.Max(decimal.Zero, amountDue.Sub(amountPaid))

	status := PaymentStatusPending
	switch {
	case remaining.LessThanOrEqual(decimal.Zero):
		status = PaymentStatusPaid
	case amountPaid.GreaterThan(decimal.Zero):
		status = PaymentStatusPartial
	}

	overdue := status != PaymentStatusPaid &&
		(currentStatus == PaymentStatusOverdue || dayBefore(dueDate, today))

	return Balance{
		Remaining: remaining,
		Status:    status,
		Overdue:   overdue,
	}
}

// dayBefore compares calendar dates, ignoring clock and location. Due dates
// come back from Postgres as UTC midnight while "today" is in business time.
func dayBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
