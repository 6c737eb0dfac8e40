package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateBalance(t *testing.T) {
	today := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	future := time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC)
	past := time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		due           int64
		paid          int64
		dueDate       time.Time
		current       PaymentStatus
		wantRemaining int64
		wantStatus    PaymentStatus
		wantOverdue   bool
	}{
		{name: "nothing paid", due: 1000000, paid: 0, dueDate: future, current: PaymentStatusPending, wantRemaining: 1000000, wantStatus: PaymentStatusPending},
		{name: "half paid", due: 1000000, paid: 500000, dueDate: future, current: PaymentStatusPending, wantRemaining: 500000, wantStatus: PaymentStatusPartial},
		{name: "exactly paid", due: 1000000, paid: 1000000, dueDate: future, current: PaymentStatusPartial, wantRemaining: 0, wantStatus: PaymentStatusPaid},
		{name: "overpaid floors at zero", due: 1000000, paid: 1200000, dueDate: future, current: PaymentStatusPartial, wantRemaining: 0, wantStatus: PaymentStatusPaid},
		{name: "past due unpaid", due: 800000, paid: 0, dueDate: past, current: PaymentStatusPending, wantRemaining: 800000, wantStatus: PaymentStatusPending, wantOverdue: true},
		{name: "past due partial", due: 800000, paid: 100000, dueDate: past, current: PaymentStatusPartial, wantRemaining: 700000, wantStatus: PaymentStatusPartial, wantOverdue: true},
		{name: "past due but paid", due: 800000, paid: 800000, dueDate: past, current: PaymentStatusOverdue, wantRemaining: 0, wantStatus: PaymentStatusPaid},
		{name: "swept overdue stays overdue", due: 800000, paid: 0, dueDate: future, current: PaymentStatusOverdue, wantRemaining: 800000, wantStatus: PaymentStatusPending, wantOverdue: true},
		{name: "due today is not overdue", due: 800000, paid: 0, dueDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), current: PaymentStatusPending, wantRemaining: 800000, wantStatus: PaymentStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := CalculateBalance(decimal.NewFromInt(tt.due), decimal.NewFromInt(tt.paid), tt.dueDate, tt.current, today)

			assert.True(t, decimal.NewFromInt(tt.wantRemaining).Equal(b.Remaining), "remaining: got %s", b.Remaining)
			assert.Equal(t, tt.wantStatus, b.Status)
			assert.Equal(t, tt.wantOverdue, b.Overdue)
		})
	}
}

func TestCalculateBalance_RemainingInvariant(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dues := []string{"0", "0.01", "1000000", "1250000.50"}
	paids := []string{"0", "0.01", "500000", "1000000", "1250000.50", "2000000"}

	for _, d := range dues {
		for _, p := range paids {
			due := decimal.RequireFromString(d)
			paid := decimal.RequireFromString(p)

			b := CalculateBalance(due, paid, today, PaymentStatusPending, today)

			want := decimal.Max(decimal.Zero, due.Sub(paid))
			assert.True(t, want.Equal(b.Remaining), "due=%s paid=%s", d, p)
			assert.True(t, b.Status.Valid())

			switch {
			case b.Remaining.LessThanOrEqual(decimal.Zero):
				assert.Equal(t, PaymentStatusPaid, b.Status)
			case paid.GreaterThan(decimal.Zero):
				assert.Equal(t, PaymentStatusPartial, b.Status)
			default:
				assert.Equal(t, PaymentStatusPending, b.Status)
			}
		}
	}
}

func TestCalculateBalance_IgnoresLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	// due date as Postgres returns a DATE: UTC midnight
	dueDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	// 00:30 on the 11th in Jakarta is still the 10th in UTC
	today := time.Date(2024, 6, 11, 0, 30, 0, 0, jakarta)

	b := CalculateBalance(decimal.NewFromInt(100), decimal.Zero, dueDate, PaymentStatusPending, today)
	assert.True(t, b.Overdue)
}
