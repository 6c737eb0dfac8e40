package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customError "github.com/segyhp/kos-management/pkg/errors"
)

func strPtr(s string) *string { return &s }

func newTestPayment(amountDue int64) *Payment {
	room := &Room{ID: 4, RoomNumber: "A-04", MonthlyRate: decimal.NewFromInt(amountDue)}
	return NewPayment(11, room, time.Date(2024, 7, 25, 0, 0, 0, 0, time.UTC))
}

func TestNewPayment(t *testing.T) {
	p := newTestPayment(1000000)

	assert.Equal(t, int64(11), p.TenantID)
	assert.Equal(t, int64(4), p.RoomID)
	assert.True(t, decimal.NewFromInt(1000000).Equal(p.AmountDue))
	assert.True(t, p.AmountPaid.IsZero())
	assert.True(t, decimal.NewFromInt(1000000).Equal(p.RemainingAmount))
	assert.Equal(t, PaymentStatusPending, p.Status)
	assert.Nil(t, p.PaidDate)
}

func TestPayment_TwoInstallmentsSettleTheBill(t *testing.T) {
	p := newTestPayment(1000000)
	day1 := time.Date(2024, 7, 5, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 7, 20, 15, 0, 0, 0, time.UTC)

	require.NoError(t, p.AddInstallment(decimal.NewFromInt(500000), strPtr(PaymentMethodCash), day1))

	assert.True(t, decimal.NewFromInt(500000).Equal(p.AmountPaid))
	assert.True(t, decimal.NewFromInt(500000).Equal(p.RemainingAmount))
	assert.Equal(t, PaymentStatusPartial, p.Status)
	assert.Nil(t, p.PaidDate)

	require.NoError(t, p.AddInstallment(decimal.NewFromInt(500000), nil, day2))

	assert.True(t, decimal.NewFromInt(1000000).Equal(p.AmountPaid))
	assert.True(t, p.RemainingAmount.IsZero())
	assert.Equal(t, PaymentStatusPaid, p.Status)
	require.NotNil(t, p.PaidDate)
	assert.Equal(t, time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC), *p.PaidDate)
	assert.Equal(t, PaymentMethodCash, *p.PaymentMethod)
}

func TestPayment_InstallmentsAreAdditive(t *testing.T) {
	today := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	split := newTestPayment(1000000)
	require.NoError(t, split.AddInstallment(decimal.NewFromInt(150000), nil, today))
	require.NoError(t, split.AddInstallment(decimal.NewFromInt(250000), nil, today))

	single := newTestPayment(1000000)
	require.NoError(t, single.AddInstallment(decimal.NewFromInt(400000), nil, today))

	assert.True(t, single.AmountPaid.Equal(split.AmountPaid))
	assert.True(t, single.RemainingAmount.Equal(split.RemainingAmount))
	assert.Equal(t, single.Status, split.Status)
}

func TestPayment_AddInstallmentRejectsBadAmounts(t *testing.T) {
	today := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantErr error
	}{
		{name: "zero", amount: decimal.Zero, wantErr: customError.ErrInvalidPaymentAmount},
		{name: "negative", amount: decimal.NewFromInt(-1000), wantErr: customError.ErrInvalidPaymentAmount},
		{name: "above remaining", amount: decimal.NewFromInt(1000001), wantErr: customError.ErrOverpayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPayment(1000000)

			err := p.AddInstallment(tt.amount, nil, today)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.True(t, p.AmountPaid.IsZero(), "payment must be untouched")
			assert.Equal(t, PaymentStatusPending, p.Status)
		})
	}
}

func TestPayment_MarkPaid(t *testing.T) {
	p := newTestPayment(1200000)
	today := time.Date(2024, 7, 3, 8, 0, 0, 0, time.UTC)

	changed := p.MarkPaid(strPtr(PaymentMethodBankTransfer), today)

	assert.True(t, changed)
	assert.True(t, decimal.NewFromInt(1200000).Equal(p.AmountPaid))
	assert.True(t, p.RemainingAmount.IsZero())
	assert.Equal(t, PaymentStatusPaid, p.Status)
	assert.Equal(t, time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC), *p.PaidDate)
	assert.Equal(t, PaymentMethodBankTransfer, *p.PaymentMethod)
}

func TestPayment_MarkPaidIsIdempotent(t *testing.T) {
	p := newTestPayment(1200000)
	first := time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC)
	second := time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC)

	require.True(t, p.MarkPaid(strPtr(PaymentMethodCash), first))
	snapshot := *p

	assert.False(t, p.MarkPaid(strPtr(PaymentMethodQRIS), second))
	assert.True(t, snapshot.AmountPaid.Equal(p.AmountPaid))
	assert.True(t, snapshot.RemainingAmount.Equal(p.RemainingAmount))
	assert.Equal(t, snapshot.Status, p.Status)
	assert.Equal(t, first, *p.PaidDate)
	assert.Equal(t, PaymentMethodCash, *p.PaymentMethod)
}

func TestPayment_MarkPaidKeepsMethodWhenNoneGiven(t *testing.T) {
	p := newTestPayment(900000)
	p.PaymentMethod = strPtr(PaymentMethodEWallet)

	p.MarkPaid(nil, time.Now())

	assert.Equal(t, PaymentMethodEWallet, *p.PaymentMethod)
}

func TestPayment_InstallmentOnOverdueBill(t *testing.T) {
	p := newTestPayment(1000000)
	p.Status = PaymentStatusOverdue
	today := time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, p.AddInstallment(decimal.NewFromInt(300000), nil, today))

	assert.Equal(t, PaymentStatusPartial, p.Status)
	assert.True(t, p.IsOverdue(today), "still past due while unpaid")
	assert.Equal(t, 8, p.DaysOverdue(today))
}

func TestPayment_Helpers(t *testing.T) {
	p := newTestPayment(1000000)
	today := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.AddInstallment(decimal.NewFromInt(250000), nil, today))

	assert.True(t, decimal.NewFromInt(25).Equal(p.PaymentPercentage()))
	assert.False(t, p.IsOverdue(today))
	assert.Equal(t, 0, p.DaysOverdue(today))
}

func TestPaymentStatus_Label(t *testing.T) {
	assert.Equal(t, "Lunas", PaymentStatusPaid.Label())
	assert.Equal(t, "Sebagian", PaymentStatusPartial.Label())
	assert.Equal(t, "Tertunda", PaymentStatusPending.Label())
	assert.Equal(t, "Jatuh Tempo", PaymentStatusOverdue.Label())
	assert.Equal(t, "unpaid", PaymentStatusLegacyUnpaid.Label())
	assert.False(t, PaymentStatusLegacyUnpaid.Valid())
}
