package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMarkedAsPaid is emitted after a bill is settled in full
type PaymentMarkedAsPaid struct {
	Payment    *PaymentDetail
	OccurredAt time.Time
}

// PaymentReceived is emitted after an installment is recorded
type PaymentReceived struct {
	Payment        *PaymentDetail
	AmountReceived decimal.Decimal
	OccurredAt     time.Time
}
