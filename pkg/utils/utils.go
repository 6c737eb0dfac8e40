package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDueDay is the day of month new bills fall due on
const DefaultDueDay = 25

// FormatRupiah renders an amount the way invoices print it: rounded to whole
// rupiah with "." as the thousands separator (1200000 -> "1.200.000").
func FormatRupiah(amount decimal.Decimal) string {
	digits := amount.Round(0).Abs().StringFixed(0)

	var b strings.Builder
	if amount.Round(0).IsNegative() {
		b.WriteByte('-')
	}

	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

// DateOf truncates t to midnight in its own location
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// NextDueDate returns the DefaultDueDay of the month after from
func NextDueDate(from time.Time) time.Time {
	y, m, _ := from.Date()
	return time.Date(y, m+1, DefaultDueDay, 0, 0, 0, 0, from.Location())
}

// DaysBetween counts whole calendar days from a to b (negative when b is before a)
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// MonthsBetween counts whole months elapsed from a to b, 0 when b is before a
func MonthsBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	months := (by-ay)*12 + int(bm-am)
	if bd < ad {
		months--
	}
	return max(0, months)
}

// Percentage returns part/whole*100 rounded to two places, 0 when whole is zero
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2)
}
