package domain

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/segyhp/kos-management/pkg/utils"
)

type ExpenseStatus string

const (
	ExpenseStatusPending ExpenseStatus = "pending"
	ExpenseStatusPaid    ExpenseStatus = "paid"
	ExpenseStatusOverdue ExpenseStatus = "overdue"
)

// ChannelAdmin is the in-app admin notification channel
const ChannelAdmin = "admin"

// NotifiedChannels records when each channel last delivered a reminder
type NotifiedChannels map[string]time.Time

func (c NotifiedChannels) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	// lib/pq sends []byte as bytea, so JSONB goes over as text
	return string(b), nil
}

func (c *NotifiedChannels) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = NotifiedChannels{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("notified channels: unsupported type %T", src)
	}

	out := NotifiedChannels{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("notified channels: %w", err)
	}
	*c = out
	return nil
}

// OperationalExpense is a recurring running cost of the kos (water,
// electricity, internet) that admins get reminded about before it is due.
type OperationalExpense struct {
	ID                  int64            `json:"id" db:"id"`
	Name                string           `json:"name" db:"name"`
	Description         *string          `json:"description,omitempty" db:"description"`
	Amount              decimal.Decimal  `json:"amount" db:"amount"`
	DueDate             time.Time        `json:"due_date" db:"due_date"`
	NotificationEnabled bool             `json:"notification_enabled" db:"notification_enabled"`
	NotificationTime    string           `json:"notification_time" db:"notification_time"`
	Status              ExpenseStatus    `json:"status" db:"status"`
	NotifiedChannels    NotifiedChannels `json:"notified_channels" db:"notified_channels"`
	LastNotifiedAt      *time.Time       `json:"last_notified_at,omitempty" db:"last_notified_at"`
	CreatedAt           time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at" db:"updated_at"`
}

// WasNotifiedToday reports whether channel already delivered a reminder on
// now's calendar day (in now's location).
func (e *OperationalExpense) WasNotifiedToday(channel string, now time.Time) bool {
	at, ok := e.NotifiedChannels[channel]
	if !ok {
		return false
	}
	return utils.SameDay(at, now, now.Location())
}

// MarkNotified records a delivery on channel at now
func (e *OperationalExpense) MarkNotified(channel string, now time.Time) {
	if e.NotifiedChannels == nil {
		e.NotifiedChannels = NotifiedChannels{}
	}
	e.NotifiedChannels[channel] = now
	e.LastNotifiedAt = &now
}

// ReminderHour parses the hour out of NotificationTime ("HH:MM")
func (e *OperationalExpense) ReminderHour() (int, error) {
	t, err := time.Parse("15:04", e.NotificationTime)
	if err != nil {
		return 0, fmt.Errorf("invalid notification_time %q: %w", e.NotificationTime, err)
	}
	return t.Hour(), nil
}

// IsOverdue reports whether the expense is unpaid past its due date
func (e *OperationalExpense) IsOverdue(today time.Time) bool {
	return e.Status != ExpenseStatusPaid && dayBefore(e.DueDate, today)
}
