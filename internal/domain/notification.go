package domain

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

type NotificationType string

const (
	NotificationPaymentMarkedPaid NotificationType = "payment_marked_paid"
	NotificationPaymentReceived   NotificationType = "payment_received"
	NotificationExpenseReminder   NotificationType = "operational_expense_reminder"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationPaymentMarkedPaid, NotificationPaymentReceived, NotificationExpenseReminder:
		return true
	}
	return false
}

// NotificationData is the structured payload stored in a JSONB column
type NotificationData map[string]any

func (d NotificationData) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	// lib/pq sends []byte as bytea, so JSONB goes over as text
	return string(b), nil
}

func (d *NotificationData) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = NotificationData{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("notification data: unsupported type %T", src)
	}

	out := NotificationData{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("notification data: %w", err)
	}
	*d = out
	return nil
}

// AdminNotification is one admin's copy of an operational event
type AdminNotification struct {
	ID                   int64            `json:"id" db:"id"`
	UserID               int64            `json:"user_id" db:"user_id"`
	PaymentID            *int64           `json:"payment_id,omitempty" db:"payment_id"`
	OperationalExpenseID *int64           `json:"operational_expense_id,omitempty" db:"operational_expense_id"`
	Type                 NotificationType `json:"type" db:"type"`
	Title                string           `json:"title" db:"title"`
	Message              string           `json:"message" db:"message"`
	Data                 NotificationData `json:"data" db:"data"`
	IsRead               bool             `json:"is_read" db:"is_read"`
	ReadAt               *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt            time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at" db:"updated_at"`
}

// OwnedBy reports whether the notification belongs to userID
func (n *AdminNotification) OwnedBy(userID int64) bool {
	return n.UserID == userID
}

// MarkRead flags the notification read. Already-read notifications keep
// their original read_at and MarkRead returns false.
func (n *AdminNotification) MarkRead(now time.Time) bool {
	if n.IsRead {
		return false
	}
	n.IsRead = true
	n.ReadAt = &now
	return true
}
