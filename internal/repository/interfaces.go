package repository

import (
	"context"
	"time"

	"github.com/segyhp/kos-management/internal/domain"
)

// PaymentMutation changes a locked payment in place. It reports whether the
// payment changed; an unchanged payment is not written back.
type PaymentMutation func(p *domain.Payment) (bool, error)

// RoomRepository defines the interface for room data operations
type RoomRepository interface {
	// Create inserts a room and fills its ID and timestamps
	Create(ctx context.Context, room *domain.Room) error

	// GetByID retrieves a room by ID
	GetByID(ctx context.Context, id int64) (*domain.Room, error)

	// UpdateOccupancy persists status, occupied_at and available_at
	UpdateOccupancy(ctx context.Context, room *domain.Room) error

	// ActiveTenant returns the room's active tenant, nil when there is none
	ActiveTenant(ctx context.Context, roomID int64) (*domain.Tenant, error)
}

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	// Create inserts a tenant and fills its ID and timestamps
	Create(ctx context.Context, tenant *domain.Tenant) error

	// GetByID retrieves a tenant by ID
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create inserts a new bill
	Create(ctx context.Context, payment *domain.Payment) error

	// GetDetail retrieves a payment joined with its tenant and room
	GetDetail(ctx context.Context, id int64) (*domain.PaymentDetail, error)

	// List returns payments matching filter, oldest due date first
	List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.PaymentDetail, error)

	// ListUnpaidByTenant returns the tenant's payments that are not paid
	ListUnpaidByTenant(ctx context.Context, tenantID int64) ([]*domain.PaymentDetail, error)

	// ListUnpaidByRoom returns the room's payments that are not paid
	ListUnpaidByRoom(ctx context.Context, roomID int64) ([]*domain.PaymentDetail, error)

	// ListOverdue returns unpaid payments due before today
	ListOverdue(ctx context.Context, today time.Time) ([]*domain.PaymentDetail, error)

	// ListDueForReminder returns unpaid payments due on or before until
	ListDueForReminder(ctx context.Context, until time.Time) ([]*domain.PaymentDetail, error)

	// Stats aggregates all payments for the overall report
	Stats(ctx context.Context, today time.Time) (*domain.PaymentStats, error)

	// RoomTotals aggregates a room's payments
	RoomTotals(ctx context.Context, roomID int64) (*domain.PaymentTotals, error)

	// TenantTotals aggregates a tenant's payments
	TenantTotals(ctx context.Context, tenantID int64) (*domain.PaymentTotals, error)

	// Mutate locks the payment row, applies fn and writes the result back in
	// one transaction. It returns the committed payment detail and whether
	// fn changed anything.
	Mutate(ctx context.Context, id int64, fn PaymentMutation) (*domain.PaymentDetail, bool, error)

	// SweepOverdue rewrites legacy unpaid rows to pending, then flags unpaid
	// payments due before today as overdue.
	SweepOverdue(ctx context.Context, today time.Time) (legacy int64, overdue int64, err error)
}

// NotificationRepository defines the interface for admin notification data operations
type NotificationRepository interface {
	// Create inserts a notification and fills its ID and timestamps
	Create(ctx context.Context, n *domain.AdminNotification) error

	// GetByID retrieves a notification by ID regardless of owner
	GetByID(ctx context.Context, id int64) (*domain.AdminNotification, error)

	// ListByUser returns the user's notifications newest first, optionally of one type
	ListByUser(ctx context.Context, userID int64, notificationType domain.NotificationType) ([]*domain.AdminNotification, error)

	// ListUnread returns the user's unread notifications newest first
	ListUnread(ctx context.Context, userID int64) ([]*domain.AdminNotification, error)

	// CountUnread counts the user's unread notifications
	CountUnread(ctx context.Context, userID int64) (int, error)

	// UpdateRead persists is_read and read_at
	UpdateRead(ctx context.Context, n *domain.AdminNotification) error

	// MarkAllRead flags every unread notification of the user read at now
	MarkAllRead(ctx context.Context, userID int64, now time.Time) (int64, error)

	// Delete removes a notification
	Delete(ctx context.Context, id int64) error

	// DeleteCreatedBefore removes notifications created strictly before cutoff
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ExpenseRepository defines the interface for operational expense data operations
type ExpenseRepository interface {
	// GetByID retrieves an expense by ID
	GetByID(ctx context.Context, id int64) (*domain.OperationalExpense, error)

	// ListDueForReminder returns enabled, unpaid expenses due between from and until inclusive
	ListDueForReminder(ctx context.Context, from, until time.Time) ([]*domain.OperationalExpense, error)

	// UpdateNotified persists notified_channels and last_notified_at
	UpdateNotified(ctx context.Context, expense *domain.OperationalExpense) error

	// MarkOverdue flags pending expenses due before today as overdue
	MarkOverdue(ctx context.Context, today time.Time) (int64, error)
}

// AdminDirectory lists the users who receive operational notifications
type AdminDirectory interface {
	ListAdmins(ctx context.Context) ([]*domain.User, error)
}

// UserRepository defines the interface for back-office user data operations
type UserRepository interface {
	AdminDirectory

	// Create inserts a user and fills its ID and timestamps
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
