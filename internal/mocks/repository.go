package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/internal/repository"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) UpdateOccupancy(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) ActiveTenant(ctx context.Context, roomID int64) (*domain.Tenant, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetDetail(ctx context.Context, id int64) (*domain.PaymentDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentDetail), args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.PaymentDetail, error) {
	args := m.Called(ctx, filter)
	return details(args)
}

func (m *MockPaymentRepository) ListUnpaidByTenant(ctx context.Context, tenantID int64) ([]*domain.PaymentDetail, error) {
	args := m.Called(ctx, tenantID)
	return details(args)
}

func (m *MockPaymentRepository) ListUnpaidByRoom(ctx context.Context, roomID int64) ([]*domain.PaymentDetail, error) {
	args := m.Called(ctx, roomID)
	return details(args)
}

func (m *MockPaymentRepository) ListOverdue(ctx context.Context, today time.Time) ([]*domain.PaymentDetail, error) {
	args := m.Called(ctx, today)
	return details(args)
}

func (m *MockPaymentRepository) ListDueForReminder(ctx context.Context, until time.Time) ([]*domain.PaymentDetail, error) {
	args := m.Called(ctx, until)
	return details(args)
}

func details(args mock.Arguments) ([]*domain.PaymentDetail, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentDetail), args.Error(1)
}

func (m *MockPaymentRepository) Stats(ctx context.Context, today time.Time) (*domain.PaymentStats, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentStats), args.Error(1)
}

func (m *MockPaymentRepository) RoomTotals(ctx context.Context, roomID int64) (*domain.PaymentTotals, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentTotals), args.Error(1)
}

func (m *MockPaymentRepository) TenantTotals(ctx context.Context, tenantID int64) (*domain.PaymentTotals, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentTotals), args.Error(1)
}

// Mutate runs fn against the *domain.PaymentDetail given as the first return
// value, the way the real repository runs it against the locked row. A
// non-nil second return value is returned without calling fn.
func (m *MockPaymentRepository) Mutate(ctx context.Context, id int64, fn repository.PaymentMutation) (*domain.PaymentDetail, bool, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, false, err
	}

	detail := args.Get(0).(*domain.PaymentDetail)
	working := detail.Payment
	changed, err := fn(&working)
	if err != nil {
		return nil, false, err
	}
	if changed {
		detail.Payment = working
	}
	return detail, changed, nil
}

func (m *MockPaymentRepository) SweepOverdue(ctx context.Context, today time.Time) (int64, int64, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.AdminNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id int64) (*domain.AdminNotification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminNotification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID int64, notificationType domain.NotificationType) ([]*domain.AdminNotification, error) {
	args := m.Called(ctx, userID, notificationType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AdminNotification), args.Error(1)
}

func (m *MockNotificationRepository) ListUnread(ctx context.Context, userID int64) ([]*domain.AdminNotification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AdminNotification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) UpdateRead(ctx context.Context, n *domain.AdminNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID int64, now time.Time) (int64, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id int64) (*domain.OperationalExpense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperationalExpense), args.Error(1)
}

func (m *MockExpenseRepository) ListDueForReminder(ctx context.Context, from, until time.Time) ([]*domain.OperationalExpense, error) {
	args := m.Called(ctx, from, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OperationalExpense), args.Error(1)
}

func (m *MockExpenseRepository) UpdateNotified(ctx context.Context, expense *domain.OperationalExpense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) ListAdmins(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
