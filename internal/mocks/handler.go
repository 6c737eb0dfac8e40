package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/internal/queue"
)

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreatePayment(ctx context.Context, request *domain.CreatePaymentRequest) (*domain.PaymentDetail, error) {
	args := m.Called(ctx, request)
	return detail(args)
}

func (m *MockPaymentService) GetPayment(ctx context.Context, id int64) (*domain.PaymentDetail, error) {
	args := m.Called(ctx, id)
	return detail(args)
}

func (m *MockPaymentService) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]*domain.PaymentDetail, error) {
	args := m.Called(ctx, filter)
	return details(args)
}

func (m *MockPaymentService) MarkAsPaid(ctx context.Context, id int64, paymentMethod string) (*domain.PaymentDetail, error) {
	args := m.Called(ctx, id, paymentMethod)
	return detail(args)
}

func (m *MockPaymentService) AddPayment(ctx context.Context, id int64, amount decimal.Decimal, paymentMethod, notes string) (*domain.PaymentDetail, error) {
	args := m.Called(ctx, id, amount, paymentMethod, notes)
	return detail(args)
}

func (m *MockPaymentService) Overdue(ctx context.Context) (*domain.OverduePayments, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OverduePayments), args.Error(1)
}

func (m *MockPaymentService) Report(ctx context.Context) (*domain.OverallReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OverallReport), args.Error(1)
}

func (m *MockPaymentService) TenantUnpaid(ctx context.Context, tenantID int64) (*domain.TenantUnpaidPayments, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantUnpaidPayments), args.Error(1)
}

func (m *MockPaymentService) RoomSummary(ctx context.Context, roomID int64) (*domain.RoomSummary, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomSummary), args.Error(1)
}

func (m *MockPaymentService) TenantSummary(ctx context.Context, tenantID int64) (*domain.TenantSummary, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantSummary), args.Error(1)
}

func detail(args mock.Arguments) (*domain.PaymentDetail, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentDetail), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, userID int64, notificationType domain.NotificationType) ([]*domain.AdminNotification, error) {
	args := m.Called(ctx, userID, notificationType)
	return notificationList(args)
}

func (m *MockNotificationService) Unread(ctx context.Context, userID int64) ([]*domain.AdminNotification, error) {
	args := m.Called(ctx, userID)
	return notificationList(args)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) Get(ctx context.Context, userID, id int64) (*domain.AdminNotification, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminNotification), args.Error(1)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, id int64) (*domain.AdminNotification, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminNotification), args.Error(1)
}

func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) Delete(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func notificationList(args mock.Arguments) ([]*domain.AdminNotification, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AdminNotification), args.Error(1)
}

type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) CreateRoom(ctx context.Context, request *domain.CreateRoomRequest) (*domain.Room, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomService) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomService) CreateTenant(ctx context.Context, request *domain.CreateTenantRequest) (*domain.Tenant, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockRoomService) GetTenant(ctx context.Context, id int64) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, request *domain.LoginRequest) (*domain.LoginResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResponse), args.Error(1)
}

type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) EnqueueReminder(ctx context.Context, expenseID int64) (*queue.Job, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queue.Job), args.Error(1)
}
