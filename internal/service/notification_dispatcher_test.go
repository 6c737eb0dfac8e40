package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/internal/mocks"
)

func threeAdmins() []*domain.User {
	return []*domain.User{
		{ID: 1, Name: "Admin Satu", Role: domain.RoleAdmin},
		{ID: 2, Name: "Admin Dua", Role: domain.RoleAdmin},
		{ID: 3, Name: "Admin Tiga", Role: domain.RoleAdmin},
	}
}

func captureCreates(notifications *mocks.MockNotificationRepository) *[]*domain.AdminNotification {
	var created []*domain.AdminNotification
	notifications.On("Create", mock.Anything, mock.AnythingOfType("*domain.AdminNotification")).Run(func(args mock.Arguments) {
		created = append(created, args.Get(1).(*domain.AdminNotification))
	}).Return(nil)
	return &created
}

func TestMarkAsPaid_FansOutToEveryAdmin(t *testing.T) {
	payments := &mocks.MockPaymentRepository{}
	users := &mocks.MockUserRepository{}
	notifications := &mocks.MockNotificationRepository{}

	dispatcher := NewNotificationDispatcher(users, notifications)
	s := newTestPaymentService(payments, &mocks.MockTenantRepository{}, &mocks.MockRoomRepository{}, dispatcher)

	payments.On("Mutate", mock.Anything, int64(1)).Return(unpaidDetail(1, 1200000), nil)
	users.On("ListAdmins", mock.Anything).Return(threeAdmins(), nil)
	created := captureCreates(notifications)

	_, err := s.MarkAsPaid(context.Background(), 1, domain.PaymentMethodCash)
	require.NoError(t, err)

	require.Len(t, *created, 3)
	for i, n := range *created {
		assert.Equal(t, int64(i+1), n.UserID)
		assert.Equal(t, domain.NotificationPaymentMarkedPaid, n.Type)
		assert.Equal(t, "Pembayaran Lunas", n.Title)
		assert.Equal(t, "Budi Santoso (Kamar A1) telah menyelesaikan pembayaran sebesar Rp 1.200.000", n.Message)
		require.NotNil(t, n.PaymentID)
		assert.Equal(t, int64(1), *n.PaymentID)
		assert.Equal(t, "1200000.00", n.Data["amount"])
		assert.Equal(t, domain.PaymentMethodCash, n.Data["payment_method"])
		assert.Equal(t, int64(3), n.Data["tenant_id"])
		assert.False(t, n.IsRead)
	}
}

func TestPaymentReceived_NotificationContent(t *testing.T) {
	users := &mocks.MockUserRepository{}
	notifications := &mocks.MockNotificationRepository{}
	dispatcher := NewNotificationDispatcher(users, notifications)

	detail := unpaidDetail(2, 1000000)
	detail.AmountPaid = decimal.NewFromInt(500000)
	detail.RemainingAmount = decimal.NewFromInt(500000)
	detail.Status = domain.PaymentStatusPartial

	users.On("ListAdmins", mock.Anything).Return(threeAdmins()[:1], nil)
	created := captureCreates(notifications)

	err := dispatcher.OnPaymentReceived(context.Background(), domain.PaymentReceived{
		Payment:        detail,
		AmountReceived: decimal.NewFromInt(500000),
		OccurredAt:     testNow,
	})
	require.NoError(t, err)

	require.Len(t, *created, 1)
	n := (*created)[0]
	assert.Equal(t, domain.NotificationPaymentReceived, n.Type)
	assert.Equal(t, "Pembayaran Diterima - Sebagian", n.Title)
	assert.Equal(t, "Budi Santoso (Kamar A1) telah membayar Rp 500.000. Status: Sebagian", n.Message)
	assert.Equal(t, "500000.00", n.Data["amount_received"])
	assert.Equal(t, "500000.00", n.Data["remaining_amount"])
	assert.Equal(t, "partial", n.Data["status"])
}

func TestFanOut_StopsAtFirstFailure(t *testing.T) {
	users := &mocks.MockUserRepository{}
	notifications := &mocks.MockNotificationRepository{}
	dispatcher := NewNotificationDispatcher(users, notifications)

	users.On("ListAdmins", mock.Anything).Return(threeAdmins(), nil)
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.AdminNotification) bool {
		return n.UserID == 1
	})).Return(nil)
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.AdminNotification) bool {
		return n.UserID == 2
	})).Return(errors.New("insert failed"))

	err := dispatcher.OnPaymentMarkedAsPaid(context.Background(), domain.PaymentMarkedAsPaid{
		Payment:    unpaidDetail(1, 1200000),
		OccurredAt: testNow,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "notify admin 2")
	notifications.AssertNumberOfCalls(t, "Create", 2)
}

func TestFanOut_NoAdmins(t *testing.T) {
	users := &mocks.MockUserRepository{}
	notifications := &mocks.MockNotificationRepository{}
	dispatcher := NewNotificationDispatcher(users, notifications)

	users.On("ListAdmins", mock.Anything).Return([]*domain.User{}, nil)

	err := dispatcher.OnPaymentMarkedAsPaid(context.Background(), domain.PaymentMarkedAsPaid{Payment: unpaidDetail(1, 1200000)})

	require.NoError(t, err)
	notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotifyExpenseDue_Content(t *testing.T) {
	users := &mocks.MockUserRepository{}
	notifications := &mocks.MockNotificationRepository{}
	dispatcher := NewNotificationDispatcher(users, notifications)

	description := "Tagihan PDAM bulan April"
	expense := &domain.OperationalExpense{
		ID:          9,
		Name:        "Air PDAM",
		Description: &description,
		Amount:      decimal.NewFromInt(350000),
		DueDate:     time.Date(2024, 4, 12, 0, 0, 0, 0, time.UTC),
	}

	users.On("ListAdmins", mock.Anything).Return(threeAdmins()[:2], nil)
	created := captureCreates(notifications)

	require.NoError(t, dispatcher.NotifyExpenseDue(context.Background(), expense))

	require.Len(t, *created, 2)
	n := (*created)[1]
	assert.Equal(t, int64(2), n.UserID)
	assert.Equal(t, domain.NotificationExpenseReminder, n.Type)
	assert.Equal(t, "Pengingat Tagihan Operasional: Air PDAM", n.Title)
	assert.Equal(t, `Tagihan operasional "Air PDAM" sebesar Rp 350.000 akan jatuh tempo pada 12/04/2024. Mohon segera lakukan pembayaran.`, n.Message)
	require.NotNil(t, n.OperationalExpenseID)
	assert.Equal(t, int64(9), *n.OperationalExpenseID)
	assert.Nil(t, n.PaymentID)
	assert.Equal(t, "2024-04-12", n.Data["due_date"])
	assert.Equal(t, description, n.Data["description"])
}
