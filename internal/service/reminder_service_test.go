package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/internal/messaging"
	"github.com/segyhp/kos-management/internal/mocks"
)

func newTestReminderService(payments *mocks.MockPaymentRepository, users *mocks.MockUserRepository, messenger *mocks.MockMessenger) *TenantReminderService {
	s := NewTenantReminderService(payments, users, messenger, 3, time.UTC)
	s.now = func() time.Time { return testNow }
	return s
}

func reminderDetail(id, tenantID int64, name, phone, room string, remaining int64, due time.Time) *domain.PaymentDetail {
	d := unpaidDetail(id, remaining)
	d.TenantID = tenantID
	d.TenantName = name
	d.TenantPhone = phone
	d.RoomNumber = room
	d.DueDate = due
	return d
}

func TestSendReminders_GroupsByTenant(t *testing.T) {
	payments := &mocks.MockPaymentRepository{}
	users := &mocks.MockUserRepository{}
	messenger := &mocks.MockMessenger{}
	s := newTestReminderService(payments, users, messenger)

	lateMarch := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	soon := time.Date(2024, 4, 12, 0, 0, 0, 0, time.UTC)

	until := time.Date(2024, 4, 13, 0, 0, 0, 0, time.UTC)
	payments.On("ListDueForReminder", mock.Anything, until).Return([]*domain.PaymentDetail{
		reminderDetail(1, 3, "Budi Santoso", "081234567890", "A1", 1200000, lateMarch),
		reminderDetail(2, 3, "Budi Santoso", "081234567890", "A1", 1200000, soon),
		reminderDetail(3, 4, "Sari Dewi", "081298765432", "B2", 900000, soon),
	}, nil)

	messenger.On("IsConfigured").Return(true)
	messenger.On("Send", mock.Anything, "081234567890", mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, "Halo Budi Santoso") &&
			strings.Contains(msg, "Kamar A1") &&
			strings.Contains(msg, "Jatuh tempo 25/03/2024: Rp 1.200.000 (Jatuh Tempo)") &&
			strings.Contains(msg, "Jatuh tempo 12/04/2024: Rp 1.200.000 (Tertunda)") &&
			strings.Contains(msg, "Total: Rp 2.400.000")
	})).Return(messaging.Result{Success: true, Phone: "+6281234567890"})
	messenger.On("Send", mock.Anything, "081298765432", mock.Anything).
		Return(messaging.Result{Success: false, Phone: "+6281298765432", Error: "device disconnected"})

	adminPhone := "081100000001"
	users.On("ListAdmins", mock.Anything).Return([]*domain.User{
		{ID: 1, Role: domain.RoleAdmin, Phone: &adminPhone},
		{ID: 2, Role: domain.RoleAdmin},
	}, nil)
	messenger.On("SendBulk", mock.Anything, []string{adminPhone}, "Pengingat pembayaran terkirim ke 1 dari 2 penyewa. Total tagihan belum lunas: Rp 3.300.000").
		Return([]messaging.Result{{Success: true, Phone: "+6281100000001"}})

	summary, err := s.SendReminders(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Tenants)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
	assert.True(t, decimal.NewFromInt(3300000).Equal(summary.Outstanding))
	messenger.AssertExpectations(t)
}

func TestSendReminders_GatewayNotConfigured(t *testing.T) {
	payments := &mocks.MockPaymentRepository{}
	messenger := &mocks.MockMessenger{}
	s := newTestReminderService(payments, &mocks.MockUserRepository{}, messenger)

	messenger.On("IsConfigured").Return(false)

	summary, err := s.SendReminders(context.Background())

	require.NoError(t, err)
	assert.Zero(t, summary.Tenants)
	payments.AssertNotCalled(t, "ListDueForReminder", mock.Anything, mock.Anything)
}

func TestSendReminders_NothingDue(t *testing.T) {
	payments := &mocks.MockPaymentRepository{}
	users := &mocks.MockUserRepository{}
	messenger := &mocks.MockMessenger{}
	s := newTestReminderService(payments, users, messenger)

	messenger.On("IsConfigured").Return(true)
	payments.On("ListDueForReminder", mock.Anything, mock.Anything).Return([]*domain.PaymentDetail{}, nil)

	summary, err := s.SendReminders(context.Background())

	require.NoError(t, err)
	assert.Zero(t, summary.Tenants)
	users.AssertNotCalled(t, "ListAdmins", mock.Anything)
	messenger.AssertNotCalled(t, "SendBulk", mock.Anything, mock.Anything, mock.Anything)
}
