package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/internal/messaging"
	"github.com/segyhp/kos-management/internal/queue"
)

type MockPaymentListener struct {
	mock.Mock
}

func (m *MockPaymentListener) OnPaymentMarkedAsPaid(ctx context.Context, event domain.PaymentMarkedAsPaid) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPaymentListener) OnPaymentReceived(ctx context.Context, event domain.PaymentReceived) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockExpenseNotifier struct {
	mock.Mock
}

func (m *MockExpenseNotifier) NotifyExpenseDue(ctx context.Context, expense *domain.OperationalExpense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) Enqueue(ctx context.Context, jobType string, payload any) (*queue.Job, error) {
	args := m.Called(ctx, jobType, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queue.Job), args.Error(1)
}

type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockMessenger) Send(ctx context.Context, phone, message string) messaging.Result {
	args := m.Called(ctx, phone, message)
	return args.Get(0).(messaging.Result)
}

func (m *MockMessenger) SendBulk(ctx context.Context, phones []string, message string) []messaging.Result {
	args := m.Called(ctx, phones, message)
	return args.Get(0).([]messaging.Result)
}
