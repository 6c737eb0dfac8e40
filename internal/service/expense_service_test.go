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
	"github.com/segyhp/kos-management/internal/queue"
	customError "github.com/segyhp/kos-management/pkg/errors"
)

func newTestExpenseService(expenses *mocks.MockExpenseRepository, notifier ExpenseNotifier, q queue.Enqueuer) *ExpenseService {
	s := NewExpenseService(expenses, notifier, q, 3, time.UTC)
	s.now = func() time.Time { return testNow }
	return s
}

func electricityBill() *domain.OperationalExpense {
	return &domain.OperationalExpense{
		ID:                  7,
		Name:                "Listrik PLN",
		Amount:              decimal.NewFromInt(750000),
		DueDate:             time.Date(2024, 4, 12, 0, 0, 0, 0, time.UTC),
		NotificationEnabled: true,
		NotificationTime:    "09:00",
		Status:              domain.ExpenseStatusPending,
		NotifiedChannels:    domain.NotifiedChannels{},
	}
}

func TestSendReminder_NotifiesAndRecordsChannel(t *testing.T) {
	expenses := &mocks.MockExpenseRepository{}
	notifier := &mocks.MockExpenseNotifier{}
	s := newTestExpenseService(expenses, notifier, &mocks.MockEnqueuer{})

	expense := electricityBill()
	expenses.On("GetByID", mock.Anything, int64(7)).Return(expense, nil)
	notifier.On("NotifyExpenseDue", mock.Anything, expense).Return(nil)
	expenses.On("UpdateNotified", mock.Anything, mock.MatchedBy(func(e *domain.OperationalExpense) bool {
		return e.NotifiedChannels[domain.ChannelAdmin].Equal(testNow) && e.LastNotifiedAt != nil
	})).Return(nil)

	sent, err := s.SendReminder(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, sent)
	expenses.AssertExpectations(t)
}

func TestSendReminder_Guards(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *domain.OperationalExpense)
		sent   bool
	}{
		{
			name:   "notifications disabled",
			mutate: func(e *domain.OperationalExpense) { e.NotificationEnabled = false },
		},
		{
			name:   "already paid",
			mutate: func(e *domain.OperationalExpense) { e.Status = domain.ExpenseStatusPaid },
		},
		{
			name: "already notified today",
			mutate: func(e *domain.OperationalExpense) {
				e.NotifiedChannels[domain.ChannelAdmin] = testNow.Add(-2 * time.Hour)
			},
		},
		{
			name: "notified yesterday",
			mutate: func(e *domain.OperationalExpense) {
				e.NotifiedChannels[domain.ChannelAdmin] = testNow.AddDate(0, 0, -1)
			},
			sent: true,
		},
		{
			name: "other channel notified today",
			mutate: func(e *domain.OperationalExpense) {
				e.NotifiedChannels["whatsapp"] = testNow
			},
			sent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenses := &mocks.MockExpenseRepository{}
			notifier := &mocks.MockExpenseNotifier{}
			s := newTestExpenseService(expenses, notifier, &mocks.MockEnqueuer{})

			expense := electricityBill()
			tt.mutate(expense)
			expenses.On("GetByID", mock.Anything, int64(7)).Return(expense, nil)
			notifier.On("NotifyExpenseDue", mock.Anything, expense).Return(nil)
			expenses.On("UpdateNotified", mock.Anything, expense).Return(nil)

			sent, err := s.SendReminder(context.Background(), 7)

			require.NoError(t, err)
			assert.Equal(t, tt.sent, sent)
			if tt.sent {
				notifier.AssertNumberOfCalls(t, "NotifyExpenseDue", 1)
			} else {
				notifier.AssertNotCalled(t, "NotifyExpenseDue", mock.Anything, mock.Anything)
				expenses.AssertNotCalled(t, "UpdateNotified", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestSendReminder_NotifierFailureLeavesChannelUnmarked(t *testing.T) {
	expenses := &mocks.MockExpenseRepository{}
	notifier := &mocks.MockExpenseNotifier{}
	s := newTestExpenseService(expenses, notifier, &mocks.MockEnqueuer{})

	expense := electricityBill()
	expenses.On("GetByID", mock.Anything, int64(7)).Return(expense, nil)
	notifier.On("NotifyExpenseDue", mock.Anything, expense).Return(errors.New("insert failed"))

	sent, err := s.SendReminder(context.Background(), 7)

	require.Error(t, err)
	assert.False(t, sent)
	assert.NotContains(t, expense.NotifiedChannels, domain.ChannelAdmin)
	expenses.AssertNotCalled(t, "UpdateNotified", mock.Anything, mock.Anything)
}

func TestHandleReminderJob(t *testing.T) {
	t.Run("runs the reminder", func(t *testing.T) {
		expenses := &mocks.MockExpenseRepository{}
		notifier := &mocks.MockExpenseNotifier{}
		s := newTestExpenseService(expenses, notifier, &mocks.MockEnqueuer{})

		expense := electricityBill()
		expenses.On("GetByID", mock.Anything, int64(7)).Return(expense, nil)
		notifier.On("NotifyExpenseDue", mock.Anything, expense).Return(nil)
		expenses.On("UpdateNotified", mock.Anything, expense).Return(nil)

		job := &queue.Job{ID: "job-1", Type: JobExpenseReminder, Payload: []byte(`{"expense_id":7}`)}
		require.NoError(t, s.HandleReminderJob(context.Background(), job))
		notifier.AssertExpectations(t)
	})

	t.Run("drops a missing expense", func(t *testing.T) {
		expenses := &mocks.MockExpenseRepository{}
		s := newTestExpenseService(expenses, &mocks.MockExpenseNotifier{}, &mocks.MockEnqueuer{})

		expenses.On("GetByID", mock.Anything, int64(8)).Return(nil, customError.WrapExpenseNotFound(8))

		job := &queue.Job{ID: "job-2", Type: JobExpenseReminder, Payload: []byte(`{"expense_id":8}`)}
		assert.NoError(t, s.HandleReminderJob(context.Background(), job))
	})

	t.Run("bad payload fails", func(t *testing.T) {
		s := newTestExpenseService(&mocks.MockExpenseRepository{}, &mocks.MockExpenseNotifier{}, &mocks.MockEnqueuer{})

		job := &queue.Job{ID: "job-3", Type: JobExpenseReminder, Payload: []byte(`"seven"`)}
		assert.Error(t, s.HandleReminderJob(context.Background(), job))
	})
}

func TestEnqueueReminder(t *testing.T) {
	expenses := &mocks.MockExpenseRepository{}
	enqueuer := &mocks.MockEnqueuer{}
	s := newTestExpenseService(expenses, &mocks.MockExpenseNotifier{}, enqueuer)

	expenses.On("GetByID", mock.Anything, int64(7)).Return(electricityBill(), nil)
	enqueuer.On("Enqueue", mock.Anything, JobExpenseReminder, ExpenseReminderPayload{ExpenseID: 7}).
		Return(&queue.Job{ID: "job-9", Type: JobExpenseReminder}, nil)

	job, err := s.EnqueueReminder(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "job-9", job.ID)
}

func TestEnqueueReminder_QueueDown(t *testing.T) {
	expenses := &mocks.MockExpenseRepository{}
	enqueuer := &mocks.MockEnqueuer{}
	s := newTestExpenseService(expenses, &mocks.MockExpenseNotifier{}, enqueuer)

	expenses.On("GetByID", mock.Anything, int64(7)).Return(electricityBill(), nil)
	enqueuer.On("Enqueue", mock.Anything, JobExpenseReminder, mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := s.EnqueueReminder(context.Background(), 7)

	var be *customError.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, customError.ErrCodeQueueError, be.Code)
}

func TestEnqueueDueReminders_MatchesCurrentHour(t *testing.T) {
	expenses := &mocks.MockExpenseRepository{}
	enqueuer := &mocks.MockEnqueuer{}
	s := newTestExpenseService(expenses, &mocks.MockExpenseNotifier{}, enqueuer)

	due := electricityBill()

	wrongHour := electricityBill()
	wrongHour.ID = 8
	wrongHour.NotificationTime = "17:00"

	notified := electricityBill()
	notified.ID = 10
	notified.NotifiedChannels[domain.ChannelAdmin] = testNow.Add(-time.Minute)

	malformed := electricityBill()
	malformed.ID = 11
	malformed.NotificationTime = "nine"

	from := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	expenses.On("ListDueForReminder", mock.Anything, from, from.AddDate(0, 0, 3)).
		Return([]*domain.OperationalExpense{due, wrongHour, notified, malformed}, nil)
	enqueuer.On("Enqueue", mock.Anything, JobExpenseReminder, ExpenseReminderPayload{ExpenseID: 7}).
		Return(&queue.Job{ID: "job-7"}, nil)

	n, err := s.EnqueueDueReminders(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	enqueuer.AssertNumberOfCalls(t, "Enqueue", 1)
}

func TestExpenseMarkOverdue(t *testing.T) {
	expenses := &mocks.MockExpenseRepository{}
	s := newTestExpenseService(expenses, &mocks.MockExpenseNotifier{}, &mocks.MockEnqueuer{})

	expenses.On("MarkOverdue", mock.Anything, testNow).Return(int64(2), nil)

	n, err := s.MarkOverdue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
