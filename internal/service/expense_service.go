package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/internal/queue"
	"github.com/segyhp/kos-management/internal/repository"
	customError "github.com/segyhp/kos-management/pkg/errors"
	"github.com/segyhp/kos-management/pkg/utils"
)

// JobExpenseReminder is the queue job type carrying an ExpenseReminderPayload
const JobExpenseReminder = "operational_expense_reminder"

type ExpenseReminderPayload struct {
	ExpenseID int64 `json:"expense_id"`
}

// ExpenseNotifier delivers an expense reminder to the admins
type ExpenseNotifier interface {
	NotifyExpenseDue(ctx context.Context, expense *domain.OperationalExpense) error
}

type ExpenseService struct {
	expenses     repository.ExpenseRepository
	notifier     ExpenseNotifier
	queue        queue.Enqueuer
	reminderDays int
	now          func() time.Time
	log          *slog.Logger
}

func NewExpenseService(
	expenses repository.ExpenseRepository,
	notifier ExpenseNotifier,
	q queue.Enqueuer,
	reminderDays int,
	loc *time.Location,
) *ExpenseService {
	return &ExpenseService{
		expenses:     expenses,
		notifier:     notifier,
		queue:        q,
		reminderDays: reminderDays,
		now:          func() time.Time { return time.Now().In(loc) },
		log:          slog.Default().With("component", "expense_service"),
	}
}

// SendReminder notifies the admins about the expense unless reminders are
// disabled for it or the admin channel already fired today. It reports
// whether notifications were sent.
func (s *ExpenseService) SendReminder(ctx context.Context, expenseID int64) (bool, error) {
	expense, err := s.expenses.GetByID(ctx, expenseID)
	if err != nil {
		return false, err
	}

	now := s.now()
	switch {
	case !expense.NotificationEnabled:
		s.log.InfoContext(ctx, "expense reminder skipped", "expense_id", expenseID, "reason", "notifications disabled")
		return false, nil
	case expense.Status == domain.ExpenseStatusPaid:
		s.log.InfoContext(ctx, "expense reminder skipped", "expense_id", expenseID, "reason", "already paid")
		return false, nil
	case expense.WasNotifiedToday(domain.ChannelAdmin, now):
		s.log.InfoContext(ctx, "expense reminder skipped", "expense_id", expenseID, "reason", "already notified today")
		return false, nil
	}

	if err := s.notifier.NotifyExpenseDue(ctx, expense); err != nil {
		return false, err
	}

	expense.MarkNotified(domain.ChannelAdmin, now)
	if err := s.expenses.UpdateNotified(ctx, expense); err != nil {
		return true, err
	}

	return true, nil
}

// HandleReminderJob runs a queued reminder. A reminder for an expense that no
// longer exists is dropped rather than retried.
func (s *ExpenseService) HandleReminderJob(ctx context.Context, job *queue.Job) error {
	var payload ExpenseReminderPayload
	if err := job.Decode(&payload); err != nil {
		return err
	}

	_, err := s.SendReminder(ctx, payload.ExpenseID)
	if errors.Is(err, customError.ErrExpenseNotFound) {
		s.log.WarnContext(ctx, "dropping reminder for missing expense", "job_id", job.ID, "expense_id", payload.ExpenseID)
		return nil
	}
	return err
}

// EnqueueReminder hands a reminder for one expense to the worker
func (s *ExpenseService) EnqueueReminder(ctx context.Context, expenseID int64) (*queue.Job, error) {
	if _, err := s.expenses.GetByID(ctx, expenseID); err != nil {
		return nil, err
	}

	job, err := s.queue.Enqueue(ctx, JobExpenseReminder, ExpenseReminderPayload{ExpenseID: expenseID})
	if err != nil {
		return nil, customError.WrapQueueError(err)
	}

	s.log.InfoContext(ctx, "expense reminder enqueued", "expense_id", expenseID, "job_id", job.ID)
	return job, nil
}

// EnqueueDueReminders queues a reminder for every expense due within the
// reminder window whose notification_time falls in the current hour.
func (s *ExpenseService) EnqueueDueReminders(ctx context.Context) (int, error) {
	now := s.now()
	from := utils.DateOf(now)
	until := from.AddDate(0, 0, s.reminderDays)

	expenses, err := s.expenses.ListDueForReminder(ctx, from, until)
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, expense := range expenses {
		hour, err := expense.ReminderHour()
		if err != nil {
			s.log.WarnContext(ctx, "skipping expense with bad notification time", "expense_id", expense.ID, "error", err)
			continue
		}
		if hour != now.Hour() || expense.WasNotifiedToday(domain.ChannelAdmin, now) {
			continue
		}

		if _, err := s.queue.Enqueue(ctx, JobExpenseReminder, ExpenseReminderPayload{ExpenseID: expense.ID}); err != nil {
			return enqueued, customError.WrapQueueError(err)
		}
		enqueued++
	}

	s.log.InfoContext(ctx, "expense reminders enqueued", "candidates", len(expenses), "enqueued", enqueued)
	return enqueued, nil
}

// MarkOverdue flags pending expenses past their due date
func (s *ExpenseService) MarkOverdue(ctx context.Context) (int64, error) {
	return s.expenses.MarkOverdue(ctx, s.now())
}
