package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/segyhp/kos-management/internal/domain"
	customError "github.com/segyhp/kos-management/pkg/errors"
)

const expenseColumns = `
	id, name, description, amount, due_date, notification_enabled, notification_time,
	status, notified_channels, last_notified_at, created_at, updated_at
`

type expenseRepository struct {
	db *sqlx.DB
}

func NewExpenseRepository(db *sqlx.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) GetByID(ctx context.Context, id int64) (*domain.OperationalExpense, error) {
	var expense domain.OperationalExpense
	err := r.db.GetContext(ctx, &expense, `SELECT `+expenseColumns+` FROM operational_expenses WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapExpenseNotFound(id)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &expense, nil
}

func (r *expenseRepository) ListDueForReminder(ctx context.Context, from, until time.Time) ([]*domain.OperationalExpense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM operational_expenses
		WHERE notification_enabled = TRUE
		  AND status <> 'paid'
		  AND due_date BETWEEN $1 AND $2
		ORDER BY due_date, id
	`

	expenses := []*domain.OperationalExpense{}
	if err := r.db.SelectContext(ctx, &expenses, query, dateOnly(from), dateOnly(until)); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return expenses, nil
}

func (r *expenseRepository) UpdateNotified(ctx context.Context, expense *domain.OperationalExpense) error {
	query := `
		UPDATE operational_expenses
		SET notified_channels = $2, last_notified_at = $3, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, expense.ID, expense.NotifiedChannels, expense.LastNotifiedAt)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

func (r *expenseRepository) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	query := `
		UPDATE operational_expenses
		SET status = 'overdue', updated_at = NOW()
		WHERE status = 'pending' AND due_date < $1
	`

	res, err := r.db.ExecContext(ctx, query, dateOnly(today))
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}
	return res.RowsAffected()
}
