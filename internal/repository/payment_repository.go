package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/segyhp/kos-management/internal/domain"
	customError "github.com/segyhp/kos-management/pkg/errors"
)

const paymentColumns = `
	id, tenant_id, room_id, amount_due, amount_paid, remaining_amount, due_date,
	paid_date, status, payment_method, notes, created_at, updated_at
`

const paymentDetailSelect = `
	SELECT p.id, p.tenant_id, p.room_id, p.amount_due, p.amount_paid, p.remaining_amount,
	       p.due_date, p.paid_date, p.status, p.payment_method, p.notes, p.created_at, p.updated_at,
	       t.name AS tenant_name, t.phone AS tenant_phone, r.room_number
	FROM payments p
	JOIN tenants t ON t.id = p.tenant_id
	JOIN rooms r ON r.id = p.room_id
`

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (tenant_id, room_id, amount_due, amount_paid, remaining_amount, due_date, status, payment_method, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		payment.TenantID,
		payment.RoomID,
		payment.AmountDue,
		payment.AmountPaid,
		payment.RemainingAmount,
		dateOnly(payment.DueDate),
		payment.Status,
		payment.PaymentMethod,
		payment.Notes,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (r *paymentRepository) GetDetail(ctx context.Context, id int64) (*domain.PaymentDetail, error) {
	return getPaymentDetail(ctx, r.db, id)
}

func getPaymentDetail(ctx context.Context, q sqlx.QueryerContext, id int64) (*domain.PaymentDetail, error) {
	var detail domain.PaymentDetail
	err := sqlx.GetContext(ctx, q, &detail, paymentDetailSelect+` WHERE p.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapPaymentNotFound(id)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &detail, nil
}

func (r *paymentRepository) List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.PaymentDetail, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if filter.TenantID > 0 {
		args = append(args, filter.TenantID)
		conditions = append(conditions, fmt.Sprintf("p.tenant_id = $%d", len(args)))
	}
	if filter.RoomID > 0 {
		args = append(args, filter.RoomID)
		conditions = append(conditions, fmt.Sprintf("p.room_id = $%d", len(args)))
	}

	query := paymentDetailSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.due_date, p.id"

	return r.selectDetails(ctx, query, args...)
}

func (r *paymentRepository) ListUnpaidByTenant(ctx context.Context, tenantID int64) ([]*domain.PaymentDetail, error) {
	query := paymentDetailSelect + `
		WHERE p.tenant_id = $1 AND p.status <> 'paid'
		ORDER BY p.due_date, p.id
	`
	return r.selectDetails(ctx, query, tenantID)
}

func (r *paymentRepository) ListUnpaidByRoom(ctx context.Context, roomID int64) ([]*domain.PaymentDetail, error) {
	query := paymentDetailSelect + `
		WHERE p.room_id = $1 AND p.status <> 'paid'
		ORDER BY p.due_date, p.id
	`
	return r.selectDetails(ctx, query, roomID)
}

func (r *paymentRepository) ListOverdue(ctx context.Context, today time.Time) ([]*domain.PaymentDetail, error) {
	query := paymentDetailSelect + `
		WHERE p.status <> 'paid' AND (p.status = 'overdue' OR p.due_date < $1)
		ORDER BY p.due_date, p.id
	`
	return r.selectDetails(ctx, query, dateOnly(today))
}

func (r *paymentRepository) ListDueForReminder(ctx context.Context, until time.Time) ([]*domain.PaymentDetail, error) {
	query := paymentDetailSelect + `
		WHERE p.status <> 'paid' AND p.due_date <= $1 AND t.status = 'active'
		ORDER BY p.tenant_id, p.due_date
	`
	return r.selectDetails(ctx, query, dateOnly(until))
}

func (r *paymentRepository) selectDetails(ctx context.Context, query string, args ...any) ([]*domain.PaymentDetail, error) {
	details := []*domain.PaymentDetail{}
	if err := r.db.SelectContext(ctx, &details, query, args...); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return details, nil
}

func (r *paymentRepository) Stats(ctx context.Context, today time.Time) (*domain.PaymentStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_payments,
			COUNT(*) FILTER (WHERE status = 'paid') AS paid_count,
			COUNT(*) FILTER (WHERE status <> 'paid') AS unpaid_count,
			COUNT(*) FILTER (WHERE status <> 'paid' AND (status = 'overdue' OR due_date < $1)) AS overdue_count,
			COALESCE(SUM(amount_due) FILTER (WHERE status = 'paid'), 0) AS total_paid_amount,
			COALESCE(SUM(remaining_amount) FILTER (WHERE status <> 'paid'), 0) AS total_outstanding,
			COALESCE(SUM(amount_due), 0) AS total_due_amount
		FROM payments
	`

	var stats domain.PaymentStats
	if err := r.db.GetContext(ctx, &stats, query, dateOnly(today)); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &stats, nil
}

const totalsSelect = `
	SELECT
		COUNT(*) AS total_payments,
		COUNT(*) FILTER (WHERE status = 'paid') AS paid_count,
		COUNT(*) FILTER (WHERE status <> 'paid') AS unpaid_count,
		COALESCE(SUM(amount_paid), 0) AS total_paid,
		COALESCE(SUM(amount_due) FILTER (WHERE status <> 'paid'), 0) AS total_due,
		COALESCE(SUM(remaining_amount) FILTER (WHERE status <> 'paid'), 0) AS total_remaining
	FROM payments
`

func (r *paymentRepository) RoomTotals(ctx context.Context, roomID int64) (*domain.PaymentTotals, error) {
	return r.totals(ctx, totalsSelect+` WHERE room_id = $1`, roomID)
}

func (r *paymentRepository) TenantTotals(ctx context.Context, tenantID int64) (*domain.PaymentTotals, error) {
	return r.totals(ctx, totalsSelect+` WHERE tenant_id = $1`, tenantID)
}

func (r *paymentRepository) totals(ctx context.Context, query string, id int64) (*domain.PaymentTotals, error) {
	var totals domain.PaymentTotals
	if err := r.db.GetContext(ctx, &totals, query, id); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return &totals, nil
}

func (r *paymentRepository) Mutate(ctx context.Context, id int64, fn PaymentMutation) (*domain.PaymentDetail, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, customError.WrapDatabaseError(err)
	}
	defer tx.Rollback()

	var payment domain.Payment
	err = tx.GetContext(ctx, &payment, `SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, customError.WrapPaymentNotFound(id)
	}
	if err != nil {
		return nil, false, customError.WrapDatabaseError(err)
	}

	changed, err := fn(&payment)
	if err != nil {
		return nil, false, err
	}

	if changed {
		query := `
			UPDATE payments
			SET amount_paid = $2, remaining_amount = $3, paid_date = $4, status = $5,
			    payment_method = $6, notes = $7, updated_at = NOW()
			WHERE id = $1
		`
		_, err = tx.ExecContext(ctx, query,
			payment.ID,
			payment.AmountPaid,
			payment.RemainingAmount,
			nullableDate(payment.PaidDate),
			payment.Status,
			payment.PaymentMethod,
			payment.Notes,
		)
		if err != nil {
			return nil, false, customError.WrapDatabaseError(err)
		}
	}

	detail, err := getPaymentDetail(ctx, tx, id)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, customError.WrapDatabaseError(err)
	}

	return detail, changed, nil
}

func (r *paymentRepository) SweepOverdue(ctx context.Context, today time.Time) (int64, int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, customError.WrapDatabaseError(err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE payments SET status = 'pending', updated_at = NOW()
		WHERE status = 'unpaid'
	`)
	if err != nil {
		return 0, 0, customError.WrapDatabaseError(err)
	}
	legacy, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx, `
		UPDATE payments SET status = 'overdue', updated_at = NOW()
		WHERE status IN ('pending', 'partial') AND due_date < $1
	`, dateOnly(today))
	if err != nil {
		return 0, 0, customError.WrapDatabaseError(err)
	}
	overdue, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, 0, customError.WrapDatabaseError(err)
	}

	return legacy, overdue, nil
}

// dateOnly passes the calendar date of t as a DATE literal so Postgres does
// not shift it through the session time zone.
func dateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}

func nullableDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	d := dateOnly(*t)
	return &d
}
