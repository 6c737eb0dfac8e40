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

const notificationColumns = `
	id, user_id, payment_id, operational_expense_id, type, title, message, data,
	is_read, read_at, created_at, updated_at
`

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.AdminNotification) error {
	query := `
		INSERT INTO admin_notifications (user_id, payment_id, operational_expense_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_read, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		n.UserID,
		n.PaymentID,
		n.OperationalExpenseID,
		n.Type,
		n.Title,
		n.Message,
		n.Data,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*domain.AdminNotification, error) {
	var n domain.AdminNotification
	err := r.db.GetContext(ctx, &n, `SELECT `+notificationColumns+` FROM admin_notifications WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotificationNotFound(id)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, notificationType domain.NotificationType) ([]*domain.AdminNotification, error) {
	query := `SELECT ` + notificationColumns + ` FROM admin_notifications WHERE user_id = $1`
	args := []any{userID}
	if notificationType != "" {
		query += ` AND type = $2`
		args = append(args, notificationType)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	return r.selectNotifications(ctx, query, args...)
}

func (r *notificationRepository) ListUnread(ctx context.Context, userID int64) ([]*domain.AdminNotification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM admin_notifications
		WHERE user_id = $1 AND is_read = FALSE
		ORDER BY created_at DESC, id DESC
	`
	return r.selectNotifications(ctx, query, userID)
}

func (r *notificationRepository) selectNotifications(ctx context.Context, query string, args ...any) ([]*domain.AdminNotification, error) {
	notifications := []*domain.AdminNotification{}
	if err := r.db.SelectContext(ctx, &notifications, query, args...); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admin_notifications WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}
	return count, nil
}

func (r *notificationRepository) UpdateRead(ctx context.Context, n *domain.AdminNotification) error {
	query := `
		UPDATE admin_notifications
		SET is_read = $2, read_at = $3, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, n.ID, n.IsRead, n.ReadAt); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64, now time.Time) (int64, error) {
	query := `
		UPDATE admin_notifications
		SET is_read = TRUE, read_at = $2, updated_at = NOW()
		WHERE user_id = $1 AND is_read = FALSE
	`

	res, err := r.db.ExecContext(ctx, query, userID, now)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}
	return res.RowsAffected()
}

func (r *notificationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_notifications WHERE id = $1`, id)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return customError.WrapNotificationNotFound(id)
	}
	return nil
}

func (r *notificationRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_notifications WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}
	return res.RowsAffected()
}
