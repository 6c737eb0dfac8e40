package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/internal/repository"
	customError "github.com/segyhp/kos-management/pkg/errors"
)

// DefaultRetentionDays is how long notifications are kept when no window is given
const DefaultRetentionDays = 30

// NotificationService serves an admin's own notifications. Every lookup by id
// checks ownership and answers FORBIDDEN for another admin's record.
type NotificationService struct {
	notifications repository.NotificationRepository
	now           func() time.Time
	log           *slog.Logger
}

func NewNotificationService(notifications repository.NotificationRepository, loc *time.Location) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		now:           func() time.Time { return time.Now().In(loc) },
		log:           slog.Default().With("component", "notification_service"),
	}
}

// List returns the admin's notifications newest first, optionally of one type
func (s *NotificationService) List(ctx context.Context, userID int64, notificationType domain.NotificationType) ([]*domain.AdminNotification, error) {
	if notificationType != "" && !notificationType.Valid() {
		return nil, customError.WrapValidation(fmt.Errorf("unknown notification type %q", notificationType))
	}
	return s.notifications.ListByUser(ctx, userID, notificationType)
}

func (s *NotificationService) Unread(ctx context.Context, userID int64) ([]*domain.AdminNotification, error) {
	return s.notifications.ListUnread(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *NotificationService) Get(ctx context.Context, userID, id int64) (*domain.AdminNotification, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.OwnedBy(userID) {
		return nil, customError.WrapForbidden(fmt.Sprintf("notification %d belongs to another admin", id))
	}
	return n, nil
}

// MarkAsRead flags the notification read. Reading it again keeps the first read_at.
func (s *NotificationService) MarkAsRead(ctx context.Context, userID, id int64) (*domain.AdminNotification, error) {
	n, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if n.MarkRead(s.now()) {
		if err := s.notifications.UpdateRead(ctx, n); err != nil {
			return nil, err
		}
	}

	return n, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID, s.now())
}

func (s *NotificationService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.notifications.Delete(ctx, id)
}

// DeleteOlderThan removes notifications created strictly before now minus
// days. A notification exactly at the cutoff is kept.
func (s *NotificationService) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		days = DefaultRetentionDays
	}

	cutoff := s.now().AddDate(0, 0, -days)
	deleted, err := s.notifications.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "old notifications deleted", "days", days, "cutoff", cutoff, "deleted", deleted)
	return deleted, nil
}
