package handler

import (
	"net/http"

	"github.com/segyhp/kos-management/internal/auth"
	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/pkg/response"
)

// NotificationHandler serves /api/admin/notifications. Routes sit behind
// auth.RequireAdmin, which puts the caller's claims on the context.
type NotificationHandler struct {
	service NotificationService
}

func NewNotificationHandler(service NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func currentAdmin(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Token not found")
		return 0, false
	}
	return claims.UserID, true
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentAdmin(w, r)
	if !ok {
		return
	}

	notificationType := domain.NotificationType(r.URL.Query().Get("type"))
	notifications, err := h.service.List(r.Context(), userID, notificationType)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, notifications)
}

func (h *NotificationHandler) Unread(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentAdmin(w, r)
	if !ok {
		return
	}

	notifications, err := h.service.Unread(r.Context(), userID)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, notifications)
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentAdmin(w, r)
	if !ok {
		return
	}

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, domain.UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentAdmin(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	notification, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, notification)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentAdmin(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	notification, err := h.service.MarkAsRead(r.Context(), userID, id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, notification)
}

func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentAdmin(w, r)
	if !ok {
		return
	}

	updated, err := h.service.MarkAllAsRead(r.Context(), userID)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, domain.MarkAllReadResponse{Updated: updated})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentAdmin(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]int64{"deleted": id})
}
