package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/segyhp/kos-management/internal/auth"
	"github.com/segyhp/kos-management/pkg/response"
)

type Handlers struct {
	Payments      *PaymentHandler
	Notifications *NotificationHandler
	Rooms         *RoomHandler
	Auth          *AuthHandler
	Expenses      *ExpenseHandler
	Health        *HealthHandler
}

// NewRouter wires every route. Reads are public, writes and the notification
// inbox need an admin bearer token.
func NewRouter(h Handlers, tokens *auth.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware, response.CORSMiddleware)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	// Health check
	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/payments", h.Payments.ListPayments).Methods(http.MethodGet)
	api.HandleFunc("/payments/report", h.Payments.Report).Methods(http.MethodGet)
	api.HandleFunc("/payments/overdue", h.Payments.Overdue).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id:[0-9]+}", h.Payments.GetPayment).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{id:[0-9]+}", h.Rooms.GetTenant).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{id:[0-9]+}/payments", h.Payments.TenantPayments).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{id:[0-9]+}/summary", h.Payments.TenantSummary).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id:[0-9]+}", h.Rooms.GetRoom).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id:[0-9]+}/summary", h.Payments.RoomSummary).Methods(http.MethodGet)
	api.HandleFunc("/admin/login", h.Auth.Login).Methods(http.MethodPost)

	requireAdmin := auth.RequireAdmin(tokens)

	admin := api.NewRoute().Subrouter()
	admin.Use(requireAdmin)
	admin.HandleFunc("/payments", h.Payments.CreatePayment).Methods(http.MethodPost)
	admin.HandleFunc("/payments/{id:[0-9]+}/mark-paid", h.Payments.MarkAsPaid).Methods(http.MethodPost)
	admin.HandleFunc("/payments/{id:[0-9]+}/installments", h.Payments.AddInstallment).Methods(http.MethodPost)
	admin.HandleFunc("/rooms", h.Rooms.CreateRoom).Methods(http.MethodPost)
	admin.HandleFunc("/tenants", h.Rooms.CreateTenant).Methods(http.MethodPost)
	admin.HandleFunc("/expenses/{id:[0-9]+}/notify", h.Expenses.Notify).Methods(http.MethodPost)

	notifications := api.PathPrefix("/admin/notifications").Subrouter()
	notifications.Use(requireAdmin)
	notifications.HandleFunc("", h.Notifications.List).Methods(http.MethodGet)
	notifications.HandleFunc("/unread", h.Notifications.Unread).Methods(http.MethodGet)
	notifications.HandleFunc("/unread-count", h.Notifications.UnreadCount).Methods(http.MethodGet)
	notifications.HandleFunc("/mark-all-read", h.Notifications.MarkAllAsRead).Methods(http.MethodPatch)
	notifications.HandleFunc("/{id:[0-9]+}", h.Notifications.Get).Methods(http.MethodGet)
	notifications.HandleFunc("/{id:[0-9]+}/read", h.Notifications.MarkAsRead).Methods(http.MethodPatch)
	notifications.HandleFunc("/{id:[0-9]+}", h.Notifications.Delete).Methods(http.MethodDelete)

	return router
}
