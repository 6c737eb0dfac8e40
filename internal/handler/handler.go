package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/internal/queue"
	"github.com/segyhp/kos-management/pkg/response"
)

// PaymentService is the payment lifecycle and reporting surface the HTTP layer uses
type PaymentService interface {
	CreatePayment(ctx context.Context, request *domain.CreatePaymentRequest) (*domain.PaymentDetail, error)
	GetPayment(ctx context.Context, id int64) (*domain.PaymentDetail, error)
	ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]*domain.PaymentDetail, error)
	MarkAsPaid(ctx context.Context, id int64, paymentMethod string) (*domain.PaymentDetail, error)
	AddPayment(ctx context.Context, id int64, amount decimal.Decimal, paymentMethod, notes string) (*domain.PaymentDetail, error)
	Overdue(ctx context.Context) (*domain.OverduePayments, error)
	Report(ctx context.Context) (*domain.OverallReport, error)
	TenantUnpaid(ctx context.Context, tenantID int64) (*domain.TenantUnpaidPayments, error)
	RoomSummary(ctx context.Context, roomID int64) (*domain.RoomSummary, error)
	TenantSummary(ctx context.Context, tenantID int64) (*domain.TenantSummary, error)
}

// NotificationService serves the calling admin's notifications
type NotificationService interface {
	List(ctx context.Context, userID int64, notificationType domain.NotificationType) ([]*domain.AdminNotification, error)
	Unread(ctx context.Context, userID int64) ([]*domain.AdminNotification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	Get(ctx context.Context, userID, id int64) (*domain.AdminNotification, error)
	MarkAsRead(ctx context.Context, userID, id int64) (*domain.AdminNotification, error)
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID, id int64) error
}

type RoomService interface {
	CreateRoom(ctx context.Context, request *domain.CreateRoomRequest) (*domain.Room, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	CreateTenant(ctx context.Context, request *domain.CreateTenantRequest) (*domain.Tenant, error)
	GetTenant(ctx context.Context, id int64) (*domain.Tenant, error)
}

type AuthService interface {
	Login(ctx context.Context, request *domain.LoginRequest) (*domain.LoginResponse, error)
}

type ExpenseService interface {
	EnqueueReminder(ctx context.Context, expenseID int64) (*queue.Job, error)
}

// NewValidator returns a validator that understands decimal_gt and
// decimal_gte on decimal.Decimal fields.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("decimal_gt", decimalCompare(func(d, bound decimal.Decimal) bool { return d.GreaterThan(bound) }))
	_ = v.RegisterValidation("decimal_gte", decimalCompare(func(d, bound decimal.Decimal) bool { return d.GreaterThanOrEqual(bound) }))
	return v
}

func decimalCompare(cmp func(d, bound decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(d, bound)
	}
}

// decodeAndValidate reads a JSON body into dst and validates it. On failure
// it writes the 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid JSON payload", err)
		return false
	}

	if err := v.Struct(dst); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return false
	}

	return true
}

// pathID parses a positive integer path variable. On failure it writes the
// 400 response and returns false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid "+name, err)
		return 0, false
	}
	return id, true
}
