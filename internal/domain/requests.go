package domain

import "github.com/shopspring/decimal"

// DTOs for requests and responses

type CreatePaymentRequest struct {
	TenantID int64  `json:"tenant_id" validate:"required,gt=0"`
	DueDate  string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

type MarkAsPaidRequest struct {
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=cash bank_transfer e_wallet qris"`
}

type AddInstallmentRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,oneof=cash bank_transfer e_wallet qris"`
	Notes         string          `json:"notes" validate:"max=255"`
}

type CreateRoomRequest struct {
	RoomNumber  string          `json:"room_number" validate:"required,max=20"`
	RoomType    string          `json:"room_type" validate:"omitempty,oneof=standard deluxe"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" validate:"decimal_gt=0"`
	Description string          `json:"description"`
	Capacity    int             `json:"capacity" validate:"omitempty,gte=1"`
}

type CreateTenantRequest struct {
	RoomID      int64  `json:"room_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,max=20"`
	CheckInDate string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	User      *User  `json:"user"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
