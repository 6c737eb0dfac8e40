package domain

import "time"

type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
	TenantStatusMovedOut TenantStatus = "moved_out"
)

// Tenant is a person renting a room
type Tenant struct {
	ID           int64        `json:"id" db:"id"`
	RoomID       int64        `json:"room_id" db:"room_id"`
	Name         string       `json:"name" db:"name"`
	Email        string       `json:"email" db:"email"`
	Phone        string       `json:"phone" db:"phone"`
	CheckInDate  time.Time    `json:"check_in_date" db:"check_in_date"`
	CheckOutDate *time.Time   `json:"check_out_date,omitempty" db:"check_out_date"`
	Status       TenantStatus `json:"status" db:"status"`
	Address      *string      `json:"address,omitempty" db:"address"`
	Notes        *string      `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}
