package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// Room is a rentable unit
type Room struct {
	ID          int64           `json:"id" db:"id"`
	RoomNumber  string          `json:"room_number" db:"room_number"`
	RoomType    string          `json:"room_type" db:"room_type"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" db:"monthly_rate"`
	Description *string         `json:"description,omitempty" db:"description"`
	Status      RoomStatus      `json:"status" db:"status"`
	Capacity    int             `json:"capacity" db:"capacity"`
	OccupiedAt  *time.Time      `json:"occupied_at,omitempty" db:"occupied_at"`
	AvailableAt *time.Time      `json:"available_at,omitempty" db:"available_at"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// RefreshOccupancy moves the room between available and occupied depending
// on whether it has an active tenant. It reports whether anything changed.
func (r *Room) RefreshOccupancy(hasActiveTenant bool, now time.Time) bool {
	switch {
	case hasActiveTenant && r.Status != RoomStatusOccupied:
		r.Status = RoomStatusOccupied
		r.OccupiedAt = &now
		r.AvailableAt = nil
		return true
	case !hasActiveTenant && r.Status != RoomStatusAvailable:
		r.Status = RoomStatusAvailable
		r.AvailableAt = &now
		return true
	}
	return false
}
