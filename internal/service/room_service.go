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

// RoomService registers rooms and tenants and keeps room occupancy in step
// with who lives there.
type RoomService struct {
	rooms   repository.RoomRepository
	tenants repository.TenantRepository
	loc     *time.Location
	now     func() time.Time
	log     *slog.Logger
}

func NewRoomService(rooms repository.RoomRepository, tenants repository.TenantRepository, loc *time.Location) *RoomService {
	return &RoomService{
		rooms:   rooms,
		tenants: tenants,
		loc:     loc,
		now:     func() time.Time { return time.Now().In(loc) },
		log:     slog.Default().With("component", "room_service"),
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, request *domain.CreateRoomRequest) (*domain.Room, error) {
	room := &domain.Room{
		RoomNumber:  request.RoomNumber,
		RoomType:    request.RoomType,
		MonthlyRate: request.MonthlyRate,
		Description: optional(request.Description),
		Status:      domain.RoomStatusAvailable,
		Capacity:    request.Capacity,
	}
	if room.RoomType == "" {
		room.RoomType = "standard"
	}
	if room.Capacity == 0 {
		room.Capacity = 1
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "room created", "room_id", room.ID, "room_number", room.RoomNumber)
	return room, nil
}

func (s *RoomService) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

// CreateTenant checks the tenant into a room and marks the room occupied
func (s *RoomService) CreateTenant(ctx context.Context, request *domain.CreateTenantRequest) (*domain.Tenant, error) {
	if _, err := s.rooms.GetByID(ctx, request.RoomID); err != nil {
		return nil, err
	}

	checkIn, err := time.ParseInLocation("2006-01-02", request.CheckInDate, s.loc)
	if err != nil {
		return nil, customError.WrapValidation(fmt.Errorf("check_in_date: %w", err))
	}

	tenant := &domain.Tenant{
		RoomID:      request.RoomID,
		Name:        request.Name,
		Email:       request.Email,
		Phone:       request.Phone,
		CheckInDate: checkIn,
		Status:      domain.TenantStatusActive,
		Address:     optional(request.Address),
		Notes:       optional(request.Notes),
	}

	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}

	if _, err := s.RefreshOccupancy(ctx, tenant.RoomID); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "tenant checked in", "tenant_id", tenant.ID, "room_id", tenant.RoomID)
	return tenant, nil
}

func (s *RoomService) GetTenant(ctx context.Context, id int64) (*domain.Tenant, error) {
	return s.tenants.GetByID(ctx, id)
}

// RefreshOccupancy sets the room occupied when it has an active tenant and
// available otherwise.
func (s *RoomService) RefreshOccupancy(ctx context.Context, roomID int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	tenant, err := s.rooms.ActiveTenant(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.RefreshOccupancy(tenant != nil, s.now()) {
		if err := s.rooms.UpdateOccupancy(ctx, room); err != nil {
			return nil, err
		}
	}

	return room, nil
}
