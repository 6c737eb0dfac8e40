package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/internal/mocks"
	customError "github.com/segyhp/kos-management/pkg/errors"
)

func newTestRoomService(rooms *mocks.MockRoomRepository, tenants *mocks.MockTenantRepository) *RoomService {
	s := NewRoomService(rooms, tenants, time.UTC)
	s.now = func() time.Time { return testNow }
	return s
}

func TestCreateRoom_Defaults(t *testing.T) {
	rooms := &mocks.MockRoomRepository{}
	s := newTestRoomService(rooms, &mocks.MockTenantRepository{})

	rooms.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Room) bool {
		return r.RoomNumber == "A1" &&
			r.RoomType == "standard" &&
			r.Capacity == 1 &&
			r.Status == domain.RoomStatusAvailable &&
			r.Description == nil
	})).Return(nil)

	room, err := s.CreateRoom(context.Background(), &domain.CreateRoomRequest{
		RoomNumber:  "A1",
		MonthlyRate: decimal.NewFromInt(1200000),
	})

	require.NoError(t, err)
	assert.True(t, room.MonthlyRate.Equal(decimal.NewFromInt(1200000)))
	rooms.AssertExpectations(t)
}

func TestCreateTenant_OccupiesRoom(t *testing.T) {
	rooms := &mocks.MockRoomRepository{}
	tenants := &mocks.MockTenantRepository{}
	s := newTestRoomService(rooms, tenants)

	room := &domain.Room{ID: 5, RoomNumber: "A1", Status: domain.RoomStatusAvailable}
	rooms.On("GetByID", mock.Anything, int64(5)).Return(room, nil)
	tenants.On("Create", mock.Anything, mock.MatchedBy(func(tn *domain.Tenant) bool {
		return tn.Status == domain.TenantStatusActive &&
			tn.CheckInDate.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) &&
			tn.Address == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Tenant).ID = 3
	}).Return(nil)
	rooms.On("ActiveTenant", mock.Anything, int64(5)).Return(&domain.Tenant{ID: 3, RoomID: 5}, nil)
	rooms.On("UpdateOccupancy", mock.Anything, mock.MatchedBy(func(r *domain.Room) bool {
		return r.Status == domain.RoomStatusOccupied && r.OccupiedAt != nil && r.OccupiedAt.Equal(testNow)
	})).Return(nil)

	tenant, err := s.CreateTenant(context.Background(), &domain.CreateTenantRequest{
		RoomID:      5,
		Name:        "Budi Santoso",
		Email:       "budi@example.com",
		Phone:       "081234567890",
		CheckInDate: "2024-04-01",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), tenant.ID)
	rooms.AssertExpectations(t)
}

func TestCreateTenant_UnknownRoom(t *testing.T) {
	rooms := &mocks.MockRoomRepository{}
	tenants := &mocks.MockTenantRepository{}
	s := newTestRoomService(rooms, tenants)

	rooms.On("GetByID", mock.Anything, int64(9)).Return(nil, customError.WrapRoomNotFound(9))

	_, err := s.CreateTenant(context.Background(), &domain.CreateTenantRequest{RoomID: 9, CheckInDate: "2024-04-01"})

	assert.ErrorIs(t, err, customError.ErrRoomNotFound)
	tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRefreshOccupancy_NoChangeSkipsWrite(t *testing.T) {
	rooms := &mocks.MockRoomRepository{}
	s := newTestRoomService(rooms, &mocks.MockTenantRepository{})

	rooms.On("GetByID", mock.Anything, int64(5)).Return(&domain.Room{ID: 5, Status: domain.RoomStatusAvailable}, nil)
	rooms.On("ActiveTenant", mock.Anything, int64(5)).Return(nil, nil)

	room, err := s.RefreshOccupancy(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatusAvailable, room.Status)
	rooms.AssertNotCalled(t, "UpdateOccupancy", mock.Anything, mock.Anything)
}
