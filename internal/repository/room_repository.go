package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/segyhp/kos-management/internal/domain"
	customError "github.com/segyhp/kos-management/pkg/errors"
)

type roomRepository struct {
	db *sqlx.DB
}

func NewRoomRepository(db *sqlx.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (room_number, room_type, monthly_rate, description, status, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		room.RoomNumber,
		room.RoomType,
		room.MonthlyRate,
		room.Description,
		room.Status,
		room.Capacity,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	query := `
		SELECT id, room_number, room_type, monthly_rate, description, status, capacity,
		       occupied_at, available_at, created_at, updated_at
		FROM rooms
		WHERE id = $1
	`

	var room domain.Room
	err := r.db.GetContext(ctx, &room, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapRoomNotFound(id)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &room, nil
}

func (r *roomRepository) UpdateOccupancy(ctx context.Context, room *domain.Room) error {
	query := `
		UPDATE rooms
		SET status = $2, occupied_at = $3, available_at = $4, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, room.ID, room.Status, room.OccupiedAt, room.AvailableAt)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return customError.WrapRoomNotFound(room.ID)
	}

	return nil
}

func (r *roomRepository) ActiveTenant(ctx context.Context, roomID int64) (*domain.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE room_id = $1 AND status = 'active'
		ORDER BY check_in_date DESC, id DESC
		LIMIT 1
	`

	var tenant domain.Tenant
	err := r.db.GetContext(ctx, &tenant, query, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &tenant, nil
}
