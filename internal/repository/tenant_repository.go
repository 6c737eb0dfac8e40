package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/segyhp/kos-management/internal/domain"
	customError "github.com/segyhp/kos-management/pkg/errors"
)

const tenantColumns = `
	id, room_id, name, email, phone, check_in_date, check_out_date, status,
	address, notes, created_at, updated_at
`

type tenantRepository struct {
	db *sqlx.DB
}

func NewTenantRepository(db *sqlx.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		INSERT INTO tenants (room_id, name, email, phone, check_in_date, status, address, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		tenant.RoomID,
		tenant.Name,
		tenant.Email,
		tenant.Phone,
		dateOnly(tenant.CheckInDate),
		tenant.Status,
		tenant.Address,
		tenant.Notes,
	).Scan(&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.GetContext(ctx, &tenant, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapTenantNotFound(id)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &tenant, nil
}
