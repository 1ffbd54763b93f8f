package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/venue-service/internal/domain"
)

// MerchantRepository defines persistence access for merchants.
type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	Update(ctx context.Context, merchant *domain.Merchant) error
	UpdateStatus(ctx context.Context, id int64, status domain.MerchantStatus) error
	GetByID(ctx context.Context, id int64) (*domain.Merchant, error)
	List(ctx context.Context) ([]*domain.Merchant, error)
}

type merchantRepository struct {
	pool *pgxpool.Pool
}

// NewMerchantRepository returns a Postgres-backed implementation.
func NewMerchantRepository(pool *pgxpool.Pool) MerchantRepository {
	return &merchantRepository{pool: pool}
}

const merchantColumns = `
        id, code, name, contact_name, contact_phone, address, status, created_at, updated_at`

func scanMerchant(row pgx.Row) (*domain.Merchant, error) {
	var merchant domain.Merchant
	if err := row.Scan(
		&merchant.ID,
		&merchant.Code,
		&merchant.Name,
		&merchant.ContactName,
		&merchant.ContactPhone,
		&merchant.Address,
		&merchant.Status,
		&merchant.CreatedAt,
		&merchant.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &merchant, nil
}

func (r *merchantRepository) Create(ctx context.Context, merchant *domain.Merchant) error {
	const query = `
        INSERT INTO merchants (code, name, contact_name, contact_phone, address, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		merchant.Code,
		merchant.Name,
		merchant.ContactName,
		merchant.ContactPhone,
		merchant.Address,
		merchant.Status,
	).Scan(&merchant.ID, &merchant.CreatedAt, &merchant.UpdatedAt)
}

func (r *merchantRepository) Update(ctx context.Context, merchant *domain.Merchant) error {
	const query = `
        UPDATE merchants SET name=$1, contact_name=$2, contact_phone=$3,
               address=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		merchant.Name,
		merchant.ContactName,
		merchant.ContactPhone,
		merchant.Address,
		merchant.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *merchantRepository) UpdateStatus(ctx context.Context, id int64, status domain.MerchantStatus) error {
	const query = `UPDATE merchants SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *merchantRepository) GetByID(ctx context.Context, id int64) (*domain.Merchant, error) {
	query := `SELECT ` + merchantColumns + ` FROM merchants WHERE id=$1`
	return scanMerchant(r.pool.QueryRow(ctx, query, id))
}

func (r *merchantRepository) List(ctx context.Context) ([]*domain.Merchant, error) {
	query := `SELECT ` + merchantColumns + ` FROM merchants ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var merchants []*domain.Merchant
	for rows.Next() {
		merchant, err := scanMerchant(rows)
		if err != nil {
			return nil, err
		}
		merchants = append(merchants, merchant)
	}
	return merchants, rows.Err()
}
