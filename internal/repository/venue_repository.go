package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/venue-service/internal/domain"
)

// VenueFilter narrows venue listings.
type VenueFilter struct {
	MerchantID *int64
	Type       *domain.VenueType
	SubType    *domain.VenueSubType
	Status     *domain.VenueStatus
	Search     string
	Page       int
	PageSize   int
}

// VenueRepository defines persistence access for venues.
type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) error
	Update(ctx context.Context, venue *domain.Venue) error
	UpdateStatus(ctx context.Context, id int64, status domain.VenueStatus) error
	UpdateOccupancy(ctx context.Context, id int64, occupancy int) error
	AdjustOccupancy(ctx context.Context, id int64, delta int) (int, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	List(ctx context.Context, filter VenueFilter) ([]*domain.Venue, int64, error)
	ListPopular(ctx context.Context, limit int) ([]*domain.Venue, error)
}

type venueRepository struct {
	pool *pgxpool.Pool
}

// NewVenueRepository returns a Postgres-backed implementation.
func NewVenueRepository(pool *pgxpool.Pool) VenueRepository {
	return &venueRepository{pool: pool}
}

const venueColumns = `
        id, name, description, type, sub_type, merchant_id, merchant_name,
        address, longitude, latitude, phone, open_time, close_time, status,
        capacity, current_occupancy, rating, rating_count, created_at, updated_at`

func scanVenue(row pgx.Row) (*domain.Venue, error) {
	var venue domain.Venue
	if err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.Description,
		&venue.Type,
		&venue.SubType,
		&venue.MerchantID,
		&venue.MerchantName,
		&venue.Address,
		&venue.Longitude,
		&venue.Latitude,
		&venue.Phone,
		&venue.OpenTime,
		&venue.CloseTime,
		&venue.Status,
		&venue.Capacity,
		&venue.CurrentOccupancy,
		&venue.Rating,
		&venue.RatingCount,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	const query = `
        INSERT INTO venues (name, description, type, sub_type, merchant_id,
                            merchant_name, address, longitude, latitude, phone,
                            open_time, close_time, status, capacity)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		venue.Name,
		venue.Description,
		venue.Type,
		venue.SubType,
		venue.MerchantID,
		venue.MerchantName,
		venue.Address,
		venue.Longitude,
		venue.Latitude,
		venue.Phone,
		venue.OpenTime,
		venue.CloseTime,
		venue.Status,
		venue.Capacity,
	).Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
}

func (r *venueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	const query = `
        UPDATE venues SET name=$1, description=$2, type=$3, sub_type=$4,
               address=$5, longitude=$6, latitude=$7, phone=$8,
               open_time=$9, close_time=$10, capacity=$11, updated_at=NOW()
        WHERE id=$12`

	cmd, err := r.pool.Exec(ctx, query,
		venue.Name,
		venue.Description,
		venue.Type,
		venue.SubType,
		venue.Address,
		venue.Longitude,
		venue.Latitude,
		venue.Phone,
		venue.OpenTime,
		venue.CloseTime,
		venue.Capacity,
		venue.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *venueRepository) UpdateStatus(ctx context.Context, id int64, status domain.VenueStatus) error {
	const query = `UPDATE venues SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *venueRepository) UpdateOccupancy(ctx context.Context, id int64, occupancy int) error {
	const query = `UPDATE venues SET current_occupancy=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, occupancy, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AdjustOccupancy applies a delta atomically, clamped at zero, and returns
// the resulting count.
func (r *venueRepository) AdjustOccupancy(ctx context.Context, id int64, delta int) (int, error) {
	const query = `
        UPDATE venues
        SET current_occupancy = GREATEST(current_occupancy + $1, 0), updated_at=NOW()
        WHERE id=$2
        RETURNING current_occupancy`

	var occupancy int
	if err := r.pool.QueryRow(ctx, query, delta, id).Scan(&occupancy); err != nil {
		return 0, err
	}
	return occupancy, nil
}

func (r *venueRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM venues WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *venueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id=$1`
	return scanVenue(r.pool.QueryRow(ctx, query, id))
}

func (r *venueRepository) List(ctx context.Context, filter VenueFilter) ([]*domain.Venue, int64, error) {
	where := ` WHERE ($1::bigint IS NULL OR merchant_id=$1)
          AND ($2::text IS NULL OR type=$2)
          AND ($3::text IS NULL OR sub_type=$3)
          AND ($4::text IS NULL OR status=$4)
          AND ($5 = '' OR name ILIKE '%' || $5 || '%')`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM venues`+where,
		filter.MerchantID, filter.Type, filter.SubType, filter.Status, filter.Search,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := `SELECT ` + venueColumns + ` FROM venues` + where +
		` ORDER BY id LIMIT $6 OFFSET $7`

	rows, err := r.pool.Query(ctx, query,
		filter.MerchantID, filter.Type, filter.SubType, filter.Status, filter.Search,
		pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var venues []*domain.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, 0, err
		}
		venues = append(venues, venue)
	}
	return venues, total, rows.Err()
}

func (r *venueRepository) ListPopular(ctx context.Context, limit int) ([]*domain.Venue, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	query := `SELECT ` + venueColumns + ` FROM venues
        WHERE status='ACTIVE'
        ORDER BY rating DESC, rating_count DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []*domain.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}
	return venues, rows.Err()
}
