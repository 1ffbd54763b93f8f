package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/venue-service/internal/domain"
)

// OpenVisit pairs a user with the venue they are currently checked into.
type OpenVisit struct {
	CheckInID int64
	VenueID   int64
	UserID    int64
	UserName  string
	Since     time.Time
}

// CheckInRepository defines persistence access for check-in records.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *domain.CheckIn) error
	ListByVenue(ctx context.Context, venueID int64, limit int) ([]*domain.CheckIn, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.CheckIn, error)
	FindOpenVisit(ctx context.Context, venueID, userID int64) (*OpenVisit, error)
	ListStaleOpenVisits(ctx context.Context, olderThan time.Time) ([]*OpenVisit, error)
}

type checkInRepository struct {
	pool *pgxpool.Pool
}

// NewCheckInRepository returns a Postgres-backed implementation.
func NewCheckInRepository(pool *pgxpool.Pool) CheckInRepository {
	return &checkInRepository{pool: pool}
}

const checkInColumns = `
        id, check_in_no, venue_id, user_id, user_name, reservation_id,
        type, method, earned_points, occurred_at, created_at`

func scanCheckIn(row pgx.Row) (*domain.CheckIn, error) {
	var checkIn domain.CheckIn
	if err := row.Scan(
		&checkIn.ID,
		&checkIn.CheckInNo,
		&checkIn.VenueID,
		&checkIn.UserID,
		&checkIn.UserName,
		&checkIn.ReservationID,
		&checkIn.Type,
		&checkIn.Method,
		&checkIn.EarnedPoints,
		&checkIn.OccurredAt,
		&checkIn.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (r *checkInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	const query = `
        INSERT INTO venue_check_ins (check_in_no, venue_id, user_id, user_name,
                reservation_id, type, method, earned_points, occurred_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		checkIn.CheckInNo,
		checkIn.VenueID,
		checkIn.UserID,
		checkIn.UserName,
		checkIn.ReservationID,
		checkIn.Type,
		checkIn.Method,
		checkIn.EarnedPoints,
		checkIn.OccurredAt,
	).Scan(&checkIn.ID, &checkIn.CreatedAt)
}

func (r *checkInRepository) ListByVenue(ctx context.Context, venueID int64, limit int) ([]*domain.CheckIn, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	query := `SELECT ` + checkInColumns + ` FROM venue_check_ins
        WHERE venue_id=$1 ORDER BY occurred_at DESC LIMIT $2`
	return r.queryMany(ctx, query, venueID, limit)
}

func (r *checkInRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.CheckIn, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	query := `SELECT ` + checkInColumns + ` FROM venue_check_ins
        WHERE user_id=$1 ORDER BY occurred_at DESC LIMIT $2`
	return r.queryMany(ctx, query, userID, limit)
}

// FindOpenVisit returns the user's latest CHECK_IN at the venue that has no
// later CHECK_OUT or AUTO_CHECK_OUT.
func (r *checkInRepository) FindOpenVisit(ctx context.Context, venueID, userID int64) (*OpenVisit, error) {
	const query = `
        SELECT ci.id, ci.venue_id, ci.user_id, ci.user_name, ci.occurred_at
        FROM venue_check_ins ci
        WHERE ci.venue_id=$1 AND ci.user_id=$2 AND ci.type='CHECK_IN'
          AND NOT EXISTS (
              SELECT 1 FROM venue_check_ins co
              WHERE co.venue_id=ci.venue_id AND co.user_id=ci.user_id
                AND co.type IN ('CHECK_OUT', 'AUTO_CHECK_OUT')
                AND co.occurred_at >= ci.occurred_at)
        ORDER BY ci.occurred_at DESC
        LIMIT 1`

	var visit OpenVisit
	if err := r.pool.QueryRow(ctx, query, venueID, userID).Scan(
		&visit.CheckInID,
		&visit.VenueID,
		&visit.UserID,
		&visit.UserName,
		&visit.Since,
	); err != nil {
		return nil, err
	}
	return &visit, nil
}

// ListStaleOpenVisits returns open visits that started before the cutoff,
// for the auto check-out sweep.
func (r *checkInRepository) ListStaleOpenVisits(ctx context.Context, olderThan time.Time) ([]*OpenVisit, error) {
	const query = `
        SELECT ci.id, ci.venue_id, ci.user_id, ci.user_name, ci.occurred_at
        FROM venue_check_ins ci
        WHERE ci.type='CHECK_IN' AND ci.occurred_at < $1
          AND NOT EXISTS (
              SELECT 1 FROM venue_check_ins co
              WHERE co.venue_id=ci.venue_id AND co.user_id=ci.user_id
                AND co.type IN ('CHECK_OUT', 'AUTO_CHECK_OUT')
                AND co.occurred_at >= ci.occurred_at)
        ORDER BY ci.occurred_at`

	rows, err := r.pool.Query(ctx, query, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []*OpenVisit
	for rows.Next() {
		var visit OpenVisit
		if err := rows.Scan(
			&visit.CheckInID,
			&visit.VenueID,
			&visit.UserID,
			&visit.UserName,
			&visit.Since,
		); err != nil {
			return nil, err
		}
		visits = append(visits, &visit)
	}
	return visits, rows.Err()
}

func (r *checkInRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.CheckIn, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkIns []*domain.CheckIn
	for rows.Next() {
		checkIn, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		checkIns = append(checkIns, checkIn)
	}
	return checkIns, rows.Err()
}
