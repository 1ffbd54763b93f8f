package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/venue-service/internal/domain"
)

// ReservationRepository defines persistence access for reservations.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByNo(ctx context.Context, reservationNo string) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error)
	ListByVenue(ctx context.Context, venueID int64) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	CountActiveForWindow(ctx context.Context, venueID int64, start, end time.Time) (int64, error)
}

type reservationRepository struct {
	pool *pgxpool.Pool
}

// NewReservationRepository returns a Postgres-backed implementation.
func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &reservationRepository{pool: pool}
}

const reservationColumns = `
        id, reservation_no, venue_id, user_id, user_name, user_phone,
        start_time, end_time, people_count, status, unit_price, total_price,
        payment_status, created_at, updated_at`

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := row.Scan(
		&res.ID,
		&res.ReservationNo,
		&res.VenueID,
		&res.UserID,
		&res.UserName,
		&res.UserPhone,
		&res.StartTime,
		&res.EndTime,
		&res.PeopleCount,
		&res.Status,
		&res.UnitPrice,
		&res.TotalPrice,
		&res.PaymentStatus,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	const query = `
        INSERT INTO venue_reservations (reservation_no, venue_id, user_id,
                user_name, user_phone, start_time, end_time, people_count,
                status, unit_price, total_price, payment_status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		reservation.ReservationNo,
		reservation.VenueID,
		reservation.UserID,
		reservation.UserName,
		reservation.UserPhone,
		reservation.StartTime,
		reservation.EndTime,
		reservation.PeopleCount,
		reservation.Status,
		reservation.UnitPrice,
		reservation.TotalPrice,
		reservation.PaymentStatus,
	).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM venue_reservations WHERE id=$1`
	return scanReservation(r.pool.QueryRow(ctx, query, id))
}

func (r *reservationRepository) GetByNo(ctx context.Context, reservationNo string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM venue_reservations WHERE reservation_no=$1`
	return scanReservation(r.pool.QueryRow(ctx, query, reservationNo))
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM venue_reservations
        WHERE user_id=$1 ORDER BY start_time DESC`
	return r.queryMany(ctx, query, userID)
}

func (r *reservationRepository) ListByVenue(ctx context.Context, venueID int64) ([]*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM venue_reservations
        WHERE venue_id=$1 ORDER BY start_time DESC`
	return r.queryMany(ctx, query, venueID)
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	const query = `UPDATE venue_reservations SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reservationRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	const query = `UPDATE venue_reservations SET payment_status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CountActiveForWindow counts PENDING and CONFIRMED reservations overlapping
// the given window.
func (r *reservationRepository) CountActiveForWindow(ctx context.Context, venueID int64, start, end time.Time) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM venue_reservations
        WHERE venue_id=$1
          AND status IN ('PENDING', 'CONFIRMED')
          AND start_time < $3 AND end_time > $2`

	var count int64
	if err := r.pool.QueryRow(ctx, query, venueID, start, end).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *reservationRepository) queryMany(ctx context.Context, query string, arg any) ([]*domain.Reservation, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
