package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/venue-service/internal/domain"
)

// UserFilter narrows user listings.
type UserFilter struct {
	UserType   *domain.UserType
	Status     *domain.UserStatus
	MerchantID *int64
	Search     string
	Page       int
	PageSize   int
}

// UserRepository defines persistence access for platform accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error
	UpdateLastLogin(ctx context.Context, id int64, ip string) error
	AddPoints(ctx context.Context, id int64, points int) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, int64, error)
	AssignRoles(ctx context.Context, userID int64, roleIDs []int64) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `
        id, username, password_hash, real_name, phone, email, user_type,
        merchant_id, merchant_name, status, points, member_level,
        last_login_at, last_login_ip, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.RealName,
		&user.Phone,
		&user.Email,
		&user.UserType,
		&user.MerchantID,
		&user.MerchantName,
		&user.Status,
		&user.Points,
		&user.MemberLevel,
		&user.LastLoginAt,
		&user.LastLoginIP,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, password_hash, real_name, phone, email,
                           user_type, merchant_id, merchant_name, status,
                           points, member_level)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.RealName,
		user.Phone,
		user.Email,
		user.UserType,
		user.MerchantID,
		user.MerchantName,
		user.Status,
		user.Points,
		user.MemberLevel,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET real_name=$1, phone=$2, email=$3, user_type=$4,
               merchant_id=$5, merchant_name=$6, password_hash=$7,
               points=$8, member_level=$9, updated_at=NOW()
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		user.RealName,
		user.Phone,
		user.Email,
		user.UserType,
		user.MerchantID,
		user.MerchantName,
		user.PasswordHash,
		user.Points,
		user.MemberLevel,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	const query = `UPDATE users SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64, ip string) error {
	const query = `UPDATE users SET last_login_at=NOW(), last_login_ip=$1, updated_at=NOW() WHERE id=$2`

	_, err := r.pool.Exec(ctx, query, ip, id)
	return err
}

func (r *userRepository) AddPoints(ctx context.Context, id int64, points int) error {
	const query = `UPDATE users SET points = points + $1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, points, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username=$1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		return nil, err
	}
	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]*domain.User, int64, error) {
	where := ` WHERE ($1::text IS NULL OR user_type=$1)
          AND ($2::text IS NULL OR status=$2)
          AND ($3::bigint IS NULL OR merchant_id=$3)
          AND ($4 = '' OR username ILIKE '%' || $4 || '%' OR real_name ILIKE '%' || $4 || '%')`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where,
		filter.UserType, filter.Status, filter.MerchantID, filter.Search,
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

	query := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY id LIMIT $5 OFFSET $6`

	rows, err := r.pool.Query(ctx, query,
		filter.UserType, filter.Status, filter.MerchantID, filter.Search,
		pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}

func (r *userRepository) AssignRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id=$1`, userID); err != nil {
		return err
	}
	for _, roleID := range roleIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`,
			userID, roleID,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *userRepository) loadRoles(ctx context.Context, user *domain.User) error {
	const query = `
        SELECT r.id, r.code, r.name, r.descr, r.role_type, r.merchant_id,
               r.status, r.created_at, r.updated_at
        FROM roles r
        JOIN user_roles ur ON ur.role_id = r.id
        WHERE ur.user_id = $1
        ORDER BY r.id`

	rows, err := r.pool.Query(ctx, query, user.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(
			&role.ID,
			&role.Code,
			&role.Name,
			&role.Descr,
			&role.RoleType,
			&role.MerchantID,
			&role.Status,
			&role.CreatedAt,
			&role.UpdatedAt,
		); err != nil {
			return err
		}
		user.Roles = append(user.Roles, role)
	}
	return rows.Err()
}
