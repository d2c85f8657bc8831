package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stibodx/user-directory/internal/domain/entity"
	"github.com/stibodx/user-directory/internal/domain/repository"
)

const uniqueViolation = "23505"

const selectUser = `
	SELECT u.id, u.first_name, u.last_name, u.date_of_birth, u.email, u.job, u.created_at, u.updated_at,
	       a.id, a.street, a.city, a.state_province, a.postal_code, a.country, a.is_primary
	FROM users u
	LEFT JOIN addresses a ON a.user_id = u.id
`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user and its address inside one transaction.
// A unique-index violation on lower(email) surfaces as
// repository.ErrDuplicateEmail; this is the backstop for concurrent
// creates racing past the service-level duplicate check.
func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, date_of_birth, email, job)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.FirstName, u.LastName, u.DateOfBirth, u.Email, u.Job)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapPgError(err)
	}

	if u.Address != nil {
		a := u.Address
		row := tx.QueryRow(ctx, `
			INSERT INTO addresses (user_id, street, city, state_province, postal_code, country, is_primary)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, u.ID, a.Street, a.City, a.State, a.PostalCode, a.Country, a.IsPrimary)
		if err := row.Scan(&a.ID); err != nil {
			return err
		}
		a.User = u
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) GetByID(id uuid.UUID) (*entity.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, selectUser+` WHERE u.id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, selectUser+` WHERE u.email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) Count() (int64, error) {
	ctx := context.Background()
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *UserRepository) FindPage(offset, limit int) ([]*entity.User, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, selectUser+` ORDER BY u.created_at, u.id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) GetAll() ([]*entity.User, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, selectUser+` ORDER BY u.created_at, u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var (
		addrID     *uuid.UUID
		street     *string
		city       *string
		state      *string
		postalCode *string
		country    *string
		isPrimary  *bool
	)
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.DateOfBirth, &u.Email, &u.Job, &u.CreatedAt, &u.UpdatedAt,
		&addrID, &street, &city, &state, &postalCode, &country, &isPrimary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if addrID != nil {
		u.Address = &entity.Address{
			ID:         *addrID,
			Street:     *street,
			City:       *city,
			State:      *state,
			PostalCode: *postalCode,
			Country:    *country,
			IsPrimary:  *isPrimary,
			User:       u,
		}
	}
	return u, nil
}

func collectUsers(rows pgx.Rows) ([]*entity.User, error) {
	users := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateEmail
	}
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
