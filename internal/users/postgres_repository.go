package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type rowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores users in the relational database.
type PostgresRepository struct {
	pool rowQuerier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("users: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithQuerier(q rowQuerier) *PostgresRepository {
	return &PostgresRepository{pool: q}
}

// FindByPhone looks a user up by normalized phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (*User, error) {
	query := `
		SELECT id, first_name, last_name, phone_number, booked_packages
		FROM users
		WHERE phone_number = $1
	`
	var user User
	if err := r.pool.QueryRow(ctx, query, phone).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.BookedTitles,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("users: query by phone: %w", err)
	}
	return &user, nil
}

// Create inserts a new user row.
func (r *PostgresRepository) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	id := uuid.New()
	query := `
		INSERT INTO users (id, first_name, last_name, phone_number)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.pool.Exec(ctx, query, id, req.FirstName, req.LastName, req.Phone); err != nil {
		return nil, fmt.Errorf("users: insert: %w", err)
	}
	return &User{
		ID:        id.String(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}, nil
}

// AppendBookedTitle appends to the booked_packages array in a single
// statement, so concurrent confirmations cannot lose an entry.
func (r *PostgresRepository) AppendBookedTitle(ctx context.Context, userID, title string) error {
	query := `
		UPDATE users
		SET booked_packages = array_append(booked_packages, $2)
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, userID, title)
	if err != nil {
		return fmt.Errorf("users: append booked title: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
