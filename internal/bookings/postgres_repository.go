package bookings

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type rowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores bookings in the relational database.
type PostgresRepository struct {
	pool rowQuerier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("bookings: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithQuerier(q rowQuerier) *PostgresRepository {
	return &PostgresRepository{pool: q}
}

// Create inserts a booking row with advance Paid and remaining Pending.
func (r *PostgresRepository) Create(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	query := `
		INSERT INTO bookings (
			user_id, user_name, user_phone, experience_code,
			package_title, advance_status, start_date, remaining_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	booking := Booking{
		UserID:          req.UserID,
		UserName:        req.UserName,
		UserPhone:       req.UserPhone,
		ExperienceCode:  req.ExperienceCode,
		PackageTitle:    req.PackageTitle,
		AdvanceStatus:   StatusPaid,
		StartDate:       req.StartDate,
		RemainingStatus: StatusPending,
	}
	err := r.pool.QueryRow(ctx, query,
		req.UserID,
		req.UserName,
		req.UserPhone,
		req.ExperienceCode,
		req.PackageTitle,
		StatusPaid,
		req.StartDate,
		StatusPending,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("bookings: insert booking: %w", err)
	}
	return &booking, nil
}

// ListByPhone returns the user's bookings, newest first.
func (r *PostgresRepository) ListByPhone(ctx context.Context, phone string) ([]Booking, error) {
	query := `
		SELECT id, user_id, user_name, user_phone, experience_code,
		       package_title, created_at, advance_status, start_date, remaining_status
		FROM bookings
		WHERE user_phone = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, phone)
	if err != nil {
		return nil, fmt.Errorf("bookings: query bookings: %w", err)
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.UserName,
			&b.UserPhone,
			&b.ExperienceCode,
			&b.PackageTitle,
			&b.CreatedAt,
			&b.AdvanceStatus,
			&b.StartDate,
			&b.RemainingStatus,
		); err != nil {
			return nil, fmt.Errorf("bookings: scan booking: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings: iterate bookings: %w", err)
	}
	return out, nil
}
