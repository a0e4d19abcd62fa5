package trips

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type rowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores the package catalog and per-date slot counts
// in the relational database.
type PostgresRepository struct {
	pool rowQuerier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("trips: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithQuerier(q rowQuerier) *PostgresRepository {
	return &PostgresRepository{pool: q}
}

// RemainingSlots reports the remaining capacity for a package+date.
func (r *PostgresRepository) RemainingSlots(ctx context.Context, experienceCode, tripDate string) (int, error) {
	query := `
		SELECT remaining
		FROM package_availability
		WHERE experience_code = $1 AND trip_date = $2
	`
	var remaining int
	if err := r.pool.QueryRow(ctx, query, experienceCode, tripDate).Scan(&remaining); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrTripNotFound
		}
		return 0, fmt.Errorf("trips: query remaining slots: %w", err)
	}
	return remaining, nil
}

// GetPackage looks a package up by title and experience code; both must match.
func (r *PostgresRepository) GetPackage(ctx context.Context, title, experienceCode string) (*Package, error) {
	query := `
		SELECT experience_code, title, advance
		FROM packages
		WHERE title = $1 AND experience_code = $2
	`
	var pkg Package
	if err := r.pool.QueryRow(ctx, query, title, experienceCode).Scan(
		&pkg.ExperienceCode,
		&pkg.Title,
		&pkg.AdvanceRupees,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("trips: query package: %w", err)
	}
	return &pkg, nil
}

// DecrementSlot consumes one slot atomically. The remaining > 0 guard makes
// concurrent payment webhooks safe without an application-level lock.
func (r *PostgresRepository) DecrementSlot(ctx context.Context, experienceCode, tripDate string) error {
	query := `
		UPDATE package_availability
		SET remaining = remaining - 1
		WHERE experience_code = $1 AND trip_date = $2 AND remaining > 0
	`
	ct, err := r.pool.Exec(ctx, query, experienceCode, tripDate)
	if err != nil {
		return fmt.Errorf("trips: decrement slot: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrSlotUnavailable
	}
	return nil
}
