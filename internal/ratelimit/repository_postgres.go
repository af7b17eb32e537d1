package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(
	ctx context.Context,
	ip, endpoint string,
) (*Record, error) {

	var rec Record
	err := r.db.QueryRow(ctx, `
		SELECT
			ip_address,
			endpoint,
			request_count,
			first_request_at,
			last_request_at
		FROM rate_limits
		WHERE ip_address = $1
		  AND endpoint = $2
	`, ip, endpoint).Scan(
		&rec.IP,
		&rec.Endpoint,
		&rec.RequestCount,
		&rec.FirstRequestAt,
		&rec.LastRequestAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *PostgresRepository) Create(
	ctx context.Context,
	ip, endpoint string,
	now time.Time,
) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO rate_limits (
			ip_address,
			endpoint,
			request_count,
			first_request_at,
			last_request_at
		)
		VALUES ($1, $2, 1, $3, $3)
		ON CONFLICT (ip_address, endpoint) DO UPDATE SET
			request_count    = rate_limits.request_count + 1,
			last_request_at  = EXCLUDED.last_request_at
	`, ip, endpoint, now)

	return err
}

func (r *PostgresRepository) Reset(
	ctx context.Context,
	ip, endpoint string,
	now time.Time,
) error {
	_, err := r.db.Exec(ctx, `
		UPDATE rate_limits
		SET request_count    = 1,
		    first_request_at = $3,
		    last_request_at  = $3
		WHERE ip_address = $1
		  AND endpoint = $2
	`, ip, endpoint, now)

	return err
}

func (r *PostgresRepository) Increment(
	ctx context.Context,
	ip, endpoint string,
	now time.Time,
) error {
	_, err := r.db.Exec(ctx, `
		UPDATE rate_limits
		SET request_count   = request_count + 1,
		    last_request_at = $3
		WHERE ip_address = $1
		  AND endpoint = $2
	`, ip, endpoint, now)

	return err
}
