package places

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Fxdvs/maturitna-praca-spevak/internal/geo"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Bounding-box pre-filter
// --------------------------------------------------
func (r *PostgresRepository) FindInBox(
	ctx context.Context,
	box geo.BoundingBox,
) ([]*Place, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			external_id,
			name,
			address,
			rating,
			open_now,
			latitude,
			longitude,
			website,
			created_at
		FROM places
		WHERE latitude  BETWEEN $1 AND $2
		  AND longitude BETWEEN $3 AND $4
	`, box.MinLat, box.MaxLat, box.MinLng, box.MaxLng)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []*Place

	for rows.Next() {
		var p Place
		if err := rows.Scan(
			&p.ExternalID,
			&p.Name,
			&p.Address,
			&p.Rating,
			&p.OpenNow,
			&p.Latitude,
			&p.Longitude,
			&p.Website,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		found = append(found, &p)
	}

	return found, rows.Err()
}

// --------------------------------------------------
// Upsert by external_id (refresh rating/open_now only)
// --------------------------------------------------
func (r *PostgresRepository) Upsert(ctx context.Context, place *Place) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO places (
			external_id,
			name,
			address,
			rating,
			open_now,
			latitude,
			longitude,
			website
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (external_id) DO UPDATE SET
			rating     = EXCLUDED.rating,
			open_now   = EXCLUDED.open_now,
			website    = COALESCE(EXCLUDED.website, places.website),
			updated_at = now()
	`,
		place.ExternalID,
		place.Name,
		place.Address,
		place.Rating,
		place.OpenNow,
		place.Latitude,
		place.Longitude,
		place.Website,
	)

	return err
}

func (r *PostgresRepository) Get(
	ctx context.Context,
	externalID string,
) (*Place, error) {

	var p Place
	err := r.db.QueryRow(ctx, `
		SELECT
			external_id,
			name,
			address,
			rating,
			open_now,
			latitude,
			longitude,
			website,
			created_at
		FROM places
		WHERE external_id = $1
	`, externalID).Scan(
		&p.ExternalID,
		&p.Name,
		&p.Address,
		&p.Rating,
		&p.OpenNow,
		&p.Latitude,
		&p.Longitude,
		&p.Website,
		&p.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}
