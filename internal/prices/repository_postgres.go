package prices

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Batch lookup, most recent quote per bar wins
// --------------------------------------------------
func (r *PostgresRepository) GetByBars(
	ctx context.Context,
	barIDs []string,
) (map[string]*Quote, error) {

	quotes := make(map[string]*Quote)
	if len(barIDs) == 0 {
		return quotes, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT ON (bar_id)
			bar_id,
			drink_name,
			price,
			provenance,
			source_image_url,
			created_at
		FROM price_quotes
		WHERE bar_id = ANY($1)
		ORDER BY bar_id, created_at DESC
	`, barIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var q Quote
		if err := rows.Scan(
			&q.BarID,
			&q.DrinkName,
			&q.Price,
			&q.Provenance,
			&q.SourceImageURL,
			&q.CreatedAt,
		); err != nil {
			return nil, err
		}
		quotes[q.BarID] = &q
	}

	return quotes, rows.Err()
}

func (r *PostgresRepository) Upsert(ctx context.Context, quote *Quote) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO price_quotes (
			bar_id,
			drink_name,
			price,
			provenance,
			source_image_url
		)
		VALUES ($1,$2,$3,$4,$5)
	`,
		quote.BarID,
		quote.DrinkName,
		quote.Price,
		quote.Provenance,
		quote.SourceImageURL,
	)

	return err
}
