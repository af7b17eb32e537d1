package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("Connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return pool
}

// initSchema creates or updates the database schema
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// PLACES
	// -------------------------------
	placesSQL := `
		CREATE TABLE IF NOT EXISTS places (
			external_id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			address VARCHAR(500) NOT NULL DEFAULT '',
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			open_now BOOLEAN NOT NULL DEFAULT FALSE,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			website VARCHAR(500) NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, placesSQL); err != nil {
		return err
	}

	coordsIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_places_coords
		ON places (latitude, longitude)
	`
	if _, err := pool.Exec(ctx, coordsIndexSQL); err != nil {
		return err
	}

	// -------------------------------
	// PRICE QUOTES
	// -------------------------------
	quotesSQL := `
		CREATE TABLE IF NOT EXISTS price_quotes (
			id SERIAL PRIMARY KEY,
			bar_id VARCHAR(255) NOT NULL,
			drink_name VARCHAR(255) NOT NULL,
			price NUMERIC(8,2) NOT NULL CHECK (price > 0),
			provenance VARCHAR(50) NOT NULL,
			source_image_url VARCHAR(500) NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (bar_id) REFERENCES places(external_id)
		)
	`
	if _, err := pool.Exec(ctx, quotesSQL); err != nil {
		return err
	}

	quotesIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_price_quotes_bar
		ON price_quotes (bar_id, created_at DESC)
	`
	if _, err := pool.Exec(ctx, quotesIndexSQL); err != nil {
		return err
	}

	// -------------------------------
	// RATE LIMITS
	// -------------------------------
	rateLimitsSQL := `
		CREATE TABLE IF NOT EXISTS rate_limits (
			ip_address VARCHAR(64) NOT NULL,
			endpoint VARCHAR(128) NOT NULL,
			request_count INT NOT NULL DEFAULT 1,
			first_request_at TIMESTAMP NOT NULL,
			last_request_at TIMESTAMP NOT NULL,
			PRIMARY KEY (ip_address, endpoint)
		)
	`
	if _, err := pool.Exec(ctx, rateLimitsSQL); err != nil {
		return err
	}

	log.Println("Schema initialized successfully")
	return nil
}
