package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Fxdvs/maturitna-praca-spevak/internal/db"
	"github.com/Fxdvs/maturitna-praca-spevak/internal/ocr"
	"github.com/Fxdvs/maturitna-praca-spevak/internal/places"
	"github.com/Fxdvs/maturitna-praca-spevak/internal/prices"
	"github.com/Fxdvs/maturitna-praca-spevak/internal/ratelimit"
	"github.com/Fxdvs/maturitna-praca-spevak/internal/router"
	"github.com/Fxdvs/maturitna-praca-spevak/internal/storage"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"GOOGLE_API_KEY",
		"ADMIN_JWT_SECRET",
	}
	for _, key := range required {
		if os.Getenv(key) == "" {
			log.Fatalf("%s is not set", key)
		}
	}

	log.Println("Environment loaded successfully")

	// ───────────────────────── DB ─────────────────────────
	pool := db.ConnectPostgres()
	defer pool.Close()

	// ──────────────────────── WIRING ────────────────────────
	google := places.NewGoogleClient(os.Getenv("GOOGLE_API_KEY"))

	placeRepo := places.NewPostgresRepository(pool)
	placeService := places.NewService(placeRepo, google)
	placeHandler := places.NewHandler(placeService)

	archive, err := storage.NewR2ClientFromEnv(context.Background())
	if err != nil {
		log.Fatal("Failed to initialize R2 client:", err)
	}
	if archive == nil {
		log.Println("R2 archive disabled (R2_ENDPOINT not set)")
	}

	quoteRepo := prices.NewPostgresRepository(pool)
	priceService := prices.NewService(
		quoteRepo,
		prices.NewWebScraper(),
		ocr.NewTesseract(),
		prices.NewEuroPattern(),
		places.NewWebsiteCache(placeRepo, google),
		archiveOrNil(archive),
	)
	priceHandler := prices.NewHandler(priceService)
	adminHandler := prices.NewAdminHandler(quoteRepo)

	limiter := ratelimit.NewService(ratelimit.NewPostgresRepository(pool))

	// ──────────────────────── SERVER ────────────────────────
	r := router.NewRouter(placeHandler, priceHandler, adminHandler, limiter)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("API listening on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// archiveOrNil keeps the service's Archive interface nil when R2 is not
// configured; a typed nil pointer would dodge the nil check.
func archiveOrNil(archive *storage.R2Client) prices.Archive {
	if archive == nil {
		return nil
	}
	return archive
}
