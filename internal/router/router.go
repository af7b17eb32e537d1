package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Fxdvs/maturitna-praca-spevak/internal/middleware"
	"github.com/Fxdvs/maturitna-praca-spevak/internal/places"
	"github.com/Fxdvs/maturitna-praca-spevak/internal/prices"
	"github.com/Fxdvs/maturitna-praca-spevak/internal/ratelimit"
)

func NewRouter(
	placesHandler *places.Handler,
	pricesHandler *prices.Handler,
	adminHandler *prices.AdminHandler,
	limiter *ratelimit.Service,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/bars",
			middleware.RateLimit(limiter, "/api/bars"),
			placesHandler.FindNearby,
		)
		api.POST("/prices",
			middleware.RateLimit(limiter, "/api/prices"),
			pricesHandler.Resolve,
		)
	}

	admin := r.Group("/api/admin", middleware.AdminAuth())
	{
		admin.PUT("/quotes", adminHandler.UpsertQuote)
		admin.GET("/quotes/:barId", adminHandler.GetQuote)
	}

	return r
}
