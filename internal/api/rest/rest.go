package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-land-rentals/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/v1")
	{
		// Listing creation is signed by the lessor authenticated with the JWT
		v1.POST("/rentals-listings", middleware.Auth(authCfg), handler.CreateRentalListing)

		// Public reads
		v1.GET("/rentals-listings", handler.GetRentalsListings)
		v1.GET("/rental-listings/prices", handler.GetRentalsListingsPrices)

		// Refresh against the indexers (open, the outcome only depends on chain state)
		v1.PATCH("/rentals-listings/:id", handler.RefreshRentalListing)
	}
}
