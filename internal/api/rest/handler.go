package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-land-rentals/internal/api/middleware"
	"github.com/feral-file/ff-land-rentals/internal/api/rest/dto"
	"github.com/feral-file/ff-land-rentals/internal/rentals"
)

const serviceName = "land-rentals-api"

// Handler defines the interface for REST API handlers
type Handler interface {
	// CreateRentalListing stores a listing signed by the authenticated lessor
	// POST /v1/rentals-listings
	CreateRentalListing(c *gin.Context)

	// GetRentalsListings retrieves a page of listings
	// GET /v1/rentals-listings?status=<status>&category=<category>&lessor=<address>&sortBy=<key>&sortDirection=<dir>&page=<page>&limit=<limit>&history=<bool>
	GetRentalsListings(c *gin.Context)

	// GetRentalsListingsPrices retrieves the number of open tiers per price
	// GET /v1/rental-listings/prices?category=<category>&rentalDays=<days>
	GetRentalsListingsPrices(c *gin.Context)

	// RefreshRentalListing reconciles one listing with the indexers
	// PATCH /v1/rentals-listings/:id
	RefreshRentalListing(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	component rentals.Component
}

// NewHandler creates a new REST API handler on top of the rentals component
func NewHandler(component rentals.Component) Handler {
	return &handler{
		component: component,
	}
}

// CreateRentalListing stores a listing signed by the authenticated lessor
func (h *handler) CreateRentalListing(c *gin.Context) {
	lessor, ok := middleware.Subject(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return
	}

	var req dto.CreateRentalListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	listing := req.ToDomain()
	if err := listing.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	created, err := h.component.CreateRentalListing(c.Request.Context(), listing, lessor)
	if err != nil {
		respondComponentError(c, err,
			zap.String("lessor", lessor),
			zap.String("contractAddress", listing.ContractAddress),
			zap.String("tokenId", listing.TokenID),
		)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope{
		OK:   true,
		Data: dto.NewRentalListingResponse(*created),
	})
}

// GetRentalsListings retrieves a page of listings
func (h *handler) GetRentalsListings(c *gin.Context) {
	queryParams, err := ParseListRentalsListingsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	page, err := h.component.GetRentalsListings(c.Request.Context(), queryParams.ToDomain())
	if err != nil {
		respondComponentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		OK:   true,
		Data: dto.NewPaginatedRentalListingsResponse(*page),
	})
}

// GetRentalsListingsPrices retrieves the number of open tiers per price
func (h *handler) GetRentalsListingsPrices(c *gin.Context) {
	queryParams, err := ParseListRentalsListingsPricesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	prices, err := h.component.GetRentalsListingsPrices(c.Request.Context(), queryParams.ToDomain())
	if err != nil {
		respondComponentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		OK:   true,
		Data: dto.NewPricesResponse(prices),
	})
}

// RefreshRentalListing reconciles one listing with the indexers
func (h *handler) RefreshRentalListing(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respondBadRequest(c, "Invalid rental listing id", id)
		return
	}

	listing, err := h.component.RefreshRentalListing(c.Request.Context(), id)
	if err != nil {
		respondComponentError(c, err, zap.String("id", id))
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		OK:   true,
		Data: dto.NewRentalListingResponse(*listing),
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": serviceName,
	})
}
