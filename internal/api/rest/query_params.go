package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-land-rentals/internal/domain"
	"github.com/feral-file/ff-land-rentals/internal/types"
)

// ListRentalsListingsQueryParams holds query parameters for GET /v1/rentals-listings
type ListRentalsListingsQueryParams struct {
	// Filters
	Status             []string `form:"status" binding:"dive,oneof=open executed cancelled claimed"`
	Target             *string  `form:"target" binding:"omitempty,eth_addr"`
	UpdatedAfter       *int64   `form:"updatedAfter" binding:"omitempty,min=0"`
	TokenID            *string  `form:"tokenId"`
	ContractAddresses  []string `form:"contractAddresses" binding:"dive,eth_addr"`
	Network            *string  `form:"network" binding:"omitempty,oneof=ETHEREUM MATIC"`
	Lessor             *string  `form:"lessor" binding:"omitempty,eth_addr"`
	Tenant             *string  `form:"tenant" binding:"omitempty,eth_addr"`
	NFTIDs             []string `form:"nftIds"`
	Category           *string  `form:"category" binding:"omitempty,oneof=parcel estate"`
	Text               *string  `form:"text"`
	MinDistanceToPlaza *int     `form:"minDistanceToPlaza" binding:"omitempty,min=0"`
	MaxDistanceToPlaza *int     `form:"maxDistanceToPlaza" binding:"omitempty,min=0"`
	MinEstateSize      *int     `form:"minEstateSize" binding:"omitempty,min=0"`
	MaxEstateSize      *int     `form:"maxEstateSize" binding:"omitempty,min=0"`
	AdjacentToRoad     *bool    `form:"adjacentToRoad"`
	RentalDays         []int    `form:"rentalDays" binding:"dive,min=1"`
	MinPricePerDay     *string  `form:"minPricePerDay"`
	MaxPricePerDay     *string  `form:"maxPricePerDay"`

	// Sorting
	SortBy        string `form:"sortBy,default=rental_listing_creation_date"`
	SortDirection string `form:"sortDirection,default=asc" binding:"oneof=asc desc"`

	// Pagination
	Page    int  `form:"page,default=0" binding:"min=0"`
	Limit   int  `form:"limit,default=50" binding:"min=1"`
	History bool `form:"history,default=false"`
}

// ListRentalsListingsPricesQueryParams holds query parameters for GET /v1/rental-listings/prices
type ListRentalsListingsPricesQueryParams struct {
	Category           *string `form:"category" binding:"omitempty,oneof=parcel estate"`
	Network            *string `form:"network" binding:"omitempty,oneof=ETHEREUM MATIC"`
	RentalDays         []int   `form:"rentalDays" binding:"dive,min=1"`
	AdjacentToRoad     *bool   `form:"adjacentToRoad"`
	MinDistanceToPlaza *int    `form:"minDistanceToPlaza" binding:"omitempty,min=0"`
	MaxDistanceToPlaza *int    `form:"maxDistanceToPlaza" binding:"omitempty,min=0"`
	MinEstateSize      *int    `form:"minEstateSize" binding:"omitempty,min=0"`
	MaxEstateSize      *int    `form:"maxEstateSize" binding:"omitempty,min=0"`
}

// ParseListRentalsListingsQuery parses query parameters for GET /v1/rentals-listings
func ParseListRentalsListingsQuery(c *gin.Context) (*ListRentalsListingsQueryParams, error) {
	var params ListRentalsListingsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limits
	if params.Limit > domain.MAX_PAGE_SIZE {
		params.Limit = domain.MAX_PAGE_SIZE
	}

	return &params, nil
}

// Validate checks the parameters the binding tags cannot express
func (p *ListRentalsListingsQueryParams) Validate() error {
	if !domain.IsValidSortBy(domain.SortBy(p.SortBy)) {
		return fmt.Errorf("invalid sortBy: %s", p.SortBy)
	}
	for _, price := range []*string{p.MinPricePerDay, p.MaxPricePerDay} {
		if price == nil {
			continue
		}
		if err := domain.ValidatePricePerDay(*price); err != nil {
			return err
		}
	}
	return nil
}

// ToDomain converts the parameters into a listings read
func (p *ListRentalsListingsQueryParams) ToDomain() domain.RentalsListingsQuery {
	filter := domain.RentalsListingsFilterBy{
		Target:             p.Target,
		TokenID:            p.TokenID,
		ContractAddresses:  p.ContractAddresses,
		Lessor:             p.Lessor,
		Tenant:             p.Tenant,
		NFTIDs:             p.NFTIDs,
		Text:               p.Text,
		MinDistanceToPlaza: p.MinDistanceToPlaza,
		MaxDistanceToPlaza: p.MaxDistanceToPlaza,
		MinEstateSize:      p.MinEstateSize,
		MaxEstateSize:      p.MaxEstateSize,
		AdjacentToRoad:     p.AdjacentToRoad,
		RentalDays:         p.RentalDays,
		MinPricePerDay:     p.MinPricePerDay,
		MaxPricePerDay:     p.MaxPricePerDay,
	}

	for _, status := range p.Status {
		filter.Status = append(filter.Status, domain.RentalStatus(status))
	}
	if p.UpdatedAfter != nil {
		filter.UpdatedAfter = types.Ptr(domain.FromMilliseconds(*p.UpdatedAfter))
	}
	if p.Network != nil {
		filter.Network = types.Ptr(domain.Network(*p.Network))
	}
	if p.Category != nil {
		filter.Category = types.Ptr(domain.NFTCategory(*p.Category))
	}

	return domain.RentalsListingsQuery{
		FilterBy:      filter,
		SortBy:        domain.SortBy(p.SortBy),
		SortDirection: domain.SortDirection(p.SortDirection),
		Page:          p.Page,
		Limit:         p.Limit,
		History:       p.History,
	}
}

// ParseListRentalsListingsPricesQuery parses query parameters for GET /v1/rental-listings/prices
func ParseListRentalsListingsPricesQuery(c *gin.Context) (*ListRentalsListingsPricesQueryParams, error) {
	var params ListRentalsListingsPricesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// ToDomain converts the parameters into a prices read
func (p *ListRentalsListingsPricesQueryParams) ToDomain() domain.RentalsListingsPricesFilterBy {
	filter := domain.RentalsListingsPricesFilterBy{
		RentalDays:         p.RentalDays,
		AdjacentToRoad:     p.AdjacentToRoad,
		MinDistanceToPlaza: p.MinDistanceToPlaza,
		MaxDistanceToPlaza: p.MaxDistanceToPlaza,
		MinEstateSize:      p.MinEstateSize,
		MaxEstateSize:      p.MaxEstateSize,
	}
	if p.Network != nil {
		filter.Network = types.Ptr(domain.Network(*p.Network))
	}
	if p.Category != nil {
		filter.Category = types.Ptr(domain.NFTCategory(*p.Category))
	}
	return filter
}
