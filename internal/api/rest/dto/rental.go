package dto

import (
	"github.com/feral-file/ff-land-rentals/internal/domain"
	"github.com/feral-file/ff-land-rentals/internal/types"
)

// PeriodRequest is a pricing tier of a listing submission
type PeriodRequest struct {
	MinDays     int    `json:"minDays" binding:"required,min=1"`
	MaxDays     int    `json:"maxDays" binding:"required,gtefield=MinDays"`
	PricePerDay string `json:"pricePerDay" binding:"required"`
}

// CreateRentalListingRequest is the body of POST /v1/rentals-listings
type CreateRentalListingRequest struct {
	Network         domain.Network  `json:"network" binding:"required,oneof=ETHEREUM MATIC"`
	ChainID         domain.ChainID  `json:"chainId" binding:"required"`
	Expiration      int64           `json:"expiration" binding:"required"`
	Signature       string          `json:"signature" binding:"required"`
	TokenID         string          `json:"tokenId" binding:"required"`
	ContractAddress string          `json:"contractAddress" binding:"required,eth_addr"`
	Nonces          []string        `json:"nonces" binding:"required,len=3,dive,required"`
	Periods         []PeriodRequest `json:"periods" binding:"required,min=1,max=100,dive"`
	Target          string          `json:"target" binding:"omitempty,eth_addr"`
}

// ToDomain converts the request into a listing submission
func (r CreateRentalListingRequest) ToDomain() domain.RentalListingCreation {
	periods := make([]domain.Period, len(r.Periods))
	for i, p := range r.Periods {
		periods[i] = domain.Period{
			MinDays:     p.MinDays,
			MaxDays:     p.MaxDays,
			PricePerDay: p.PricePerDay,
		}
	}

	return domain.RentalListingCreation{
		Network:         r.Network,
		ChainID:         r.ChainID,
		Expiration:      r.Expiration,
		Signature:       r.Signature,
		TokenID:         r.TokenID,
		ContractAddress: r.ContractAddress,
		Nonces:          r.Nonces,
		Periods:         periods,
		Target:          r.Target,
	}
}

// PeriodResponse is a pricing tier of a stored listing
type PeriodResponse struct {
	MinDays     int    `json:"minDays"`
	MaxDays     int    `json:"maxDays"`
	PricePerDay string `json:"pricePerDay"`
}

// RentalListingResponse is a stored listing. Timestamps are in milliseconds.
type RentalListingResponse struct {
	ID                    string              `json:"id"`
	NFTID                 string              `json:"nftId"`
	Category              domain.NFTCategory  `json:"category"`
	SearchText            string              `json:"searchText"`
	Network               domain.Network      `json:"network"`
	ChainID               domain.ChainID      `json:"chainId"`
	Expiration            int64               `json:"expiration"`
	Signature             string              `json:"signature"`
	Nonces                []string            `json:"nonces"`
	TokenID               string              `json:"tokenId"`
	ContractAddress       string              `json:"contractAddress"`
	RentalContractAddress string              `json:"rentalContractAddress"`
	Lessor                string              `json:"lessor"`
	Tenant                *string             `json:"tenant"`
	Status                domain.RentalStatus `json:"status"`
	CreatedAt             int64               `json:"createdAt"`
	UpdatedAt             int64               `json:"updatedAt"`
	StartedAt             *int64              `json:"startedAt"`
	RentedDays            *int                `json:"rentedDays"`
	PeriodChosen          *int64              `json:"periodChosen"`
	Target                string              `json:"target"`
	Periods               []PeriodResponse    `json:"periods"`
}

// PaginatedRentalListingsResponse is a page of listings
type PaginatedRentalListingsResponse struct {
	Results []RentalListingResponse `json:"results"`
	Total   uint64                  `json:"total"`
	Page    int                     `json:"page"`
	Pages   int                     `json:"pages"`
	Limit   int                     `json:"limit"`
}

// Envelope wraps every successful listings response
type Envelope struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data"`
}

// NewRentalListingResponse converts a stored listing into its response form
func NewRentalListingResponse(listing domain.RentalListing) RentalListingResponse {
	periods := make([]PeriodResponse, len(listing.Periods))
	for i, p := range listing.Periods {
		periods[i] = PeriodResponse{
			MinDays:     p.MinDays,
			MaxDays:     p.MaxDays,
			PricePerDay: p.PricePerDay,
		}
	}

	var startedAt *int64
	if listing.StartedAt != nil {
		startedAt = types.Ptr(domain.ToMilliseconds(*listing.StartedAt))
	}

	nonces := listing.Nonces
	if nonces == nil {
		nonces = []string{}
	}

	return RentalListingResponse{
		ID:                    listing.ID,
		NFTID:                 domain.NFTID(listing.ContractAddress, listing.TokenID),
		Category:              listing.Category,
		SearchText:            listing.SearchText,
		Network:               listing.Network,
		ChainID:               listing.ChainID,
		Expiration:            domain.ToMilliseconds(listing.Expiration),
		Signature:             listing.Signature,
		Nonces:                nonces,
		TokenID:               listing.TokenID,
		ContractAddress:       listing.ContractAddress,
		RentalContractAddress: listing.RentalContractAddress,
		Lessor:                listing.Lessor,
		Tenant:                listing.Tenant,
		Status:                listing.Status,
		CreatedAt:             domain.ToMilliseconds(listing.CreatedAt),
		UpdatedAt:             domain.ToMilliseconds(listing.UpdatedAt),
		StartedAt:             startedAt,
		RentedDays:            listing.RentedDays,
		PeriodChosen:          listing.PeriodChosen,
		Target:                listing.Target,
		Periods:               periods,
	}
}

// NewPaginatedRentalListingsResponse converts a page of listings into its response form
func NewPaginatedRentalListingsResponse(page domain.PaginatedRentalListings) PaginatedRentalListingsResponse {
	results := make([]RentalListingResponse, len(page.Results))
	for i, listing := range page.Results {
		results[i] = NewRentalListingResponse(listing)
	}

	return PaginatedRentalListingsResponse{
		Results: results,
		Total:   page.Total,
		Page:    page.Page,
		Pages:   page.Pages,
		Limit:   page.Limit,
	}
}

// NewPricesResponse renders the price histogram as a price to count object
func NewPricesResponse(prices []domain.PriceCount) map[string]uint64 {
	response := make(map[string]uint64, len(prices))
	for _, p := range prices {
		response[p.PricePerDay] = p.Count
	}
	return response
}
