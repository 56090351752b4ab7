package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-land-rentals/internal/types"
)

// Period is a pricing tier of a listing
type Period struct {
	MinDays     int    `json:"minDays"`
	MaxDays     int    `json:"maxDays"`
	PricePerDay string `json:"pricePerDay"`
}

// Validate checks the tier bounds and that the price is a non-negative integer amount
func (p Period) Validate() error {
	if p.MinDays < 1 {
		return fmt.Errorf("minDays must be at least 1, got %d", p.MinDays)
	}
	if p.MaxDays < p.MinDays {
		return fmt.Errorf("maxDays (%d) must be greater than or equal to minDays (%d)", p.MaxDays, p.MinDays)
	}
	return ValidatePricePerDay(p.PricePerDay)
}

// ValidatePricePerDay checks that price is a non-negative integer in wei
func ValidatePricePerDay(price string) error {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return fmt.Errorf("invalid pricePerDay %q: %w", price, err)
	}
	if d.IsNegative() {
		return fmt.Errorf("pricePerDay must not be negative, got %s", price)
	}
	if !d.Equal(d.Truncate(0)) {
		return fmt.Errorf("pricePerDay must be an integer amount, got %s", price)
	}
	return nil
}

// RentalListingCreation is a signed listing submitted by a lessor
type RentalListingCreation struct {
	Network         Network
	ChainID         ChainID
	Expiration      int64 // milliseconds
	Signature       string
	TokenID         string
	ContractAddress string
	Nonces          []string
	Periods         []Period
	Target          string
}

// Validate performs structural checks on the listing
func (l RentalListingCreation) Validate() error {
	if !IsValidNetwork(l.Network) {
		return fmt.Errorf("unsupported network %q", l.Network)
	}
	if len(l.Nonces) != NONCES_LENGTH {
		return fmt.Errorf("nonces must have %d elements, got %d", NONCES_LENGTH, len(l.Nonces))
	}
	for _, nonce := range l.Nonces {
		if !types.IsNumeric(nonce) {
			return fmt.Errorf("invalid nonce %q", nonce)
		}
	}
	if len(l.Periods) < MIN_PERIODS || len(l.Periods) > MAX_PERIODS {
		return fmt.Errorf("periods must have between %d and %d elements, got %d", MIN_PERIODS, MAX_PERIODS, len(l.Periods))
	}
	for i, period := range l.Periods {
		if err := period.Validate(); err != nil {
			return fmt.Errorf("period %d: %w", i, err)
		}
	}
	if l.TokenID == "" || l.ContractAddress == "" || l.Signature == "" {
		return errors.New("tokenId, contractAddress and signature are required")
	}
	if !types.IsNumeric(l.TokenID) {
		return fmt.Errorf("invalid tokenId %q", l.TokenID)
	}
	if !types.IsEthereumAddress(l.ContractAddress) {
		return fmt.Errorf("invalid contractAddress %q", l.ContractAddress)
	}
	if l.Target != "" && !types.IsEthereumAddress(l.Target) {
		return fmt.Errorf("invalid target %q", l.Target)
	}
	return nil
}

// TargetOrZero returns the target address, or the zero address when the listing is public
func (l RentalListingCreation) TargetOrZero() string {
	if l.Target == "" {
		return ETHEREUM_ZERO_ADDRESS
	}
	return l.Target
}

// RentalListing is a stored listing joined with its asset metadata, parties and tiers
type RentalListing struct {
	ID                    string
	Category              NFTCategory
	SearchText            string
	Network               Network
	ChainID               ChainID
	Expiration            time.Time
	Signature             string
	Nonces                []string
	TokenID               string
	ContractAddress       string
	RentalContractAddress string
	Lessor                string
	Tenant                *string
	Status                RentalStatus
	CreatedAt             time.Time
	UpdatedAt             time.Time
	StartedAt             *time.Time
	RentedDays            *int
	PeriodChosen          *int64
	Target                string
	Periods               []Period
}

// RentalsListingsFilterBy holds the optional predicates of a listings read.
// Nil or empty fields are not applied.
type RentalsListingsFilterBy struct {
	Status             []RentalStatus
	Target             *string
	UpdatedAfter       *time.Time
	TokenID            *string
	ContractAddresses  []string
	Network            *Network
	Lessor             *string
	Tenant             *string
	NFTIDs             []string
	Category           *NFTCategory
	Text               *string
	MinDistanceToPlaza *int
	MaxDistanceToPlaza *int
	MinEstateSize      *int
	MaxEstateSize      *int
	AdjacentToRoad     *bool
	RentalDays         []int
	MinPricePerDay     *string
	MaxPricePerDay     *string
}

// RentalsListingsPricesFilterBy holds the predicates of the price aggregate read
type RentalsListingsPricesFilterBy struct {
	Category           *NFTCategory
	Network            *Network
	RentalDays         []int
	AdjacentToRoad     *bool
	MinDistanceToPlaza *int
	MaxDistanceToPlaza *int
	MinEstateSize      *int
	MaxEstateSize      *int
}

// RentalsListingsQuery is a full listings read request
type RentalsListingsQuery struct {
	FilterBy      RentalsListingsFilterBy
	SortBy        SortBy
	SortDirection SortDirection
	Page          int
	Limit         int
	History       bool
}

// NormalizedLimit applies the default and the hard cap to the requested page size
func (q RentalsListingsQuery) NormalizedLimit() int {
	if q.Limit <= 0 || q.Limit > MAX_PAGE_SIZE {
		return MAX_PAGE_SIZE
	}
	return q.Limit
}

// Offset returns the row offset of the requested page
func (q RentalsListingsQuery) Offset() int {
	page := q.Page
	if page < 0 {
		page = 0
	}
	return page * q.NormalizedLimit()
}

// PaginatedRentalListings is a page of listings with the total match count
type PaginatedRentalListings struct {
	Results []RentalListing
	Total   uint64
	Page    int
	Pages   int
	Limit   int
}

// PriceCount is the number of open tiers offered at a given price per day
type PriceCount struct {
	PricePerDay string
	Count       uint64
}
