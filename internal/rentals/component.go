package rentals

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-land-rentals/internal/adapter"
	"github.com/feral-file/ff-land-rentals/internal/domain"
	"github.com/feral-file/ff-land-rentals/internal/signature"
	"github.com/feral-file/ff-land-rentals/internal/store"
	"github.com/feral-file/ff-land-rentals/internal/subgraph"
)

// Component manages rental listings: creation, reads and reconciliation with the subgraphs
//
//go:generate mockgen -source=component.go -destination=../mocks/rentals_component.go -package=mocks -mock_names=Component=MockRentalsComponent
type Component interface {
	// CreateRentalListing validates a signed listing and stores it as open
	CreateRentalListing(ctx context.Context, listing domain.RentalListingCreation, lessor string) (*domain.RentalListing, error)
	// GetRentalsListings returns a page of listings
	GetRentalsListings(ctx context.Context, query domain.RentalsListingsQuery) (*domain.PaginatedRentalListings, error)
	// GetRentalsListingsPrices returns the number of open periods per price, cheapest first
	GetRentalsListingsPrices(ctx context.Context, filter domain.RentalsListingsPricesFilterBy) ([]domain.PriceCount, error)
	// RefreshRentalListing reconciles a single listing with the subgraphs right away
	RefreshRentalListing(ctx context.Context, id string) (*domain.RentalListing, error)

	// UpdateMetadata synchronizes asset metadata. Errors are logged, never returned.
	UpdateMetadata(ctx context.Context)
	// UpdateRentalsListings synchronizes executed rentals and cancels expired listings. Errors are logged, never returned.
	UpdateRentalsListings(ctx context.Context)
	// CancelRentalsListings cancels listings invalidated by nonce bumps. Errors are logged, never returned.
	CancelRentalsListings(ctx context.Context)
}

// Config holds the chain the component reconciles against
type Config struct {
	ChainID domain.ChainID
	Network domain.Network
}

type component struct {
	config      Config
	store       store.Store
	verifier    signature.Verifier
	rentals     subgraph.Rentals
	marketplace subgraph.Marketplace
	contracts   *domain.ContractRegistry
	clock       adapter.Clock
}

// NewComponent creates a new rentals component
func NewComponent(
	config Config,
	st store.Store,
	verifier signature.Verifier,
	rentals subgraph.Rentals,
	marketplace subgraph.Marketplace,
	contracts *domain.ContractRegistry,
	clock adapter.Clock,
) Component {
	if config.Network == "" {
		config.Network = domain.NetworkEthereum
	}
	return &component{
		config:      config,
		store:       st,
		verifier:    verifier,
		rentals:     rentals,
		marketplace: marketplace,
		contracts:   contracts,
		clock:       clock,
	}
}

// GetRentalsListings returns a page of listings. Store errors are returned unchanged.
func (c *component) GetRentalsListings(ctx context.Context, query domain.RentalsListingsQuery) (*domain.PaginatedRentalListings, error) {
	limit := query.NormalizedLimit()
	page := query.Page
	if page < 0 {
		page = 0
	}

	results, total, err := c.store.GetRentalListings(ctx, query)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedRentalListings{
		Results: results,
		Total:   total,
		Page:    page,
		Pages:   int((total + uint64(limit) - 1) / uint64(limit)), //nolint:gosec,G115
		Limit:   limit,
	}, nil
}

// GetRentalsListingsPrices returns the price histogram sorted by numeric price
func (c *component) GetRentalsListingsPrices(ctx context.Context, filter domain.RentalsListingsPricesFilterBy) ([]domain.PriceCount, error) {
	prices, err := c.store.GetRentalListingsPrices(ctx, filter)
	if err != nil {
		return nil, err
	}

	parsed := make([]decimal.Decimal, len(prices))
	for i, p := range prices {
		d, err := decimal.NewFromString(p.PricePerDay)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", p.PricePerDay, err)
		}
		parsed[i] = d
	}

	order := make([]int, len(prices))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return parsed[order[a]].LessThan(parsed[order[b]])
	})

	sorted := make([]domain.PriceCount, len(prices))
	for i, idx := range order {
		sorted[i] = prices[idx]
	}
	return sorted, nil
}

// rentalsContract returns the rentals contract of the reconciled chain
func (c *component) rentalsContract() (string, error) {
	return c.contracts.Address(domain.ContractNameRentals, c.config.ChainID)
}

func metadataInput(nft subgraph.NFT) store.MetadataInput {
	return store.MetadataInput{
		ID:              nft.ID,
		Category:        nft.Category,
		SearchText:      nft.SearchText,
		DistanceToPlaza: nft.DistanceToPlaza,
		AdjacentToRoad:  nft.AdjacentToRoad,
		EstateSize:      nft.EstateSize,
		CreatedAt:       nft.CreatedAt,
		UpdatedAt:       nft.UpdatedAt,
	}
}

// resolveOwner returns the address entitled to list the asset.
// Assets in custody of the rentals contract belong to the lessor of the custody record.
func resolveOwner(nft subgraph.NFT, rentalsContract string, assets map[string]subgraph.RentalAsset) (string, bool) {
	if !domain.EqualAddress(nft.Owner, rentalsContract) {
		return nft.Owner, true
	}
	asset, ok := assets[nft.ID]
	if !ok {
		return "", false
	}
	return asset.Lessor, true
}
