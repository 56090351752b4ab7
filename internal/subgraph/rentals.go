package subgraph

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/feral-file/ff-land-rentals/internal/domain"
)

var (
	activeRentalQuery = MustParseOperation(`query ActiveRental($contractAddress: String!, $tokenId: BigInt!) {
  rentals(
    first: 1
    orderBy: startedAt
    orderDirection: desc
    where: { contractAddress: $contractAddress, tokenId: $tokenId, isActive: true }
  ) {
    ` + rentalFields + `
  }
}`)

	rentalBySignatureQuery = MustParseOperation(`query RentalBySignature($signature: String!) {
  rentals(first: 1, where: { signature: $signature }) {
    ` + rentalFields + `
  }
}`)

	rentalsUpdatedAfterQuery = MustParseOperation(`query RentalsUpdatedAfter($updatedAfter: BigInt!, $first: Int!, $lastId: ID!) {
  rentals(
    first: $first
    orderBy: id
    orderDirection: asc
    where: { id_gt: $lastId, updatedAt_gt: $updatedAfter }
  ) {
    ` + rentalFields + `
  }
}`)

	rentalAssetsQuery = MustParseOperation(`query RentalAssets($ids: [ID!]!, $first: Int!, $lastId: ID!) {
  rentalAssets(first: $first, orderBy: id, orderDirection: asc, where: { id_gt: $lastId, id_in: $ids }) {
    id
    contractAddress
    tokenId
    lessor
    isClaimed
  }
}`)

	indexUpdatesQuery = MustParseOperation(`query IndexesUpdates($updatedAfter: BigInt!, $first: Int!, $lastId: ID!) {
  indexesUpdateHistories(
    first: $first
    orderBy: id
    orderDirection: asc
    where: { id_gt: $lastId, date_gt: $updatedAfter }
  ) {
    id
    type
    date
    sender
    contractUpdate {
      newIndex
    }
    signerUpdate {
      signer
      newIndex
    }
    assetUpdate {
      contractAddress
      tokenId
      newIndex
      type
    }
  }
}`)
)

const rentalFields = `id
    contractAddress
    tokenId
    lessor
    tenant
    rentalDays
    startedAt
    endsAt
    updatedAt
    pricePerDay
    ownerHasClaimedAsset
    isActive
    signature`

// Rental is an executed on-chain rental as reported by the rentals subgraph
type Rental struct {
	ID                   string
	ContractAddress      string
	TokenID              string
	Lessor               string
	Tenant               string
	RentalDays           int
	StartedAt            time.Time
	EndsAt               time.Time
	UpdatedAt            time.Time
	PricePerDay          string
	OwnerHasClaimedAsset bool
	IsActive             bool
	Signature            string
}

// Status is the local status this on-chain rental maps to
func (r Rental) Status() domain.RentalStatus {
	if r.OwnerHasClaimedAsset {
		return domain.RentalStatusClaimed
	}
	return domain.RentalStatusExecuted
}

// IsOngoing reports whether the rental still blocks a new listing at the given time
func (r Rental) IsOngoing(now time.Time) bool {
	return r.IsActive && !r.OwnerHasClaimedAsset && r.EndsAt.After(now)
}

type rentalEntity struct {
	ID                   string `json:"id"`
	ContractAddress      string `json:"contractAddress"`
	TokenID              string `json:"tokenId"`
	Lessor               string `json:"lessor"`
	Tenant               string `json:"tenant"`
	RentalDays           string `json:"rentalDays"`
	StartedAt            string `json:"startedAt"`
	EndsAt               string `json:"endsAt"`
	UpdatedAt            string `json:"updatedAt"`
	PricePerDay          string `json:"pricePerDay"`
	OwnerHasClaimedAsset bool   `json:"ownerHasClaimedAsset"`
	IsActive             bool   `json:"isActive"`
	Signature            string `json:"signature"`
}

func (e rentalEntity) toRental() (Rental, error) {
	rentalDays, err := strconv.Atoi(e.RentalDays)
	if err != nil {
		return Rental{}, fmt.Errorf("rental %s rentalDays: %w", e.ID, err)
	}
	startedAt, err := domain.FromSecondsString(e.StartedAt)
	if err != nil {
		return Rental{}, fmt.Errorf("rental %s startedAt: %w", e.ID, err)
	}
	endsAt, err := domain.FromSecondsString(e.EndsAt)
	if err != nil {
		return Rental{}, fmt.Errorf("rental %s endsAt: %w", e.ID, err)
	}
	updatedAt, err := domain.FromSecondsString(e.UpdatedAt)
	if err != nil {
		return Rental{}, fmt.Errorf("rental %s updatedAt: %w", e.ID, err)
	}

	return Rental{
		ID:                   e.ID,
		ContractAddress:      strings.ToLower(e.ContractAddress),
		TokenID:              e.TokenID,
		Lessor:               strings.ToLower(e.Lessor),
		Tenant:               strings.ToLower(e.Tenant),
		RentalDays:           rentalDays,
		StartedAt:            startedAt,
		EndsAt:               endsAt,
		UpdatedAt:            updatedAt,
		PricePerDay:          e.PricePerDay,
		OwnerHasClaimedAsset: e.OwnerHasClaimedAsset,
		IsActive:             e.IsActive,
		Signature:            strings.ToLower(e.Signature),
	}, nil
}

type rentalsResponse struct {
	Rentals []rentalEntity `json:"rentals"`
}

func (r rentalsResponse) toRentals() ([]Rental, error) {
	rentals := make([]Rental, 0, len(r.Rentals))
	for _, entity := range r.Rentals {
		rental, err := entity.toRental()
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, rental)
	}
	return rentals, nil
}

// RentalAsset is an asset held in custody by the rentals contract
type RentalAsset struct {
	ID              string
	ContractAddress string
	TokenID         string
	Lessor          string
	IsClaimed       bool
}

type rentalAssetsResponse struct {
	RentalAssets []struct {
		ID              string `json:"id"`
		ContractAddress string `json:"contractAddress"`
		TokenID         string `json:"tokenId"`
		Lessor          string `json:"lessor"`
		IsClaimed       bool   `json:"isClaimed"`
	} `json:"rentalAssets"`
}

type indexUpdateEntity struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Date           string `json:"date"`
	Sender         string `json:"sender"`
	ContractUpdate *struct {
		NewIndex string `json:"newIndex"`
	} `json:"contractUpdate"`
	SignerUpdate *struct {
		Signer   string `json:"signer"`
		NewIndex string `json:"newIndex"`
	} `json:"signerUpdate"`
	AssetUpdate *struct {
		ContractAddress string `json:"contractAddress"`
		TokenID         string `json:"tokenId"`
		NewIndex        string `json:"newIndex"`
		Type            string `json:"type"`
	} `json:"assetUpdate"`
}

// toIndexUpdate converts a history entry into its variant. Unknown kinds are an error.
func (e indexUpdateEntity) toIndexUpdate() (domain.IndexUpdate, error) {
	date, err := domain.FromSecondsString(e.Date)
	if err != nil {
		return nil, fmt.Errorf("index update %s date: %w", e.ID, err)
	}

	switch e.Type {
	case "CONTRACT":
		if e.ContractUpdate == nil {
			return nil, fmt.Errorf("index update %s has no contract update", e.ID)
		}
		return domain.ContractIndexUpdate{
			NewIndex: e.ContractUpdate.NewIndex,
			Date:     date,
		}, nil
	case "SIGNER":
		if e.SignerUpdate == nil {
			return nil, fmt.Errorf("index update %s has no signer update", e.ID)
		}
		return domain.SignerIndexUpdate{
			Signer:   strings.ToLower(e.SignerUpdate.Signer),
			NewIndex: e.SignerUpdate.NewIndex,
			Date:     date,
		}, nil
	case "ASSET":
		if e.AssetUpdate == nil {
			return nil, fmt.Errorf("index update %s has no asset update", e.ID)
		}
		action := domain.AssetIndexAction(e.AssetUpdate.Type)
		if action != domain.AssetIndexActionRent && action != domain.AssetIndexActionCancel {
			return nil, fmt.Errorf("index update %s has unknown asset update type %q", e.ID, e.AssetUpdate.Type)
		}
		return domain.AssetIndexUpdate{
			Signer:          strings.ToLower(e.Sender),
			ContractAddress: strings.ToLower(e.AssetUpdate.ContractAddress),
			TokenID:         e.AssetUpdate.TokenID,
			NewIndex:        e.AssetUpdate.NewIndex,
			Action:          action,
			Date:            date,
		}, nil
	default:
		return nil, fmt.Errorf("index update %s has unknown type %q", e.ID, e.Type)
	}
}

// Rentals queries the rentals subgraph
//
//go:generate mockgen -source=rentals.go -destination=../mocks/rentals_subgraph.go -package=mocks -mock_names=Rentals=MockRentalsSubgraph
type Rentals interface {
	// GetActiveRental returns the latest active rental of the asset or nil
	GetActiveRental(ctx context.Context, contractAddress, tokenID string) (*Rental, error)

	// GetRentalBySignature returns the on-chain rental executed with the listing signature or nil
	GetRentalBySignature(ctx context.Context, signature string) (*Rental, error)

	// GetRentalsUpdatedAfter returns every rental updated strictly after the given time, oldest first
	GetRentalsUpdatedAfter(ctx context.Context, updatedAfter time.Time) ([]Rental, error)

	// GetRentalAssets returns the custody records of the given assets keyed by asset id
	GetRentalAssets(ctx context.Context, ids []string) (map[string]RentalAsset, error)

	// GetIndexUpdatesAfter returns every nonce bump recorded strictly after the given time, oldest first
	GetIndexUpdatesAfter(ctx context.Context, updatedAfter time.Time) ([]domain.IndexUpdate, error)
}

type rentals struct {
	client Client
}

// NewRentals creates a rentals subgraph reader
func NewRentals(client Client) Rentals {
	return &rentals{client: client}
}

func (r *rentals) GetActiveRental(ctx context.Context, contractAddress, tokenID string) (*Rental, error) {
	return r.getOne(ctx, activeRentalQuery, map[string]interface{}{
		"contractAddress": strings.ToLower(contractAddress),
		"tokenId":         tokenID,
	})
}

func (r *rentals) GetRentalBySignature(ctx context.Context, signature string) (*Rental, error) {
	return r.getOne(ctx, rentalBySignatureQuery, map[string]interface{}{
		"signature": strings.ToLower(signature),
	})
}

func (r *rentals) getOne(ctx context.Context, op Operation, variables map[string]interface{}) (*Rental, error) {
	var resp rentalsResponse
	if err := r.client.Query(ctx, op, variables, &resp); err != nil {
		return nil, fmt.Errorf("failed to query rental: %w", err)
	}
	rentals, err := resp.toRentals()
	if err != nil {
		return nil, err
	}
	if len(rentals) == 0 {
		return nil, nil
	}
	return &rentals[0], nil
}

func (r *rentals) GetRentalsUpdatedAfter(ctx context.Context, updatedAfter time.Time) ([]Rental, error) {
	rentals, err := paginate(ctx, func(ctx context.Context, first int, lastID string) ([]Rental, string, error) {
		var resp rentalsResponse
		err := r.client.Query(ctx, rentalsUpdatedAfterQuery, map[string]interface{}{
			"updatedAfter": strconv.FormatInt(updatedAfter.Unix(), 10),
			"first":        first,
			"lastId":       lastID,
		}, &resp)
		if err != nil {
			return nil, "", fmt.Errorf("failed to query updated rentals: %w", err)
		}
		page, err := resp.toRentals()
		if err != nil {
			return nil, "", err
		}
		if len(page) == 0 {
			return page, "", nil
		}
		return page, page[len(page)-1].ID, nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rentals, func(i, j int) bool {
		return rentals[i].UpdatedAt.Before(rentals[j].UpdatedAt)
	})
	return rentals, nil
}

func (r *rentals) GetRentalAssets(ctx context.Context, ids []string) (map[string]RentalAsset, error) {
	assets := make(map[string]RentalAsset, len(ids))
	if len(ids) == 0 {
		return assets, nil
	}

	lowered := make([]string, len(ids))
	for i, id := range ids {
		lowered[i] = strings.ToLower(id)
	}

	results, err := paginate(ctx, func(ctx context.Context, first int, lastID string) ([]RentalAsset, string, error) {
		var resp rentalAssetsResponse
		err := r.client.Query(ctx, rentalAssetsQuery, map[string]interface{}{
			"ids":    lowered,
			"first":  first,
			"lastId": lastID,
		}, &resp)
		if err != nil {
			return nil, "", fmt.Errorf("failed to query rental assets: %w", err)
		}
		page := make([]RentalAsset, 0, len(resp.RentalAssets))
		for _, a := range resp.RentalAssets {
			page = append(page, RentalAsset{
				ID:              strings.ToLower(a.ID),
				ContractAddress: strings.ToLower(a.ContractAddress),
				TokenID:         a.TokenID,
				Lessor:          strings.ToLower(a.Lessor),
				IsClaimed:       a.IsClaimed,
			})
		}
		if len(resp.RentalAssets) == 0 {
			return page, "", nil
		}
		return page, resp.RentalAssets[len(resp.RentalAssets)-1].ID, nil
	})
	if err != nil {
		return nil, err
	}

	for _, asset := range results {
		assets[asset.ID] = asset
	}
	return assets, nil
}

func (r *rentals) GetIndexUpdatesAfter(ctx context.Context, updatedAfter time.Time) ([]domain.IndexUpdate, error) {
	updates, err := paginate(ctx, func(ctx context.Context, first int, lastID string) ([]domain.IndexUpdate, string, error) {
		var resp struct {
			IndexesUpdateHistories []indexUpdateEntity `json:"indexesUpdateHistories"`
		}
		err := r.client.Query(ctx, indexUpdatesQuery, map[string]interface{}{
			"updatedAfter": strconv.FormatInt(updatedAfter.Unix(), 10),
			"first":        first,
			"lastId":       lastID,
		}, &resp)
		if err != nil {
			return nil, "", fmt.Errorf("failed to query index updates: %w", err)
		}

		page := make([]domain.IndexUpdate, 0, len(resp.IndexesUpdateHistories))
		for _, entity := range resp.IndexesUpdateHistories {
			update, err := entity.toIndexUpdate()
			if err != nil {
				return nil, "", err
			}
			page = append(page, update)
		}
		if len(page) == 0 {
			return page, "", nil
		}
		return page, resp.IndexesUpdateHistories[len(resp.IndexesUpdateHistories)-1].ID, nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(updates, func(i, j int) bool {
		return updates[i].UpdatedAt().Before(updates[j].UpdatedAt())
	})
	return updates, nil
}
