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
	nftByContractAndTokenQuery = MustParseOperation(`query NFTByTokenId($contractAddress: String!, $tokenId: BigInt!) {
  nfts(first: 1, where: { contractAddress: $contractAddress, tokenId: $tokenId }) {
    ` + nftFields + `
  }
}`)

	nftsUpdatedAfterQuery = MustParseOperation(`query NFTsUpdatedAfter($updatedAfter: BigInt!, $categories: [Category!]!, $first: Int!, $lastId: ID!) {
  nfts(
    first: $first
    orderBy: id
    orderDirection: asc
    where: { id_gt: $lastId, updatedAt_gt: $updatedAfter, category_in: $categories }
  ) {
    ` + nftFields + `
  }
}`)
)

const nftFields = `id
    category
    contractAddress
    tokenId
    owner {
      address
    }
    searchText
    searchIsLand
    searchDistanceToPlaza
    searchAdjacentToRoad
    searchEstateSize
    createdAt
    updatedAt`

// NFT is a land asset as reported by the marketplace subgraph
type NFT struct {
	ID              string
	Category        domain.NFTCategory
	ContractAddress string
	TokenID         string
	Owner           string
	SearchText      string
	IsLand          bool
	DistanceToPlaza int
	AdjacentToRoad  bool
	EstateSize      int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsDissolvedEstate reports whether the NFT is an estate without parcels
func (n NFT) IsDissolvedEstate() bool {
	return n.Category == domain.NFTCategoryEstate && n.EstateSize == 0
}

type nftEntity struct {
	ID              string `json:"id"`
	Category        string `json:"category"`
	ContractAddress string `json:"contractAddress"`
	TokenID         string `json:"tokenId"`
	Owner           *struct {
		Address string `json:"address"`
	} `json:"owner"`
	SearchText            string `json:"searchText"`
	SearchIsLand          bool   `json:"searchIsLand"`
	SearchDistanceToPlaza *int   `json:"searchDistanceToPlaza"`
	SearchAdjacentToRoad  *bool  `json:"searchAdjacentToRoad"`
	SearchEstateSize      *int   `json:"searchEstateSize"`
	CreatedAt             string `json:"createdAt"`
	UpdatedAt             string `json:"updatedAt"`
}

func (e nftEntity) toNFT() (NFT, error) {
	createdAt, err := domain.FromSecondsString(e.CreatedAt)
	if err != nil {
		return NFT{}, fmt.Errorf("nft %s createdAt: %w", e.ID, err)
	}
	updatedAt, err := domain.FromSecondsString(e.UpdatedAt)
	if err != nil {
		return NFT{}, fmt.Errorf("nft %s updatedAt: %w", e.ID, err)
	}

	nft := NFT{
		ID:              domain.NFTID(e.ContractAddress, e.TokenID),
		Category:        domain.NFTCategory(e.Category),
		ContractAddress: strings.ToLower(e.ContractAddress),
		TokenID:         e.TokenID,
		SearchText:      e.SearchText,
		IsLand:          e.SearchIsLand,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
	if e.Owner != nil {
		nft.Owner = strings.ToLower(e.Owner.Address)
	}
	if e.SearchDistanceToPlaza != nil {
		nft.DistanceToPlaza = *e.SearchDistanceToPlaza
	}
	if e.SearchAdjacentToRoad != nil {
		nft.AdjacentToRoad = *e.SearchAdjacentToRoad
	}
	if e.SearchEstateSize != nil {
		nft.EstateSize = *e.SearchEstateSize
	}
	return nft, nil
}

type nftsResponse struct {
	NFTs []nftEntity `json:"nfts"`
}

func (r nftsResponse) lastID() string {
	if len(r.NFTs) == 0 {
		return ""
	}
	return r.NFTs[len(r.NFTs)-1].ID
}

func (r nftsResponse) toNFTs() ([]NFT, error) {
	nfts := make([]NFT, 0, len(r.NFTs))
	for _, entity := range r.NFTs {
		nft, err := entity.toNFT()
		if err != nil {
			return nil, err
		}
		nfts = append(nfts, nft)
	}
	return nfts, nil
}

// Marketplace queries the marketplace subgraph for land assets
//
//go:generate mockgen -source=marketplace.go -destination=../mocks/marketplace_subgraph.go -package=mocks -mock_names=Marketplace=MockMarketplaceSubgraph
type Marketplace interface {
	// GetNFT returns the asset or nil if the subgraph does not know it
	GetNFT(ctx context.Context, contractAddress, tokenID string) (*NFT, error)

	// GetNFTsUpdatedAfter returns every land asset updated strictly after the given time, oldest first
	GetNFTsUpdatedAfter(ctx context.Context, updatedAfter time.Time) ([]NFT, error)
}

type marketplace struct {
	client Client
}

// NewMarketplace creates a marketplace subgraph reader
func NewMarketplace(client Client) Marketplace {
	return &marketplace{client: client}
}

func (m *marketplace) GetNFT(ctx context.Context, contractAddress, tokenID string) (*NFT, error) {
	var resp nftsResponse
	err := m.client.Query(ctx, nftByContractAndTokenQuery, map[string]interface{}{
		"contractAddress": strings.ToLower(contractAddress),
		"tokenId":         tokenID,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to query nft: %w", err)
	}

	nfts, err := resp.toNFTs()
	if err != nil {
		return nil, err
	}
	if len(nfts) == 0 {
		return nil, nil
	}
	return &nfts[0], nil
}

func (m *marketplace) GetNFTsUpdatedAfter(ctx context.Context, updatedAfter time.Time) ([]NFT, error) {
	nfts, err := paginate(ctx, func(ctx context.Context, first int, lastID string) ([]NFT, string, error) {
		var resp nftsResponse
		err := m.client.Query(ctx, nftsUpdatedAfterQuery, map[string]interface{}{
			"updatedAfter": strconv.FormatInt(updatedAfter.Unix(), 10),
			"categories":   []string{string(domain.NFTCategoryParcel), string(domain.NFTCategoryEstate)},
			"first":        first,
			"lastId":       lastID,
		}, &resp)
		if err != nil {
			return nil, "", fmt.Errorf("failed to query updated nfts: %w", err)
		}
		page, err := resp.toNFTs()
		if err != nil {
			return nil, "", err
		}
		return page, resp.lastID(), nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(nfts, func(i, j int) bool {
		return nfts[i].UpdatedAt.Before(nfts[j].UpdatedAt)
	})
	return nfts, nil
}
