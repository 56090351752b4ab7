package subgraph_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-land-rentals/internal/domain"
	"github.com/feral-file/ff-land-rentals/internal/subgraph"
)

const (
	landContract      = "0xf87e31492faf9a91b02ee0deaad50d51d56d5d4d"
	mixedLandContract = "0xF87E31492Faf9A91B02Ee0dEAAd50d51d56D5d4d"
)

func nftEntityJSON(tokenID string, category string, estateSize *int) map[string]interface{} {
	entity := map[string]interface{}{
		"id":                    category + "-" + mixedLandContract + "-" + tokenID,
		"category":              category,
		"contractAddress":       mixedLandContract,
		"tokenId":               tokenID,
		"owner":                 map[string]interface{}{"address": "0xABCDEF1111111111111111111111111111111111"},
		"searchText":            "Genesis Plaza",
		"searchIsLand":          true,
		"searchDistanceToPlaza": 3,
		"searchAdjacentToRoad":  true,
		"searchEstateSize":      nil,
		"createdAt":             "1600000000",
		"updatedAt":             "1700000000",
	}
	if estateSize != nil {
		entity["searchEstateSize"] = *estateSize
	}
	return entity
}

func nftsResponseJSON(t *testing.T, entities ...map[string]interface{}) string {
	if entities == nil {
		entities = []map[string]interface{}{}
	}
	raw, err := json.Marshal(map[string]interface{}{
		"data": map[string]interface{}{"nfts": entities},
	})
	require.NoError(t, err)
	return string(raw)
}

// ====================================================================================
// GetNFT Tests
// ====================================================================================

func TestGetNFT_ConvertsEntity(t *testing.T) {
	tc := setupTestClient(t)
	defer tearDownTestClient(tc)

	tc.expectQuery(t, nftsResponseJSON(t, nftEntityJSON("42", "parcel", nil)), func(req sentRequest) {
		assert.Equal(t, "NFTByTokenId", req.OperationName)
		assert.Equal(t, landContract, req.Variables["contractAddress"])
		assert.Equal(t, "42", req.Variables["tokenId"])
	})

	nft, err := subgraph.NewMarketplace(tc.client).GetNFT(context.Background(), mixedLandContract, "42")

	require.NoError(t, err)
	require.NotNil(t, nft)
	assert.Equal(t, subgraph.NFT{
		ID:              landContract + "-42",
		Category:        domain.NFTCategoryParcel,
		ContractAddress: landContract,
		TokenID:         "42",
		Owner:           "0xabcdef1111111111111111111111111111111111",
		SearchText:      "Genesis Plaza",
		IsLand:          true,
		DistanceToPlaza: 3,
		AdjacentToRoad:  true,
		EstateSize:      0,
		CreatedAt:       time.Unix(1600000000, 0).UTC(),
		UpdatedAt:       time.Unix(1700000000, 0).UTC(),
	}, *nft)
	assert.False(t, nft.IsDissolvedEstate())
}

func TestGetNFT_NotFound(t *testing.T) {
	tc := setupTestClient(t)
	defer tearDownTestClient(tc)

	tc.expectQuery(t, nftsResponseJSON(t), nil)

	nft, err := subgraph.NewMarketplace(tc.client).GetNFT(context.Background(), landContract, "42")

	require.NoError(t, err)
	assert.Nil(t, nft)
}

func TestGetNFT_BadTimestamp(t *testing.T) {
	tc := setupTestClient(t)
	defer tearDownTestClient(tc)

	entity := nftEntityJSON("42", "parcel", nil)
	entity["updatedAt"] = "yesterday"
	tc.expectQuery(t, nftsResponseJSON(t, entity), nil)

	_, err := subgraph.NewMarketplace(tc.client).GetNFT(context.Background(), landContract, "42")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "updatedAt")
}

func TestNFT_IsDissolvedEstate(t *testing.T) {
	tests := []struct {
		name     string
		nft      subgraph.NFT
		expected bool
	}{
		{
			name:     "estate without parcels",
			nft:      subgraph.NFT{Category: domain.NFTCategoryEstate, EstateSize: 0},
			expected: true,
		},
		{
			name:     "estate with parcels",
			nft:      subgraph.NFT{Category: domain.NFTCategoryEstate, EstateSize: 4},
			expected: false,
		},
		{
			name:     "parcel",
			nft:      subgraph.NFT{Category: domain.NFTCategoryParcel},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.nft.IsDissolvedEstate())
		})
	}
}

// ====================================================================================
// GetNFTsUpdatedAfter Tests
// ====================================================================================

func TestGetNFTsUpdatedAfter_Paginates(t *testing.T) {
	tc := setupTestClient(t)
	defer tearDownTestClient(tc)

	fullPage := make([]map[string]interface{}, domain.SUBGRAPH_PAGE)
	for i := range fullPage {
		fullPage[i] = nftEntityJSON(strconv.Itoa(i), "parcel", nil)
	}
	size := 5
	estate := nftEntityJSON("estate-1", "estate", &size)
	estate["updatedAt"] = "1690000001"
	lastPage := []map[string]interface{}{estate}

	updatedAfter := time.Unix(1690000000, 0)
	gomock.InOrder(
		tc.expectQuery(t, nftsResponseJSON(t, fullPage...), func(req sentRequest) {
			assert.Equal(t, "NFTsUpdatedAfter", req.OperationName)
			assert.Equal(t, "1690000000", req.Variables["updatedAfter"])
			assert.Equal(t, []interface{}{"parcel", "estate"}, req.Variables["categories"])
			assert.Equal(t, float64(domain.SUBGRAPH_PAGE), req.Variables["first"])
			assert.Equal(t, "", req.Variables["lastId"])
			assert.NotContains(t, req.Variables, "skip")
		}),
		tc.expectQuery(t, nftsResponseJSON(t, lastPage...), func(req sentRequest) {
			assert.Equal(t, fullPage[domain.SUBGRAPH_PAGE-1]["id"], req.Variables["lastId"])
		}),
	)

	nfts, err := subgraph.NewMarketplace(tc.client).GetNFTsUpdatedAfter(context.Background(), updatedAfter)

	require.NoError(t, err)
	require.Len(t, nfts, domain.SUBGRAPH_PAGE+1)

	// oldest first
	first := nfts[0]
	assert.Equal(t, domain.NFTCategoryEstate, first.Category)
	assert.Equal(t, 5, first.EstateSize)
	assert.Equal(t, fmt.Sprintf("%s-%s", landContract, "estate-1"), first.ID)
	assert.Equal(t, landContract+"-0", nfts[1].ID)
	assert.Equal(t, fmt.Sprintf("%s-%d", landContract, domain.SUBGRAPH_PAGE-1), nfts[len(nfts)-1].ID)
}
