package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-land-rentals/internal/domain"
)

const (
	testLandContract   = "0xf87e31492faf9a91b02ee0deaad50d51d56d5d4d"
	testRentalContract = "0x3a1469499d0be105d4f77045ca403a5f6dc2f3f5"
	testLessor         = "0x1111111111111111111111111111111111111111"
	testTenant         = "0x2222222222222222222222222222222222222222"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestMetadata(tokenID string, category domain.NFTCategory) MetadataInput {
	return MetadataInput{
		ID:              domain.NFTID(testLandContract, tokenID),
		Category:        category,
		SearchText:      "Parcel " + tokenID,
		DistanceToPlaza: 3,
		AdjacentToRoad:  true,
		CreatedAt:       baseTime.Add(-24 * time.Hour),
		UpdatedAt:       baseTime.Add(-24 * time.Hour),
	}
}

func buildTestRental(tokenID string, periods ...domain.Period) CreateRentalInput {
	if len(periods) == 0 {
		periods = []domain.Period{{MinDays: 1, MaxDays: 30, PricePerDay: "10000"}}
	}
	return CreateRentalInput{
		MetadataID:            domain.NFTID(testLandContract, tokenID),
		Network:               domain.NetworkEthereum,
		ChainID:               domain.ChainIDEthereumMainnet,
		Expiration:            baseTime.Add(30 * 24 * time.Hour),
		Signature:             "0xsig-" + tokenID,
		Nonces:                []string{"0", "0", "0"},
		TokenID:               tokenID,
		ContractAddress:       testLandContract,
		RentalContractAddress: testRentalContract,
		Status:                domain.RentalStatusOpen,
		Target:                domain.ETHEREUM_ZERO_ADDRESS,
		Lessor:                testLessor,
		Periods:               periods,
		CreatedAt:             baseTime,
	}
}

// createTestListing inserts the asset metadata and a rental for it inside a savepoint
func createTestListing(t *testing.T, store Store, metadata MetadataInput, rental CreateRentalInput) string {
	ctx := context.Background()
	var id string
	err := store.WithTx(ctx, func(tx Store) error {
		if err := tx.InsertMetadata(ctx, metadata); err != nil {
			return err
		}
		var err error
		id, err = tx.CreateRental(ctx, rental)
		return err
	})
	require.NoError(t, err)
	return id
}

// =============================================================================
// Tests
// =============================================================================

func testWatermark(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("defaults to unix epoch", func(t *testing.T) {
		watermark, err := store.GetWatermark(ctx, domain.UpdateTypeMetadata)
		require.NoError(t, err)
		assert.Equal(t, time.Unix(0, 0).UTC(), watermark)
	})

	t.Run("advances and never regresses", func(t *testing.T) {
		require.NoError(t, store.SetWatermark(ctx, domain.UpdateTypeRentals, baseTime))
		require.NoError(t, store.SetWatermark(ctx, domain.UpdateTypeRentals, baseTime.Add(-time.Hour)))

		watermark, err := store.GetWatermark(ctx, domain.UpdateTypeRentals)
		require.NoError(t, err)
		assert.True(t, watermark.Equal(baseTime))

		require.NoError(t, store.SetWatermark(ctx, domain.UpdateTypeRentals, baseTime.Add(time.Hour)))
		watermark, err = store.GetWatermark(ctx, domain.UpdateTypeRentals)
		require.NoError(t, err)
		assert.True(t, watermark.Equal(baseTime.Add(time.Hour)))
	})
}

func testMetadata(t *testing.T, store Store) {
	ctx := context.Background()
	input := buildTestMetadata("1", domain.NFTCategoryParcel)

	require.NoError(t, store.InsertMetadata(ctx, input))

	t.Run("insert is idempotent", func(t *testing.T) {
		changed := input
		changed.SearchText = "changed"
		require.NoError(t, store.InsertMetadata(ctx, changed))

		metadata, err := store.GetMetadataByID(ctx, input.ID)
		require.NoError(t, err)
		require.NotNil(t, metadata)
		assert.Equal(t, "Parcel 1", metadata.SearchText)
	})

	t.Run("update overwrites fields", func(t *testing.T) {
		changed := input
		changed.Category = domain.NFTCategoryEstate
		changed.EstateSize = 0
		changed.UpdatedAt = baseTime
		require.NoError(t, store.UpdateMetadata(ctx, changed))

		rows, err := store.GetMetadataByIDs(ctx, []string{input.ID, "missing"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, domain.NFTCategoryEstate, rows[input.ID].Category)
		assert.True(t, rows[input.ID].UpdatedAt.Equal(baseTime))
	})

	t.Run("missing returns nil", func(t *testing.T) {
		metadata, err := store.GetMetadataByID(ctx, "0xabc-9")
		require.NoError(t, err)
		assert.Nil(t, metadata)
	})
}

func testCreateRental(t *testing.T, store Store) {
	ctx := context.Background()
	rental := buildTestRental("1",
		domain.Period{MinDays: 1, MaxDays: 7, PricePerDay: "20000"},
		domain.Period{MinDays: 8, MaxDays: 30, PricePerDay: "10000"},
	)
	rental.Lessor = "0x1111111111111111111111111111111111111111"
	id := createTestListing(t, store, buildTestMetadata("1", domain.NFTCategoryParcel), rental)

	listing, err := store.GetRentalListingByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, listing)

	assert.Equal(t, domain.RentalStatusOpen, listing.Status)
	assert.Equal(t, testLessor, listing.Lessor)
	assert.Nil(t, listing.Tenant)
	assert.Equal(t, domain.NFTCategoryParcel, listing.Category)
	assert.Equal(t, []string{"0", "0", "0"}, listing.Nonces)
	assert.Equal(t, rental.Periods, listing.Periods)
	assert.True(t, listing.Expiration.Equal(rental.Expiration))

	bySignature, err := store.GetRentalBySignature(ctx, rental.Signature)
	require.NoError(t, err)
	require.NotNil(t, bySignature)
	assert.Equal(t, id, bySignature.ID)

	missing, err := store.GetRentalListingByID(ctx, "4b8f0d6e-3f1c-4a53-9a0e-8f2f4c1f3c2a")
	require.NoError(t, err)
	assert.Nil(t, missing)

	invalid, err := store.GetRentalListingByID(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.Nil(t, invalid)
}

func testOpenRentalUniqueness(t *testing.T, store Store) {
	ctx := context.Background()
	metadata := buildTestMetadata("1", domain.NFTCategoryParcel)
	first := createTestListing(t, store, metadata, buildTestRental("1"))

	second := buildTestRental("1")
	second.Signature = "0xsig-other"
	err := store.WithTx(ctx, func(tx Store) error {
		_, err := tx.CreateRental(ctx, second)
		return err
	})
	require.Error(t, err)
	assert.True(t, IsOpenRentalConflict(err))
	assert.False(t, IsOpenRentalConflict(errors.New("other")))

	n, err := store.CancelRentals(ctx, []string{first}, baseTime)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	createTestListing(t, store, metadata, second)
}

func testExecuteRental(t *testing.T, store Store) {
	ctx := context.Background()
	rental := buildTestRental("1",
		domain.Period{MinDays: 1, MaxDays: 7, PricePerDay: "20000"},
		domain.Period{MinDays: 8, MaxDays: 30, PricePerDay: "10000"},
	)
	id := createTestListing(t, store, buildTestMetadata("1", domain.NFTCategoryParcel), rental)

	startedAt := baseTime.Add(time.Hour)
	require.NoError(t, store.ExecuteRental(ctx, ExecuteRentalInput{
		RentalID:    id,
		Status:      domain.RentalStatusExecuted,
		Tenant:      "0x2222222222222222222222222222222222222222",
		StartedAt:   startedAt,
		UpdatedAt:   startedAt,
		RentedDays:  10,
		PricePerDay: "10000",
	}))

	listing, err := store.GetRentalListingByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.RentalStatusExecuted, listing.Status)
	require.NotNil(t, listing.Tenant)
	assert.Equal(t, testTenant, *listing.Tenant)
	require.NotNil(t, listing.RentedDays)
	assert.Equal(t, 10, *listing.RentedDays)
	assert.NotNil(t, listing.PeriodChosen)
	require.NotNil(t, listing.StartedAt)
	assert.True(t, listing.StartedAt.Equal(startedAt))

	t.Run("claimed is never moved back to executed", func(t *testing.T) {
		claimed := ExecuteRentalInput{
			RentalID: id, Status: domain.RentalStatusClaimed, Tenant: testTenant,
			StartedAt: startedAt, UpdatedAt: startedAt, RentedDays: 10, PricePerDay: "10000",
		}
		require.NoError(t, store.ExecuteRental(ctx, claimed))

		executed := claimed
		executed.Status = domain.RentalStatusExecuted
		executed.Tenant = "0x3333333333333333333333333333333333333333"
		executed.RentedDays = 3
		require.NoError(t, store.ExecuteRental(ctx, executed))

		listing, err := store.GetRentalListingByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusClaimed, listing.Status)
		require.NotNil(t, listing.Tenant)
		assert.Equal(t, testTenant, *listing.Tenant)
		require.NotNil(t, listing.RentedDays)
		assert.Equal(t, 10, *listing.RentedDays)
	})
}

func testCancellations(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("expired", func(t *testing.T) {
		expired := buildTestRental("1")
		expired.Expiration = baseTime.Add(-time.Minute)
		expiredID := createTestListing(t, store, buildTestMetadata("1", domain.NFTCategoryParcel), expired)
		liveID := createTestListing(t, store, buildTestMetadata("2", domain.NFTCategoryParcel), buildTestRental("2"))

		n, err := store.CancelExpiredRentals(ctx, baseTime)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		assertStatus(t, store, expiredID, domain.RentalStatusCancelled)
		assertStatus(t, store, liveID, domain.RentalStatusOpen)

		// idempotent
		n, err = store.CancelExpiredRentals(ctx, baseTime)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("contract index", func(t *testing.T) {
		stale := buildTestRental("3")
		stale.Nonces = []string{"1", "0", "0"}
		staleID := createTestListing(t, store, buildTestMetadata("3", domain.NFTCategoryParcel), stale)
		fresh := buildTestRental("4")
		fresh.Nonces = []string{"2", "0", "0"}
		freshID := createTestListing(t, store, buildTestMetadata("4", domain.NFTCategoryParcel), fresh)

		_, err := store.CancelRentalsByContractIndex(ctx, "2", baseTime)
		require.NoError(t, err)

		assertStatus(t, store, staleID, domain.RentalStatusCancelled)
		assertStatus(t, store, freshID, domain.RentalStatusOpen)
	})

	t.Run("signer index only touches the signer", func(t *testing.T) {
		mine := buildTestRental("5")
		mine.Nonces = []string{"9", "0", "0"}
		mineID := createTestListing(t, store, buildTestMetadata("5", domain.NFTCategoryParcel), mine)
		other := buildTestRental("6")
		other.Nonces = []string{"9", "0", "0"}
		other.Lessor = "0x3333333333333333333333333333333333333333"
		otherID := createTestListing(t, store, buildTestMetadata("6", domain.NFTCategoryParcel), other)

		_, err := store.CancelRentalsBySignerIndex(ctx, "0x1111111111111111111111111111111111111111", "1", baseTime)
		require.NoError(t, err)

		assertStatus(t, store, mineID, domain.RentalStatusCancelled)
		assertStatus(t, store, otherID, domain.RentalStatusOpen)
	})

	t.Run("asset index only touches the asset", func(t *testing.T) {
		target := buildTestRental("7")
		target.Nonces = []string{"9", "9", "0"}
		targetID := createTestListing(t, store, buildTestMetadata("7", domain.NFTCategoryParcel), target)
		other := buildTestRental("8")
		other.Nonces = []string{"9", "9", "0"}
		otherID := createTestListing(t, store, buildTestMetadata("8", domain.NFTCategoryParcel), other)

		_, err := store.CancelRentalsByAssetIndex(ctx, testLandContract, "7", testLessor, "1", baseTime)
		require.NoError(t, err)

		assertStatus(t, store, targetID, domain.RentalStatusCancelled)
		assertStatus(t, store, otherID, domain.RentalStatusOpen)
	})

	t.Run("terminal rentals are not cancelled", func(t *testing.T) {
		id := createTestListing(t, store, buildTestMetadata("10", domain.NFTCategoryParcel), buildTestRental("10"))
		require.NoError(t, store.ExecuteRental(ctx, ExecuteRentalInput{
			RentalID: id, Status: domain.RentalStatusExecuted, Tenant: testTenant,
			StartedAt: baseTime, UpdatedAt: baseTime, RentedDays: 3, PricePerDay: "10000",
		}))

		n, err := store.CancelRentals(ctx, []string{id}, baseTime)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
		assertStatus(t, store, id, domain.RentalStatusExecuted)
	})
}

func testGetRentalListings(t *testing.T, store Store) {
	ctx := context.Background()

	// asset 1 has a cancelled listing and a newer open one
	old := buildTestRental("1", domain.Period{MinDays: 1, MaxDays: 7, PricePerDay: "500"})
	oldID := createTestListing(t, store, buildTestMetadata("1", domain.NFTCategoryParcel), old)
	_, err := store.CancelRentals(ctx, []string{oldID}, baseTime)
	require.NoError(t, err)

	newer := buildTestRental("1", domain.Period{MinDays: 1, MaxDays: 7, PricePerDay: "1000"})
	newer.Signature = "0xsig-1-newer"
	newer.CreatedAt = baseTime.Add(time.Hour)
	newerID := createTestListing(t, store, buildTestMetadata("1", domain.NFTCategoryParcel), newer)

	estate := buildTestMetadata("2", domain.NFTCategoryEstate)
	estate.EstateSize = 4
	estateRental := buildTestRental("2",
		domain.Period{MinDays: 30, MaxDays: 60, PricePerDay: "3000"},
		domain.Period{MinDays: 1, MaxDays: 29, PricePerDay: "6000"},
	)
	estateRental.CreatedAt = baseTime.Add(2 * time.Hour)
	estateID := createTestListing(t, store, estate, estateRental)

	t.Run("current mode keeps the newest listing per asset", func(t *testing.T) {
		listings, total, err := store.GetRentalListings(ctx, domain.RentalsListingsQuery{})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, listings, 2)
		assert.Equal(t, newerID, listings[0].ID)
		assert.Equal(t, estateID, listings[1].ID)
	})

	t.Run("history mode returns every listing", func(t *testing.T) {
		listings, total, err := store.GetRentalListings(ctx, domain.RentalsListingsQuery{History: true})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		assert.Len(t, listings, 3)
	})

	t.Run("pagination keeps the total", func(t *testing.T) {
		listings, total, err := store.GetRentalListings(ctx, domain.RentalsListingsQuery{
			History: true, Limit: 1, Page: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		require.Len(t, listings, 1)
		assert.Equal(t, newerID, listings[0].ID)
	})

	t.Run("price filters aggregate across periods", func(t *testing.T) {
		minPrice := "5000"
		listings, _, err := store.GetRentalListings(ctx, domain.RentalsListingsQuery{
			FilterBy: domain.RentalsListingsFilterBy{MinPricePerDay: &minPrice},
		})
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Equal(t, estateID, listings[0].ID)
		assert.Len(t, listings[0].Periods, 2)
	})

	t.Run("rental days and sort by max price", func(t *testing.T) {
		listings, _, err := store.GetRentalListings(ctx, domain.RentalsListingsQuery{
			FilterBy:      domain.RentalsListingsFilterBy{RentalDays: []int{5, 45}},
			SortBy:        domain.SortByMaxRentalPrice,
			SortDirection: domain.SortDirectionDesc,
		})
		require.NoError(t, err)
		require.Len(t, listings, 2)
		assert.Equal(t, estateID, listings[0].ID)
	})

	t.Run("status and text filters", func(t *testing.T) {
		text := "parcel 2"
		listings, _, err := store.GetRentalListings(ctx, domain.RentalsListingsQuery{
			FilterBy: domain.RentalsListingsFilterBy{
				Status: []domain.RentalStatus{domain.RentalStatusOpen},
				Text:   &text,
			},
		})
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Equal(t, estateID, listings[0].ID)
	})

	t.Run("wildcards in text match literally", func(t *testing.T) {
		for _, text := range []string{"parcel_", "%"} {
			text := text
			listings, total, err := store.GetRentalListings(ctx, domain.RentalsListingsQuery{
				FilterBy: domain.RentalsListingsFilterBy{Text: &text},
			})
			require.NoError(t, err)
			assert.Equal(t, uint64(0), total, text)
			assert.Empty(t, listings, text)
		}
	})

	t.Run("empty result", func(t *testing.T) {
		lessor := "0x9999999999999999999999999999999999999999"
		listings, total, err := store.GetRentalListings(ctx, domain.RentalsListingsQuery{
			FilterBy: domain.RentalsListingsFilterBy{Lessor: &lessor},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(0), total)
		assert.Empty(t, listings)
	})

	t.Run("prices of open periods", func(t *testing.T) {
		prices, err := store.GetRentalListingsPrices(ctx, domain.RentalsListingsPricesFilterBy{})
		require.NoError(t, err)

		counts := make(map[string]uint64)
		for _, p := range prices {
			counts[p.PricePerDay] = p.Count
		}
		assert.Equal(t, map[string]uint64{"1000": 1, "3000": 1, "6000": 1}, counts)

		category := domain.NFTCategoryEstate
		prices, err = store.GetRentalListingsPrices(ctx, domain.RentalsListingsPricesFilterBy{
			Category:   &category,
			RentalDays: []int{40},
		})
		require.NoError(t, err)
		require.Len(t, prices, 1)
		assert.Equal(t, "3000", prices[0].PricePerDay)
	})

	t.Run("open rentals by metadata", func(t *testing.T) {
		open, err := store.GetOpenRentalsByMetadataIDs(ctx, []string{domain.NFTID(testLandContract, "1")})
		require.NoError(t, err)
		require.Len(t, open, 1)
		assert.Equal(t, newerID, open[0].ID)
		assert.Equal(t, testLessor, open[0].Lessor)
	})
}

func assertStatus(t *testing.T, store Store, id string, expected domain.RentalStatus) {
	t.Helper()
	listing, err := store.GetRentalListingByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, expected, listing.Status)
}

// RunStoreTests runs every store test against the implementation returned by initDB
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Watermark", testWatermark},
		{"Metadata", testMetadata},
		{"CreateRental", testCreateRental},
		{"OpenRentalUniqueness", testOpenRentalUniqueness},
		{"ExecuteRental", testExecuteRental},
		{"Cancellations", testCancellations},
		{"GetRentalListings", testGetRentalListings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			tt.fn(t, store)
		})
	}
}
