package rentals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-land-rentals/internal/domain"
	"github.com/feral-file/ff-land-rentals/internal/logger"
	"github.com/feral-file/ff-land-rentals/internal/store"
	"github.com/feral-file/ff-land-rentals/internal/store/schema"
	"github.com/feral-file/ff-land-rentals/internal/subgraph"
)

func (c *component) UpdateMetadata(ctx context.Context) {
	c.run(ctx, domain.UpdateTypeMetadata, c.updateMetadata)
}

func (c *component) UpdateRentalsListings(ctx context.Context) {
	c.run(ctx, domain.UpdateTypeRentals, c.updateRentalsListings)
}

func (c *component) CancelRentalsListings(ctx context.Context) {
	c.run(ctx, domain.UpdateTypeIndexes, c.cancelRentalsListings)
}

// run executes a sync job under its own run id. Failures are logged and swallowed
// so the next scheduled run retries from the same watermark.
func (c *component) run(ctx context.Context, updateType domain.UpdateType, job func(ctx context.Context) error) {
	ctx = logger.WithRun(ctx, string(updateType), ulid.Make().String())
	start := c.clock.Now()

	logger.InfoCtx(ctx, "Sync started")
	if err := job(ctx); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("sync failed: %w", err), zap.Duration("duration", c.clock.Since(start)))
		return
	}
	logger.InfoCtx(ctx, "Sync finished", zap.Duration("duration", c.clock.Since(start)))
}

// watermarkNow is the watermark stored at the end of a run, second precision like the subgraphs
func (c *component) watermarkNow() time.Time {
	return c.clock.Now().Truncate(time.Second)
}

func (c *component) updateMetadata(ctx context.Context) error {
	watermark, err := c.store.GetWatermark(ctx, domain.UpdateTypeMetadata)
	if err != nil {
		return fmt.Errorf("failed to get watermark: %w", err)
	}

	nfts, err := c.marketplace.GetNFTsUpdatedAfter(ctx, watermark)
	if err != nil {
		return err
	}
	logger.InfoCtx(ctx, "Fetched updated nfts", zap.Int("count", len(nfts)), zap.Time("after", watermark))

	assets, err := c.custodyRecords(ctx, nfts)
	if err != nil {
		return err
	}

	now := c.watermarkNow()
	return c.store.WithTx(ctx, func(tx store.Store) error {
		if err := c.applyNFTUpdates(ctx, tx, nfts, assets, false, now); err != nil {
			return err
		}
		return tx.SetWatermark(ctx, domain.UpdateTypeMetadata, now)
	})
}

// custodyRecords fetches the custody records of the nfts held by the rentals contract
func (c *component) custodyRecords(ctx context.Context, nfts []subgraph.NFT) (map[string]subgraph.RentalAsset, error) {
	rentalsContract, err := c.rentalsContract()
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, nft := range nfts {
		if domain.EqualAddress(nft.Owner, rentalsContract) {
			ids = append(ids, nft.ID)
		}
	}
	if len(ids) == 0 {
		return map[string]subgraph.RentalAsset{}, nil
	}
	return c.rentals.GetRentalAssets(ctx, ids)
}

// applyNFTUpdates writes the marketplace changes and cancels the open listings whose
// lessor no longer owns the asset or whose estate was dissolved. Unknown assets are
// inserted. A known asset is only rewritten when force is set or the marketplace
// reports a newer update.
func (c *component) applyNFTUpdates(ctx context.Context, tx store.Store, nfts []subgraph.NFT, assets map[string]subgraph.RentalAsset, force bool, now time.Time) error {
	if len(nfts) == 0 {
		return nil
	}

	rentalsContract, err := c.rentalsContract()
	if err != nil {
		return err
	}

	ids := make([]string, len(nfts))
	for i, nft := range nfts {
		ids[i] = nft.ID
	}
	existing, err := tx.GetMetadataByIDs(ctx, ids)
	if err != nil {
		return err
	}

	changed := make(map[string]subgraph.NFT)
	for _, nft := range nfts {
		stored, ok := existing[nft.ID]
		if !ok {
			if err := tx.InsertMetadata(ctx, metadataInput(nft)); err != nil {
				return err
			}
			continue
		}
		if !force && !nft.UpdatedAt.After(stored.UpdatedAt) {
			continue
		}
		if err := tx.UpdateMetadata(ctx, metadataInput(nft)); err != nil {
			return err
		}
		changed[nft.ID] = nft
	}
	if len(changed) == 0 {
		return nil
	}

	changedIDs := make([]string, 0, len(changed))
	for id := range changed {
		changedIDs = append(changedIDs, id)
	}
	open, err := tx.GetOpenRentalsByMetadataIDs(ctx, changedIDs)
	if err != nil {
		return err
	}

	var cancel []string
	for _, rental := range open {
		nft := changed[rental.MetadataID]
		if nft.IsDissolvedEstate() {
			cancel = append(cancel, rental.ID)
			continue
		}
		owner, known := resolveOwner(nft, rentalsContract, assets)
		if known && !domain.EqualAddress(owner, rental.Lessor) {
			cancel = append(cancel, rental.ID)
		}
	}
	if len(cancel) == 0 {
		return nil
	}

	cancelled, err := tx.CancelRentals(ctx, cancel, now)
	if err != nil {
		return err
	}
	logger.InfoCtx(ctx, "Cancelled listings of changed assets", zap.Int64("count", cancelled))
	return nil
}

func (c *component) updateRentalsListings(ctx context.Context) error {
	watermark, err := c.store.GetWatermark(ctx, domain.UpdateTypeRentals)
	if err != nil {
		return fmt.Errorf("failed to get watermark: %w", err)
	}

	rentals, err := c.rentals.GetRentalsUpdatedAfter(ctx, watermark)
	if err != nil {
		return err
	}
	logger.InfoCtx(ctx, "Fetched updated rentals", zap.Int("count", len(rentals)), zap.Time("after", watermark))

	nfts, err := c.unknownRentalNFTs(ctx, rentals)
	if err != nil {
		return err
	}

	now := c.watermarkNow()
	return c.store.WithTx(ctx, func(tx store.Store) error {
		for _, rental := range rentals {
			if err := c.applyRental(ctx, tx, rental, nfts); err != nil {
				return err
			}
		}

		expired, err := tx.CancelExpiredRentals(ctx, now)
		if err != nil {
			return err
		}
		if expired > 0 {
			logger.InfoCtx(ctx, "Cancelled expired listings", zap.Int64("count", expired))
		}

		return tx.SetWatermark(ctx, domain.UpdateTypeRentals, now)
	})
}

// unknownRentalNFTs fetches from the marketplace the assets of rentals that have no
// local metadata yet, keyed by metadata id. Assets the marketplace does not know map to nil.
func (c *component) unknownRentalNFTs(ctx context.Context, rentals []subgraph.Rental) (map[string]*subgraph.NFT, error) {
	nfts := make(map[string]*subgraph.NFT)
	if len(rentals) == 0 {
		return nfts, nil
	}

	seen := make(map[string]bool)
	var ids []string
	for _, rental := range rentals {
		id := domain.NFTID(rental.ContractAddress, rental.TokenID)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	existing, err := c.store.GetMetadataByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, rental := range rentals {
		id := domain.NFTID(rental.ContractAddress, rental.TokenID)
		if _, ok := existing[id]; ok {
			continue
		}
		if _, ok := nfts[id]; ok {
			continue
		}
		nft, err := c.marketplace.GetNFT(ctx, rental.ContractAddress, rental.TokenID)
		if err != nil {
			return nil, err
		}
		nfts[id] = nft
	}
	return nfts, nil
}

// applyRental records an on-chain rental. A rental whose signature is unknown
// locally was listed elsewhere and is inserted from the on-chain data, using the
// assets resolved by unknownRentalNFTs when its metadata is missing.
func (c *component) applyRental(ctx context.Context, tx store.Store, rental subgraph.Rental, nfts map[string]*subgraph.NFT) error {
	local, err := tx.GetRentalBySignature(ctx, rental.Signature)
	if err != nil {
		return err
	}
	if local != nil {
		if rentalApplied(local, rental) {
			return nil
		}
		return tx.ExecuteRental(ctx, executeInput(local.ID, rental))
	}

	metadataID := domain.NFTID(rental.ContractAddress, rental.TokenID)
	metadata, err := tx.GetMetadataByID(ctx, metadataID)
	if err != nil {
		return err
	}
	if metadata == nil {
		nft := nfts[metadataID]
		if nft == nil {
			logger.WarnCtx(ctx, "Skipping rental of unknown nft",
				zap.String("rental", rental.ID),
				zap.String("nft", metadataID))
			return nil
		}
		if err := tx.InsertMetadata(ctx, metadataInput(*nft)); err != nil {
			return err
		}
	}

	rentalsContract, err := c.rentalsContract()
	if err != nil {
		return err
	}

	tenant := strings.ToLower(rental.Tenant)
	startedAt := rental.StartedAt
	rentedDays := rental.RentalDays
	_, err = tx.CreateRental(ctx, store.CreateRentalInput{
		MetadataID:            metadataID,
		Network:               c.config.Network,
		ChainID:               c.config.ChainID,
		Expiration:            rental.StartedAt,
		Signature:             rental.Signature,
		Nonces:                domain.DefaultNonces(),
		TokenID:               rental.TokenID,
		ContractAddress:       rental.ContractAddress,
		RentalContractAddress: strings.ToLower(rentalsContract),
		Status:                rental.Status(),
		Target:                domain.ETHEREUM_ZERO_ADDRESS,
		Lessor:                rental.Lessor,
		Tenant:                &tenant,
		StartedAt:             &startedAt,
		RentedDays:            &rentedDays,
		CreatedAt:             rental.StartedAt,
		UpdatedAt:             rental.UpdatedAt,
	})
	if err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Inserted rental executed outside the service",
		zap.String("rental", rental.ID),
		zap.String("nft", metadataID))
	return nil
}

// rentalApplied reports whether the local row already reflects the on-chain rental
func rentalApplied(local *schema.Rental, rental subgraph.Rental) bool {
	status := rental.Status()
	if local.Status == domain.RentalStatusClaimed && status == domain.RentalStatusExecuted {
		return true
	}
	return local.Status == status && !local.UpdatedAt.Before(rental.UpdatedAt)
}

func executeInput(rentalID string, rental subgraph.Rental) store.ExecuteRentalInput {
	return store.ExecuteRentalInput{
		RentalID:    rentalID,
		Status:      rental.Status(),
		Tenant:      strings.ToLower(rental.Tenant),
		StartedAt:   rental.StartedAt,
		UpdatedAt:   rental.UpdatedAt,
		RentedDays:  rental.RentalDays,
		PricePerDay: rental.PricePerDay,
	}
}

func (c *component) cancelRentalsListings(ctx context.Context) error {
	watermark, err := c.store.GetWatermark(ctx, domain.UpdateTypeIndexes)
	if err != nil {
		return fmt.Errorf("failed to get watermark: %w", err)
	}

	updates, err := c.rentals.GetIndexUpdatesAfter(ctx, watermark)
	if err != nil {
		return err
	}
	logger.InfoCtx(ctx, "Fetched index updates", zap.Int("count", len(updates)), zap.Time("after", watermark))

	now := c.watermarkNow()
	return c.store.WithTx(ctx, func(tx store.Store) error {
		for _, update := range updates {
			// already applied by the run that stored the watermark
			if !update.UpdatedAt().After(watermark) {
				continue
			}
			if err := applyIndexUpdate(ctx, tx, update); err != nil {
				return err
			}
		}
		return tx.SetWatermark(ctx, domain.UpdateTypeIndexes, now)
	})
}

// applyIndexUpdate cancels the open listings invalidated by a nonce bump.
// Asset index bumps caused by a rental are left to the rentals sync.
func applyIndexUpdate(ctx context.Context, tx store.Store, update domain.IndexUpdate) error {
	var (
		cancelled int64
		err       error
	)

	switch u := update.(type) {
	case domain.ContractIndexUpdate:
		cancelled, err = tx.CancelRentalsByContractIndex(ctx, u.NewIndex, u.Date)
	case domain.SignerIndexUpdate:
		cancelled, err = tx.CancelRentalsBySignerIndex(ctx, u.Signer, u.NewIndex, u.Date)
	case domain.AssetIndexUpdate:
		switch u.Action {
		case domain.AssetIndexActionCancel:
			cancelled, err = tx.CancelRentalsByAssetIndex(ctx, u.ContractAddress, u.TokenID, u.Signer, u.NewIndex, u.Date)
		case domain.AssetIndexActionRent:
			return nil
		default:
			return fmt.Errorf("unknown asset index action %q", u.Action)
		}
	default:
		return fmt.Errorf("unknown index update %T", update)
	}
	if err != nil {
		return err
	}

	if cancelled > 0 {
		logger.InfoCtx(ctx, "Cancelled listings by index update",
			zap.String("update", fmt.Sprintf("%T", update)),
			zap.Int64("count", cancelled))
	}
	return nil
}
