package rentals

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-land-rentals/internal/domain"
	"github.com/feral-file/ff-land-rentals/internal/logger"
	"github.com/feral-file/ff-land-rentals/internal/store"
	"github.com/feral-file/ff-land-rentals/internal/subgraph"
)

// RefreshRentalListing reconciles one listing with both subgraphs without waiting for the sync jobs
func (c *component) RefreshRentalListing(ctx context.Context, id string) (*domain.RentalListing, error) {
	listing, err := c.store.GetRentalListingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, domain.NewRentalNotFoundError(id)
	}

	nft, err := c.marketplace.GetNFT(ctx, listing.ContractAddress, listing.TokenID)
	if err != nil {
		return nil, err
	}
	var nfts []subgraph.NFT
	if nft != nil {
		nfts = append(nfts, *nft)
	}
	assets, err := c.custodyRecords(ctx, nfts)
	if err != nil {
		return nil, err
	}

	onChain, err := c.rentals.GetRentalBySignature(ctx, listing.Signature)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	err = c.store.WithTx(ctx, func(tx store.Store) error {
		if onChain != nil {
			if err := tx.ExecuteRental(ctx, executeInput(listing.ID, *onChain)); err != nil {
				return err
			}
		}

		// cancels the listing when the owner changed or the estate was dissolved
		if err := c.applyNFTUpdates(ctx, tx, nfts, assets, true, now); err != nil {
			return err
		}

		if onChain == nil && listing.Status == domain.RentalStatusOpen && !listing.Expiration.After(now) {
			if _, err := tx.CancelRentals(ctx, []string{listing.ID}, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to refresh rental listing: %w", err)
	}

	refreshed, err := c.store.GetRentalListingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if refreshed == nil {
		return nil, domain.NewRentalNotFoundError(id)
	}

	logger.InfoCtx(ctx, "Rental listing refreshed",
		zap.String("id", id),
		zap.String("status", string(refreshed.Status)))
	return refreshed, nil
}
