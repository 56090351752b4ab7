package rentals

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/ff-land-rentals/internal/domain"
	"github.com/feral-file/ff-land-rentals/internal/logger"
	"github.com/feral-file/ff-land-rentals/internal/signature"
	"github.com/feral-file/ff-land-rentals/internal/store"
)

// CreateRentalListing runs the creation checks in order and stores the listing.
// The expiration check runs before any subgraph is queried.
func (c *component) CreateRentalListing(ctx context.Context, listing domain.RentalListingCreation, lessor string) (*domain.RentalListing, error) {
	lessor = strings.ToLower(lessor)
	listing.ContractAddress = strings.ToLower(listing.ContractAddress)
	listing.Target = strings.ToLower(listing.TargetOrZero())
	// subgraphs index signatures as lowercase hex
	listing.Signature = strings.ToLower(listing.Signature)

	if err := listing.Validate(); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	if listing.Expiration <= domain.ToMilliseconds(now) {
		return nil, domain.NewRentalAlreadyExpiredError(listing.ContractAddress, listing.TokenID, listing.Expiration)
	}

	valid, err := c.verifier.Verify(listing, lessor)
	if err != nil {
		return nil, err
	}
	if !valid {
		if !signature.HasValidV(listing.Signature) {
			return nil, domain.NewInvalidSignatureError(domain.LegacyVSignatureMessage)
		}
		return nil, domain.NewInvalidSignatureError("")
	}

	rentalsContract, err := c.contracts.Address(domain.ContractNameRentals, listing.ChainID)
	if err != nil {
		return nil, err
	}

	active, err := c.rentals.GetActiveRental(ctx, listing.ContractAddress, listing.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check the active rental: %w", err)
	}
	if active != nil && active.IsOngoing(now) {
		return nil, domain.NewRentalAlreadyExistsError(listing.ContractAddress, listing.TokenID)
	}

	nft, err := c.marketplace.GetNFT(ctx, listing.ContractAddress, listing.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get the nft: %w", err)
	}
	if nft == nil {
		return nil, domain.NewNFTNotFoundError(listing.ContractAddress, listing.TokenID)
	}

	owner := nft.Owner
	if domain.EqualAddress(nft.Owner, rentalsContract) {
		assets, err := c.rentals.GetRentalAssets(ctx, []string{nft.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to get the rental asset: %w", err)
		}
		owner = ""
		if asset, ok := assets[nft.ID]; ok {
			owner = asset.Lessor
		}
	}
	if !domain.EqualAddress(owner, lessor) {
		return nil, domain.NewUnauthorizedToRentError(owner, lessor)
	}

	if nft.IsDissolvedEstate() {
		return nil, domain.NewInvalidEstateError(listing.ContractAddress, listing.TokenID)
	}

	var id string
	err = c.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.InsertMetadata(ctx, metadataInput(*nft)); err != nil {
			return err
		}
		id, err = tx.CreateRental(ctx, store.CreateRentalInput{
			MetadataID:            nft.ID,
			Network:               listing.Network,
			ChainID:               listing.ChainID,
			Expiration:            domain.FromMilliseconds(listing.Expiration),
			Signature:             listing.Signature,
			Nonces:                listing.Nonces,
			TokenID:               listing.TokenID,
			ContractAddress:       listing.ContractAddress,
			RentalContractAddress: strings.ToLower(rentalsContract),
			Status:                domain.RentalStatusOpen,
			Target:                listing.Target,
			Lessor:                lessor,
			Periods:               listing.Periods,
			CreatedAt:             now,
		})
		return err
	})
	if err != nil {
		if store.IsOpenRentalConflict(err) {
			return nil, domain.NewRentalAlreadyExistsError(listing.ContractAddress, listing.TokenID)
		}
		logger.ErrorCtx(ctx, fmt.Errorf("failed to create rental listing: %w", err),
			zap.String("contractAddress", listing.ContractAddress),
			zap.String("tokenId", listing.TokenID))
		return nil, domain.NewCreationFailedError(err)
	}

	created, err := c.store.GetRentalListingByID(ctx, id)
	if err != nil {
		return nil, domain.NewCreationFailedError(err)
	}
	if created == nil {
		return nil, domain.NewCreationFailedError(fmt.Errorf("rental %s not found after insert", id))
	}

	logger.InfoCtx(ctx, "Rental listing created",
		zap.String("id", id),
		zap.String("nft", nft.ID),
		zap.String("lessor", lessor))
	return created, nil
}
