package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-land-rentals/internal/domain"
	"github.com/feral-file/ff-land-rentals/internal/store/schema"
)

// MetadataInput carries the asset fields written to the metadata table
type MetadataInput struct {
	ID              string
	Category        domain.NFTCategory
	SearchText      string
	DistanceToPlaza int
	AdjacentToRoad  bool
	EstateSize      int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateRentalInput carries a rental row with its parties and periods
type CreateRentalInput struct {
	MetadataID            string
	Network               domain.Network
	ChainID               domain.ChainID
	Expiration            time.Time
	Signature             string
	Nonces                []string
	TokenID               string
	ContractAddress       string
	RentalContractAddress string
	Status                domain.RentalStatus
	Target                string
	Lessor                string
	Tenant                *string
	StartedAt             *time.Time
	RentedDays            *int
	Periods               []domain.Period
	CreatedAt             time.Time
	// UpdatedAt defaults to CreatedAt
	UpdatedAt             time.Time
}

// ExecuteRentalInput carries the on-chain execution of a listing
type ExecuteRentalInput struct {
	RentalID    string
	Status      domain.RentalStatus
	Tenant      string
	StartedAt   time.Time
	UpdatedAt   time.Time
	RentedDays  int
	PricePerDay string
}

// OpenRental is an open rental with the lessor that signed it
type OpenRental struct {
	ID         string    `gorm:"column:id"`
	MetadataID string    `gorm:"column:metadata_id"`
	Lessor     string    `gorm:"column:lessor"`
	Expiration time.Time `gorm:"column:expiration"`
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// WithTx runs fn inside a transaction. Returning an error from fn rolls it back.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// GetWatermark returns the time up to which a job has processed changes, the unix epoch if never run
	GetWatermark(ctx context.Context, updateType domain.UpdateType) (time.Time, error)
	// SetWatermark advances the watermark of a job. It never moves backwards.
	SetWatermark(ctx context.Context, updateType domain.UpdateType, updatedAt time.Time) error

	// GetMetadataByID retrieves an asset metadata row or nil
	GetMetadataByID(ctx context.Context, id string) (*schema.Metadata, error)
	// GetMetadataByIDs retrieves the metadata rows that exist among ids, keyed by id
	GetMetadataByIDs(ctx context.Context, ids []string) (map[string]*schema.Metadata, error)
	// InsertMetadata inserts an asset metadata row, doing nothing if it already exists
	InsertMetadata(ctx context.Context, input MetadataInput) error
	// UpdateMetadata overwrites an asset metadata row
	UpdateMetadata(ctx context.Context, input MetadataInput) error

	// CreateRental inserts a rental with its parties and periods and returns its id
	CreateRental(ctx context.Context, input CreateRentalInput) (string, error)
	// GetRentalListingByID retrieves the joined listing or nil
	GetRentalListingByID(ctx context.Context, id string) (*domain.RentalListing, error)
	// GetRentalBySignature retrieves the newest rental carrying the signature or nil
	GetRentalBySignature(ctx context.Context, signature string) (*schema.Rental, error)
	// GetOpenRentalsByMetadataIDs retrieves the open rentals of the given assets
	GetOpenRentalsByMetadataIDs(ctx context.Context, metadataIDs []string) ([]OpenRental, error)

	// ExecuteRental records the on-chain execution of a rental. A claimed rental is never moved back to executed.
	ExecuteRental(ctx context.Context, input ExecuteRentalInput) error
	// CancelRentals cancels the given rentals that are still open
	CancelRentals(ctx context.Context, ids []string, at time.Time) (int64, error)
	// CancelExpiredRentals cancels every open rental that expired before now
	CancelExpiredRentals(ctx context.Context, now time.Time) (int64, error)
	// CancelRentalsByContractIndex cancels open rentals signed with a contract nonce lower than newIndex
	CancelRentalsByContractIndex(ctx context.Context, newIndex string, at time.Time) (int64, error)
	// CancelRentalsBySignerIndex cancels open rentals of signer signed with a signer nonce lower than newIndex
	CancelRentalsBySignerIndex(ctx context.Context, signer string, newIndex string, at time.Time) (int64, error)
	// CancelRentalsByAssetIndex cancels open rentals of signer for the asset signed with an asset nonce lower than newIndex
	CancelRentalsByAssetIndex(ctx context.Context, contractAddress, tokenID, signer string, newIndex string, at time.Time) (int64, error)

	// GetRentalListings runs a listings read and returns the page with the total match count
	GetRentalListings(ctx context.Context, query domain.RentalsListingsQuery) ([]domain.RentalListing, uint64, error)
	// GetRentalListingsPrices returns the number of open periods per price
	GetRentalListingsPrices(ctx context.Context, filter domain.RentalsListingsPricesFilterBy) ([]domain.PriceCount, error)
}
