package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-land-rentals/internal/domain"
)

// OpenRentalUniqueIndex is the partial unique index allowing a single open rental per asset
const OpenRentalUniqueIndex = "rentals_token_id_contract_address_status_unique_index"

// Rental represents the rentals table - one row per listing, including historical ones
type Rental struct {
	// ID is a UUID generated on insert
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// MetadataID references the listed asset
	MetadataID string `gorm:"column:metadata_id;not null;type:text"`
	// Network is the marketplace network (ETHEREUM, MATIC)
	Network domain.Network `gorm:"column:network;not null;type:text"`
	// ChainID is the EVM chain the listing was signed for
	ChainID domain.ChainID `gorm:"column:chain_id;not null"`
	// Expiration is when the signed listing stops being executable
	Expiration time.Time `gorm:"column:expiration;not null;type:timestamptz"`
	// Signature is the lessor's EIP-712 signature of the listing
	Signature string `gorm:"column:signature;not null;type:text"`
	// Nonces holds the contract, signer and asset indexes at signing time
	Nonces datatypes.JSONSlice[string] `gorm:"column:nonces;not null;type:jsonb"`
	// TokenID is the asset token id
	TokenID string `gorm:"column:token_id;not null;type:text"`
	// ContractAddress is the asset contract address
	ContractAddress string `gorm:"column:contract_address;not null;type:text"`
	// RentalContractAddress is the rentals contract that verifies the signature
	RentalContractAddress string `gorm:"column:rental_contract_address;not null;type:text"`
	// Status is open, executed, cancelled or claimed
	Status domain.RentalStatus `gorm:"column:status;not null;type:text"`
	// Target restricts the listing to a tenant, zero address when public
	Target string `gorm:"column:target;not null;type:text"`
	// RentedDays is set once the rental is executed
	RentedDays *int `gorm:"column:rented_days"`
	// PeriodChosen is the period matching the executed rental
	PeriodChosen *int64 `gorm:"column:period_chosen"`
	// StartedAt is set once the rental is executed
	StartedAt *time.Time `gorm:"column:started_at;type:timestamptz"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;type:timestamptz;autoCreateTime:false"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null;type:timestamptz;autoUpdateTime:false"`
}

// TableName specifies the table name for the Rental model
func (Rental) TableName() string {
	return "rentals"
}

// RentalListing represents the rentals_listings table - the parties of a rental
type RentalListing struct {
	// ID is the id of the rental
	ID     string  `gorm:"column:id;primaryKey;type:uuid"`
	Lessor string  `gorm:"column:lessor;not null;type:text"`
	Tenant *string `gorm:"column:tenant;type:text"`
}

// TableName specifies the table name for the RentalListing model
func (RentalListing) TableName() string {
	return "rentals_listings"
}

// Period represents the periods table - the pricing tiers of a rental
type Period struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	RentalID string `gorm:"column:rental_id;not null;type:uuid"`
	MinDays  int    `gorm:"column:min_days;not null"`
	MaxDays  int    `gorm:"column:max_days;not null"`
	// PricePerDay is an integer amount in wei stored as numeric(78,0)
	PricePerDay string `gorm:"column:price_per_day;not null;type:numeric(78,0)"`
}

// TableName specifies the table name for the Period model
func (Period) TableName() string {
	return "periods"
}
