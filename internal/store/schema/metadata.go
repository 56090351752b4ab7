package schema

import (
	"time"

	"github.com/feral-file/ff-land-rentals/internal/domain"
)

// Metadata represents the metadata table - one row per land asset that was ever listed
type Metadata struct {
	// ID is the marketplace NFT id (<contract address>-<token id>)
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Category is parcel or estate
	Category domain.NFTCategory `gorm:"column:category;not null;type:text"`
	// SearchText is the asset name used by text search and name sorting
	SearchText string `gorm:"column:search_text;not null;type:text"`
	// DistanceToPlaza is the distance in parcels to the closest plaza
	DistanceToPlaza int `gorm:"column:distance_to_plaza;not null;default:0"`
	// AdjacentToRoad tells whether the asset touches a road
	AdjacentToRoad bool `gorm:"column:adjacent_to_road;not null;default:false"`
	// EstateSize is the number of parcels of an estate, 0 for parcels and dissolved estates
	EstateSize int `gorm:"column:estate_size;not null;default:0"`
	// CreatedAt is the creation time of the asset as reported by the marketplace
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz;autoCreateTime:false"`
	// UpdatedAt is the last update of the asset as reported by the marketplace
	UpdatedAt time.Time `gorm:"column:updated_at;not null;type:timestamptz;autoUpdateTime:false"`
}

// TableName specifies the table name for the Metadata model
func (Metadata) TableName() string {
	return "metadata"
}
