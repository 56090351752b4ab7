package schema

import (
	"time"

	"github.com/feral-file/ff-land-rentals/internal/domain"
)

// Update represents the updates table - the watermark of each synchronization job
type Update struct {
	// Type is the job the watermark belongs to
	Type domain.UpdateType `gorm:"column:type;primaryKey;type:text"`
	// UpdatedAt is the time up to which the job processed the subgraph changes
	UpdatedAt time.Time `gorm:"column:updated_at;not null;type:timestamptz;autoUpdateTime:false"`
}

// TableName specifies the table name for the Update model
func (Update) TableName() string {
	return "updates"
}
