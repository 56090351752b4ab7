package domain

import "time"

// AssetIndexAction is the reason an asset index was bumped
type AssetIndexAction string

const (
	AssetIndexActionRent   AssetIndexAction = "RENT"
	AssetIndexActionCancel AssetIndexAction = "CANCEL"
)

// IndexUpdate is a nonce bump recorded by the rentals contract.
// It is one of ContractIndexUpdate, SignerIndexUpdate or AssetIndexUpdate.
type IndexUpdate interface {
	UpdatedAt() time.Time
	indexUpdate()
}

// ContractIndexUpdate invalidates every listing signed with a lower contract nonce
type ContractIndexUpdate struct {
	NewIndex string
	Date     time.Time
}

// SignerIndexUpdate invalidates the listings of a signer signed with a lower signer nonce
type SignerIndexUpdate struct {
	Signer   string
	NewIndex string
	Date     time.Time
}

// AssetIndexUpdate invalidates the listings of a signer's asset signed with a lower asset nonce
type AssetIndexUpdate struct {
	Signer          string
	ContractAddress string
	TokenID         string
	NewIndex        string
	Action          AssetIndexAction
	Date            time.Time
}

func (u ContractIndexUpdate) UpdatedAt() time.Time { return u.Date }
func (u SignerIndexUpdate) UpdatedAt() time.Time   { return u.Date }
func (u AssetIndexUpdate) UpdatedAt() time.Time    { return u.Date }

func (ContractIndexUpdate) indexUpdate() {}
func (SignerIndexUpdate) indexUpdate()   {}
func (AssetIndexUpdate) indexUpdate()    {}
