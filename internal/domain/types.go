package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ChainID is the numeric EVM chain identifier the listing was signed for
type ChainID int64

const (
	ChainIDEthereumMainnet ChainID = 1
	ChainIDEthereumSepolia ChainID = 11155111
)

// String returns the decimal representation of the chain id
func (c ChainID) String() string {
	return strconv.FormatInt(int64(c), 10)
}

// Network is the marketplace network an asset lives on
type Network string

const (
	NetworkEthereum Network = "ETHEREUM"
	NetworkMatic    Network = "MATIC"
)

// IsValidNetwork checks if a network is supported
func IsValidNetwork(network Network) bool {
	return network == NetworkEthereum || network == NetworkMatic
}

// RentalStatus is the lifecycle status of a rental listing.
// open is the only non-terminal status.
type RentalStatus string

const (
	RentalStatusOpen      RentalStatus = "open"
	RentalStatusExecuted  RentalStatus = "executed"
	RentalStatusCancelled RentalStatus = "cancelled"
	RentalStatusClaimed   RentalStatus = "claimed"
)

// Valid checks if the status is one of the known statuses
func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusOpen, RentalStatusExecuted, RentalStatusCancelled, RentalStatusClaimed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s
func (s RentalStatus) Terminal() bool {
	return s != RentalStatusOpen
}

// NFTCategory is the marketplace category of a land asset
type NFTCategory string

const (
	NFTCategoryParcel NFTCategory = "parcel"
	NFTCategoryEstate NFTCategory = "estate"
)

// IsValidNFTCategory checks if the category can be rented
func IsValidNFTCategory(category NFTCategory) bool {
	return category == NFTCategoryParcel || category == NFTCategoryEstate
}

// SortBy is the sort key for listing reads
type SortBy string

const (
	SortByRentalListingCreationDate SortBy = "rental_listing_creation_date"
	SortByLandCreationDate          SortBy = "land_creation_date"
	SortByName                      SortBy = "name"
	SortByMaxRentalPrice            SortBy = "max_rental_price"
	SortByMinRentalPrice            SortBy = "min_rental_price"
)

// IsValidSortBy checks if a sort key is supported
func IsValidSortBy(s SortBy) bool {
	switch s {
	case SortByRentalListingCreationDate, SortByLandCreationDate, SortByName, SortByMaxRentalPrice, SortByMinRentalPrice:
		return true
	}
	return false
}

// SortDirection is the direction of the listing sort
type SortDirection string

const (
	SortDirectionAsc  SortDirection = "asc"
	SortDirectionDesc SortDirection = "desc"
)

// UpdateType identifies one reconciliation job and its watermark row
type UpdateType string

const (
	UpdateTypeMetadata UpdateType = "metadata"
	UpdateTypeRentals  UpdateType = "rentals"
	UpdateTypeIndexes  UpdateType = "indexes"
)

// NFTID builds the marketplace identifier of an asset
func NFTID(contractAddress, tokenID string) string {
	return fmt.Sprintf("%s-%s", strings.ToLower(contractAddress), tokenID)
}

// FromMilliseconds converts a millisecond unix timestamp to time.Time
func FromMilliseconds(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ToMilliseconds converts a time to a millisecond unix timestamp
func ToMilliseconds(t time.Time) int64 {
	return t.UnixMilli()
}

// FromSecondsString parses a unix timestamp in seconds as returned by the subgraphs
func FromSecondsString(s string) (time.Time, error) {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return time.Unix(sec, 0).UTC(), nil
}

// EqualAddress compares two hex addresses case-insensitively
func EqualAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}
