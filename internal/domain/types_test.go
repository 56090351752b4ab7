package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentalStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   RentalStatus
		valid    bool
		terminal bool
	}{
		{name: "open", status: RentalStatusOpen, valid: true, terminal: false},
		{name: "executed", status: RentalStatusExecuted, valid: true, terminal: true},
		{name: "cancelled", status: RentalStatusCancelled, valid: true, terminal: true},
		{name: "claimed", status: RentalStatusClaimed, valid: true, terminal: true},
		{name: "unknown", status: RentalStatus("pending"), valid: false, terminal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
			assert.Equal(t, tt.terminal, tt.status.Terminal())
		})
	}
}

func TestNFTID(t *testing.T) {
	assert.Equal(t, "0xf87e31492faf9a91b02ee0deaad50d51d56d5d4d-42", NFTID("0xF87E31492Faf9A91B02Ee0dEAAd50d51d56D5d4d", "42"))
}

func TestMilliseconds(t *testing.T) {
	ts := time.Date(2023, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	assert.Equal(t, ts, FromMilliseconds(ToMilliseconds(ts)))
}

func TestFromSecondsString(t *testing.T) {
	ts, err := FromSecondsString("1672628645")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC), ts)

	_, err = FromSecondsString("yesterday")
	assert.Error(t, err)
}

func TestIsValidSortBy(t *testing.T) {
	assert.True(t, IsValidSortBy(SortByMaxRentalPrice))
	assert.False(t, IsValidSortBy(SortBy("price")))
}

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewRentalAlreadyExistsError("0xabc", "1"))

	assert.True(t, errors.Is(err, ErrRentalAlreadyExists))
	assert.False(t, errors.Is(err, ErrNFTNotFound))
	assert.Equal(t, KindRentalAlreadyExists, KindOf(err))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))

	var rentalErr *Error
	require.True(t, errors.As(err, &rentalErr))
	assert.Equal(t, "0xabc", rentalErr.Data["contractAddress"])
}

func TestCreationFailedUnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewCreationFailedError(cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrCreationFailed))
}

func TestInvalidSignatureMessage(t *testing.T) {
	assert.Equal(t, LegacyVSignatureMessage, NewInvalidSignatureError(LegacyVSignatureMessage).Error())
	assert.Equal(t, "The signature is invalid", NewInvalidSignatureError("").Error())
}

func TestContractRegistry(t *testing.T) {
	registry := NewContractRegistry(map[ChainID]string{
		ChainIDEthereumSepolia: "0x92159C78F0F4523B9c60382bB888F30F10A46B3B",
	})

	address, err := registry.Address(ContractNameRentals, ChainIDEthereumMainnet)
	require.NoError(t, err)
	assert.Equal(t, "0x3a1469499d0be105d4f77045ca403a5f6dc2f3f5", address)

	address, err = registry.Address(ContractNameRentals, ChainIDEthereumSepolia)
	require.NoError(t, err)
	assert.Equal(t, "0x92159c78f0f4523b9c60382bb888f30f10a46b3b", address)

	_, err = registry.Address(ContractNameRentals, ChainID(137))
	assert.True(t, errors.Is(err, ErrContractNotFound))
}

func TestRentalListingCreation_Validate(t *testing.T) {
	valid := RentalListingCreation{
		Network:         NetworkEthereum,
		ChainID:         ChainIDEthereumMainnet,
		Expiration:      time.Now().Add(time.Hour).UnixMilli(),
		Signature:       "0x01",
		TokenID:         "1",
		ContractAddress: "0xf87e31492faf9a91b02ee0deaad50d51d56d5d4d",
		Nonces:          []string{"0", "0", "0"},
		Periods:         []Period{{MinDays: 1, MaxDays: 7, PricePerDay: "1000000000000000000"}},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(l *RentalListingCreation)
	}{
		{name: "unknown network", mutate: func(l *RentalListingCreation) { l.Network = "SOLANA" }},
		{name: "two nonces", mutate: func(l *RentalListingCreation) { l.Nonces = []string{"0", "0"} }},
		{name: "non numeric nonce", mutate: func(l *RentalListingCreation) { l.Nonces = []string{"0", "x", "0"} }},
		{name: "no periods", mutate: func(l *RentalListingCreation) { l.Periods = nil }},
		{name: "max below min", mutate: func(l *RentalListingCreation) { l.Periods = []Period{{MinDays: 5, MaxDays: 2, PricePerDay: "1"}} }},
		{name: "zero min days", mutate: func(l *RentalListingCreation) { l.Periods = []Period{{MinDays: 0, MaxDays: 2, PricePerDay: "1"}} }},
		{name: "fractional price", mutate: func(l *RentalListingCreation) { l.Periods = []Period{{MinDays: 1, MaxDays: 2, PricePerDay: "1.5"}} }},
		{name: "negative price", mutate: func(l *RentalListingCreation) { l.Periods = []Period{{MinDays: 1, MaxDays: 2, PricePerDay: "-1"}} }},
		{name: "missing token", mutate: func(l *RentalListingCreation) { l.TokenID = "" }},
		{name: "non numeric token", mutate: func(l *RentalListingCreation) { l.TokenID = "0x1" }},
		{name: "bad contract address", mutate: func(l *RentalListingCreation) { l.ContractAddress = "0xabc" }},
		{name: "bad target", mutate: func(l *RentalListingCreation) { l.Target = "land" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := valid
			listing.Periods = append([]Period(nil), valid.Periods...)
			tt.mutate(&listing)
			assert.Error(t, listing.Validate())
		})
	}
}

func TestRentalListingCreation_TargetOrZero(t *testing.T) {
	assert.Equal(t, ETHEREUM_ZERO_ADDRESS, RentalListingCreation{}.TargetOrZero())
	assert.Equal(t, "0xabc", RentalListingCreation{Target: "0xabc"}.TargetOrZero())
}

func TestRentalsListingsQuery_Paging(t *testing.T) {
	assert.Equal(t, MAX_PAGE_SIZE, RentalsListingsQuery{}.NormalizedLimit())
	assert.Equal(t, MAX_PAGE_SIZE, RentalsListingsQuery{Limit: 500}.NormalizedLimit())
	assert.Equal(t, 10, RentalsListingsQuery{Limit: 10}.NormalizedLimit())
	assert.Equal(t, 20, RentalsListingsQuery{Limit: 10, Page: 2}.Offset())
	assert.Equal(t, 0, RentalsListingsQuery{Limit: 10, Page: -1}.Offset())
}
