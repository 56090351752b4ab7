package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures a rentals operation can surface to its caller
type ErrorKind string

const (
	KindContractNotFound     ErrorKind = "contract_not_found"
	KindInvalidSignature     ErrorKind = "invalid_signature"
	KindRentalAlreadyExpired ErrorKind = "rental_already_expired"
	KindRentalAlreadyExists  ErrorKind = "rental_already_exists"
	KindNFTNotFound          ErrorKind = "nft_not_found"
	KindUnauthorizedToRent   ErrorKind = "unauthorized_to_rent"
	KindInvalidEstate        ErrorKind = "invalid_estate"
	KindRentalNotFound       ErrorKind = "rental_not_found"
	KindCreationFailed       ErrorKind = "creation_failed"
)

// LegacyVSignatureMessage is the reason given when a signature carries V as 0 or 1
const LegacyVSignatureMessage = "The server does not accept ECDSA signatures with V as 0 or 1"

// Error is a rentals error carrying its kind and the offending identifiers
type Error struct {
	Kind    ErrorKind
	Message string
	Data    map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrContractNotFound     = &Error{Kind: KindContractNotFound}
	ErrInvalidSignature     = &Error{Kind: KindInvalidSignature}
	ErrRentalAlreadyExpired = &Error{Kind: KindRentalAlreadyExpired}
	ErrRentalAlreadyExists  = &Error{Kind: KindRentalAlreadyExists}
	ErrNFTNotFound          = &Error{Kind: KindNFTNotFound}
	ErrUnauthorizedToRent   = &Error{Kind: KindUnauthorizedToRent}
	ErrInvalidEstate        = &Error{Kind: KindInvalidEstate}
	ErrRentalNotFound       = &Error{Kind: KindRentalNotFound}
	ErrCreationFailed       = &Error{Kind: KindCreationFailed}
)

// KindOf returns the kind of a rentals error, or "" if err is not one
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func NewContractNotFoundError(contractName ContractName, chainID ChainID) *Error {
	return &Error{
		Kind:    KindContractNotFound,
		Message: fmt.Sprintf("Contract %s not found for chain %d", contractName, chainID),
		Data:    map[string]any{"contractName": string(contractName), "chainId": int64(chainID)},
	}
}

func NewInvalidSignatureError(reason string) *Error {
	message := "The signature is invalid"
	if reason != "" {
		message = reason
	}
	return &Error{
		Kind:    KindInvalidSignature,
		Message: message,
	}
}

func NewRentalAlreadyExpiredError(contractAddress, tokenID string, expiration int64) *Error {
	return &Error{
		Kind:    KindRentalAlreadyExpired,
		Message: "The rental listing expiration date is in the past",
		Data:    map[string]any{"contractAddress": contractAddress, "tokenId": tokenID, "expiration": expiration},
	}
}

func NewRentalAlreadyExistsError(contractAddress, tokenID string) *Error {
	return &Error{
		Kind:    KindRentalAlreadyExists,
		Message: fmt.Sprintf("An open rental listing already exists for the token %s of contract %s", tokenID, contractAddress),
		Data:    map[string]any{"contractAddress": contractAddress, "tokenId": tokenID},
	}
}

func NewNFTNotFoundError(contractAddress, tokenID string) *Error {
	return &Error{
		Kind:    KindNFTNotFound,
		Message: fmt.Sprintf("The NFT %s of contract %s was not found", tokenID, contractAddress),
		Data:    map[string]any{"contractAddress": contractAddress, "tokenId": tokenID},
	}
}

func NewUnauthorizedToRentError(ownerAddress, lessorAddress string) *Error {
	return &Error{
		Kind:    KindUnauthorizedToRent,
		Message: fmt.Sprintf("The owner of the token %s is not the lessor %s", ownerAddress, lessorAddress),
		Data:    map[string]any{"ownerAddress": ownerAddress, "lessorAddress": lessorAddress},
	}
}

func NewInvalidEstateError(contractAddress, tokenID string) *Error {
	return &Error{
		Kind:    KindInvalidEstate,
		Message: fmt.Sprintf("The estate %s of contract %s is dissolved", tokenID, contractAddress),
		Data:    map[string]any{"contractAddress": contractAddress, "tokenId": tokenID},
	}
}

func NewRentalNotFoundError(id string) *Error {
	return &Error{
		Kind:    KindRentalNotFound,
		Message: fmt.Sprintf("The rental %s was not found", id),
		Data:    map[string]any{"id": id},
	}
}

func NewCreationFailedError(cause error) *Error {
	return &Error{
		Kind:    KindCreationFailed,
		Message: "Failed to create the rental listing",
		cause:   cause,
	}
}
