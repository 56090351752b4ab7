package signature

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/feral-file/ff-land-rentals/internal/domain"
)

const (
	domainName    = "Rentals"
	domainVersion = "1"
	primaryType   = "Listing"
)

// Verifier verifies off-chain rental listing signatures
//
//go:generate mockgen -source=verifier.go -destination=../mocks/signature_verifier.go -package=mocks -mock_names=Verifier=MockSignatureVerifier
type Verifier interface {
	// Verify reports whether signer produced the listing signature with a canonical V.
	// It fails with a ContractNotFound error when the chain has no Rentals contract.
	Verify(listing domain.RentalListingCreation, signer string) (bool, error)
}

type verifier struct {
	contracts *domain.ContractRegistry
}

// NewVerifier creates a new signature verifier backed by the contract registry
func NewVerifier(contracts *domain.ContractRegistry) Verifier {
	return &verifier{contracts: contracts}
}

// Verify recovers the signer of the listing typed data.
// Legacy V signatures are normalized before recovery but still reported as not valid.
func (v *verifier) Verify(listing domain.RentalListingCreation, signer string) (bool, error) {
	verifyingContract, err := v.contracts.Address(domain.ContractNameRentals, listing.ChainID)
	if err != nil {
		return false, err
	}

	hash, err := ListingHash(listing, signer, verifyingContract)
	if err != nil {
		return false, fmt.Errorf("failed to hash listing: %w", err)
	}

	recovered, err := recoverAddress(hash, NormalizeToValidV(listing.Signature))
	if err != nil {
		return false, nil
	}

	return domain.EqualAddress(recovered.Hex(), signer) && HasValidV(listing.Signature), nil
}

// ListingHash returns the EIP-712 digest the lessor signs for a listing
func ListingHash(listing domain.RentalListingCreation, signer string, verifyingContract string) ([]byte, error) {
	hash, _, err := apitypes.TypedDataAndHash(TypedData(listing, signer, verifyingContract))
	if err != nil {
		return nil, err
	}
	return hash, nil
}

// TypedData builds the EIP-712 payload of a listing.
// The domain salt is the chain id left-padded to 32 bytes.
func TypedData(listing domain.RentalListingCreation, signer string, verifyingContract string) apitypes.TypedData {
	pricePerDay := make([]interface{}, len(listing.Periods))
	maxDays := make([]interface{}, len(listing.Periods))
	minDays := make([]interface{}, len(listing.Periods))
	for i, period := range listing.Periods {
		pricePerDay[i] = period.PricePerDay
		maxDays[i] = strconv.Itoa(period.MaxDays)
		minDays[i] = strconv.Itoa(period.MinDays)
	}

	indexes := make([]interface{}, len(listing.Nonces))
	for i, nonce := range listing.Nonces {
		indexes[i] = nonce
	}

	salt := common.LeftPadBytes(big.NewInt(int64(listing.ChainID)).Bytes(), 32)

	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "verifyingContract", Type: "address"},
				{Name: "salt", Type: "bytes32"},
			},
			primaryType: {
				{Name: "signer", Type: "address"},
				{Name: "contractAddress", Type: "address"},
				{Name: "tokenId", Type: "uint256"},
				{Name: "expiration", Type: "uint256"},
				{Name: "indexes", Type: "uint256[3]"},
				{Name: "pricePerDay", Type: "uint256[]"},
				{Name: "maxDays", Type: "uint256[]"},
				{Name: "minDays", Type: "uint256[]"},
				{Name: "target", Type: "address"},
			},
		},
		PrimaryType: primaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              domainName,
			Version:           domainVersion,
			VerifyingContract: verifyingContract,
			Salt:              hexutil.Encode(salt),
		},
		Message: apitypes.TypedDataMessage{
			"signer":          signer,
			"contractAddress": listing.ContractAddress,
			"tokenId":         listing.TokenID,
			"expiration":      strconv.FormatInt(listing.Expiration/1000, 10),
			"indexes":         indexes,
			"pricePerDay":     pricePerDay,
			"maxDays":         maxDays,
			"minDays":         minDays,
			"target":          listing.TargetOrZero(),
		},
	}
}

// recoverAddress recovers the address that signed hash. The signature must carry V as 27 or 28.
func recoverAddress(hash []byte, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to decode signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length %d", len(sig))
	}
	if sig[crypto.RecoveryIDOffset] < 27 {
		return common.Address{}, fmt.Errorf("invalid signature recovery byte %d", sig[crypto.RecoveryIDOffset])
	}
	sig[crypto.RecoveryIDOffset] -= 27

	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
