package types

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

var numericRegex = regexp.MustCompile(`^[0-9]+$`)

// Ptr returns a pointer to a copy of v
func Ptr[T any](v T) *T {
	return &v
}

// SafeString returns a safe string from a pointer to a string
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsNumeric checks if a string is a non-negative integer written in decimal digits
func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// IsEthereumAddress checks if a string is a valid Ethereum address
func IsEthereumAddress(s string) bool {
	return common.IsHexAddress(s)
}
