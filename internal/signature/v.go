package signature

import (
	"fmt"
	"strconv"
	"strings"
)

// ECDSA signatures are r (32 bytes) + s (32 bytes) + v (1 byte), hex encoded
const signatureHexLength = 130

// splitSignature returns the 0x prefix, the r||s part and the V byte of a hex signature.
// ok is false when the signature is not a 65-byte hex string.
func splitSignature(signature string) (prefix string, rs string, v uint64, ok bool) {
	body := signature
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		prefix, body = body[:2], body[2:]
	}
	if len(body) != signatureHexLength {
		return "", "", 0, false
	}
	v, err := strconv.ParseUint(body[signatureHexLength-2:], 16, 8)
	if err != nil {
		return "", "", 0, false
	}
	return prefix, body[:signatureHexLength-2], v, true
}

// HasValidV reports whether the trailing byte of a 65-byte signature is 27 or 28.
// Signatures of any other length cannot be checked and are reported as valid.
func HasValidV(signature string) bool {
	body := strings.TrimPrefix(strings.TrimPrefix(signature, "0x"), "0X")
	if len(body) != signatureHexLength {
		return true
	}
	_, _, v, ok := splitSignature(signature)
	if !ok {
		return false
	}
	return v == 27 || v == 28
}

// NormalizeToValidV adds 27 to the V byte of a signature produced with V as 0 or 1
func NormalizeToValidV(signature string) string {
	if HasValidV(signature) {
		return signature
	}
	prefix, rs, v, ok := splitSignature(signature)
	if !ok {
		return signature
	}
	return prefix + rs + fmt.Sprintf("%02x", byte(v+27))
}

// NormalizeToLegacyV subtracts 27 from the V byte of a canonical signature
func NormalizeToLegacyV(signature string) string {
	prefix, rs, v, ok := splitSignature(signature)
	if !ok || !HasValidV(signature) {
		return signature
	}
	return prefix + rs + fmt.Sprintf("%02x", byte(v-27))
}
