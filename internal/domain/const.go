package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// Listing constants
	NONCES_LENGTH = 3
	MIN_PERIODS   = 1
	MAX_PERIODS   = 100
	MAX_PAGE_SIZE = 50
	DEFAULT_NONCE = "0"

	// Subgraph page size, the maximum `first` accepted by the graph node
	SUBGRAPH_PAGE = 1000
)

// DefaultNonces is the nonce set given to rentals discovered on-chain without a listing
func DefaultNonces() []string {
	return []string{DEFAULT_NONCE, DEFAULT_NONCE, DEFAULT_NONCE}
}
