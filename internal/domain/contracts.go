package domain

import "strings"

// ContractName names a contract in the registry
type ContractName string

const (
	ContractNameRentals ContractName = "Rentals"
)

var defaultContracts = map[ContractName]map[ChainID]string{
	ContractNameRentals: {
		ChainIDEthereumMainnet: "0x3a1469499d0be105d4f77045ca403a5f6dc2f3f5",
	},
}

// ContractRegistry resolves contract addresses per chain
type ContractRegistry struct {
	addresses map[ContractName]map[ChainID]string
}

// NewContractRegistry creates a registry seeded with the known deployments.
// rentalsOverrides replaces or adds Rentals addresses per chain.
func NewContractRegistry(rentalsOverrides map[ChainID]string) *ContractRegistry {
	addresses := make(map[ContractName]map[ChainID]string, len(defaultContracts))
	for name, byChain := range defaultContracts {
		addresses[name] = make(map[ChainID]string, len(byChain))
		for chainID, address := range byChain {
			addresses[name][chainID] = address
		}
	}
	for chainID, address := range rentalsOverrides {
		if address == "" {
			continue
		}
		addresses[ContractNameRentals][chainID] = strings.ToLower(address)
	}

	return &ContractRegistry{addresses: addresses}
}

// Address returns the contract address for the chain or a ContractNotFound error
func (r *ContractRegistry) Address(name ContractName, chainID ChainID) (string, error) {
	address, ok := r.addresses[name][chainID]
	if !ok {
		return "", NewContractNotFoundError(name, chainID)
	}
	return address, nil
}
