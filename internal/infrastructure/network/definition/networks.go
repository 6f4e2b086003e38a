package definition

import (
	"strings"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/domain/entity"
)

// Predefined network definitions for the chains the gate provider supports.
// Chains outside this table skip the gate tier and go straight to the RPC
// fallback.
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		ChainID:     1,
		Name:        "ethereum",
		CurrencyID:  "ethereum",
		Ticker:      "ETH",
		Decimals:    18,
		DisplayName: "Ethereum Mainnet",
	}
	Optimism = entity.NetworkDefinition{
		ChainID:     10,
		Name:        "optimism",
		CurrencyID:  "optimism",
		Ticker:      "ETH",
		Decimals:    18,
		DisplayName: "OP Mainnet",
	}
	BSC = entity.NetworkDefinition{
		ChainID:     56,
		Name:        "bsc",
		CurrencyID:  "bsc",
		Ticker:      "BNB",
		Decimals:    18,
		DisplayName: "BNB Smart Chain",
	}
	Polygon = entity.NetworkDefinition{
		ChainID:     137,
		Name:        "polygon",
		CurrencyID:  "polygon",
		Ticker:      "POL",
		Decimals:    18,
		DisplayName: "Polygon PoS",
	}
	Base = entity.NetworkDefinition{
		ChainID:     8453,
		Name:        "base",
		CurrencyID:  "base",
		Ticker:      "ETH",
		Decimals:    18,
		DisplayName: "Base Mainnet",
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:     42161,
		Name:        "arbitrum",
		CurrencyID:  "arbitrum",
		Ticker:      "ETH",
		Decimals:    18,
		DisplayName: "Arbitrum One",
	}
	Avalanche = entity.NetworkDefinition{
		ChainID:     43114,
		Name:        "avalanche_c_chain",
		CurrencyID:  "avalanche_c_chain",
		Ticker:      "AVAX",
		Decimals:    18,
		DisplayName: "Avalanche C-Chain",
	}
)

// NetworkDefinitionProvider implements port.NetworkDefinitionProvider over
// the predefined table.
type NetworkDefinitionProvider struct {
	byChainID    map[uint64]entity.NetworkDefinition
	byCurrencyID map[string]entity.NetworkDefinition
	ordered      []entity.NetworkDefinition
}

// NewProvider creates a provider over the default network table.
func NewProvider() port.NetworkDefinitionProvider {
	return NewProviderWithNetworks([]entity.NetworkDefinition{
		Ethereum, Optimism, BSC, Polygon, Base, Arbitrum, Avalanche,
	})
}

// NewProviderWithNetworks creates a provider over an explicit network list,
// e.g. when config overrides the defaults.
func NewProviderWithNetworks(networks []entity.NetworkDefinition) port.NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		byChainID:    make(map[uint64]entity.NetworkDefinition, len(networks)),
		byCurrencyID: make(map[string]entity.NetworkDefinition, len(networks)),
		ordered:      networks,
	}
	for _, n := range networks {
		p.byChainID[n.ChainID] = n
		p.byCurrencyID[strings.ToLower(n.CurrencyID)] = n
	}
	return p
}

// ByChainID returns the definition for a chain id.
func (p *NetworkDefinitionProvider) ByChainID(chainID uint64) (entity.NetworkDefinition, bool) {
	n, ok := p.byChainID[chainID]
	return n, ok
}

// ByCurrencyID returns the definition for a currency id (case-insensitive).
func (p *NetworkDefinitionProvider) ByCurrencyID(currencyID string) (entity.NetworkDefinition, bool) {
	n, ok := p.byCurrencyID[strings.ToLower(currencyID)]
	return n, ok
}

// All returns the definitions in declaration order.
func (p *NetworkDefinitionProvider) All() []entity.NetworkDefinition {
	out := make([]entity.NetworkDefinition, len(p.ordered))
	copy(out, p.ordered)
	return out
}
