package entity

// NetworkDefinition describes one supported EVM-compatible chain: how the
// gate provider names it, which currency id / ticker it maps to and the unit
// scale of its native balance.
type NetworkDefinition struct {
	ChainID     uint64 `json:"chainId" yaml:"chainId"`
	Name        string `json:"name" yaml:"name"` // gate/explorer network name, e.g. "ethereum"
	CurrencyID  string `json:"currencyId" yaml:"currencyId"`
	Ticker      string `json:"ticker" yaml:"ticker"`
	Decimals    int32  `json:"decimals" yaml:"decimals"`
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
}
