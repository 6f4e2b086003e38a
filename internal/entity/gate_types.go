package entity

// GateBalanceEntry is one element of the gate balance response:
// GET /v1/{currencyId}/account/{address}/balance returns an array of these,
// the native entry first followed by one entry per token position.
type GateBalanceEntry struct {
	Value string    `json:"value"`
	Asset GateAsset `json:"asset"`
}

// GateAsset describes what a balance entry is denominated in. Type is
// "native" for the chain currency or "erc20"/"erc721"/"erc1155" for tokens,
// in which case AssetReference carries the contract address.
type GateAsset struct {
	Type           string `json:"type"`
	AssetReference string `json:"assetReference,omitempty"`
	Name           string `json:"name,omitempty"`
	Ticker         string `json:"ticker,omitempty"`
	Decimals       int    `json:"decimals,omitempty"`
}

// GateEstimateRequest is the body of POST /v1/{network}/transaction/estimate.
type GateEstimateRequest struct {
	Intent GateTransactionIntent `json:"intent"`
}

// GateTransactionIntent describes the transaction being estimated.
type GateTransactionIntent struct {
	Type         string    `json:"type"`
	Sender       string    `json:"sender"`
	Recipient    string    `json:"recipient"`
	Amount       string    `json:"amount"`
	Asset        GateAsset `json:"asset"`
	FeesStrategy string    `json:"feesStrategy"`
	Data         string    `json:"data,omitempty"`
}

// GateEstimateResponse is the gate's fee estimate envelope.
type GateEstimateResponse struct {
	Value      string                 `json:"value"`
	Parameters GateEstimateParameters `json:"parameters"`
}

// GateEstimateParameters carries the EIP-1559 parameters of an estimate.
// GasOptions (per-strategy presets) is kept opaque; only the medium values
// surfaced at the top level are consumed here.
type GateEstimateParameters struct {
	GasLimit             string                 `json:"gasLimit"`
	MaxFeePerGas         string                 `json:"maxFeePerGas"`
	MaxPriorityFeePerGas string                 `json:"maxPriorityFeePerGas"`
	NextBaseFee          string                 `json:"nextBaseFee,omitempty"`
	GasOptions           map[string]interface{} `json:"gasOptions,omitempty"`
}
