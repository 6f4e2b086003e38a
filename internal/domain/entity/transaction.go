package entity

// Transaction direction as seen from the enriched account's address.
const (
	TransactionTypeSent     = "sent"
	TransactionTypeReceived = "received"
)

// TransactionHistoryItem is one classified entry of an account's recent
// activity. Value is a decimal integer string in atomic units; Timestamp
// is RFC3339.
type TransactionHistoryItem struct {
	Hash      string `json:"hash"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	Timestamp string `json:"timestamp"`
}

// TransactionHistoryPage is a single explorer page of classified items plus
// the opaque pagination token for requesting the next one. The token is
// passed through unmodified.
type TransactionHistoryPage struct {
	Items         []TransactionHistoryItem `json:"items"`
	NextPageToken string                   `json:"nextPageToken,omitempty"`
}

// GasFeeEstimation carries the three EIP-1559 fee parameters as hex-encoded
// integer strings.
type GasFeeEstimation struct {
	GasLimit             string `json:"gasLimit"`
	MaxFeePerGas         string `json:"maxFeePerGas"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas"`
}

// TransactionRequest is a partially specified transaction on its way to the
// external signing collaborator. Empty string fields are "unset"; ChainID 0
// is "unset". Value, Gas, fee fields and Nonce are hex-encoded quantities.
type TransactionRequest struct {
	From                 string `json:"from"`
	To                   string `json:"to"`
	Value                string `json:"value,omitempty"`
	Data                 string `json:"data,omitempty"`
	ChainID              uint64 `json:"chainId,omitempty"`
	Gas                  string `json:"gas,omitempty"`
	MaxFeePerGas         string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas,omitempty"`
	Nonce                string `json:"nonce,omitempty"`
}

// HasFees reports whether any of the gas/fee fields is already set. Fee
// estimation fills all three together or not at all.
func (t TransactionRequest) HasFees() bool {
	return t.Gas != "" || t.MaxFeePerGas != "" || t.MaxPriorityFeePerGas != ""
}
