package entity

// ExplorerTxPage is the envelope of
// GET /blockchain/v4/{blockchain}/address/{address}/txs.
// Token is the opaque pagination cursor; null when the last page is reached.
type ExplorerTxPage struct {
	Data  []ExplorerTransaction `json:"data"`
	Token string                `json:"token"`
}

// ExplorerTransaction is one raw transaction as returned by the explorer,
// with input data already stripped (noinput=true).
type ExplorerTransaction struct {
	Hash           string                  `json:"hash"`
	From           string                  `json:"from"`
	To             string                  `json:"to"`
	Value          string                  `json:"value"`
	ReceivedAt     string                  `json:"received_at"`
	Block          *ExplorerBlock          `json:"block"`
	TransferEvents []ExplorerTransferEvent `json:"transfer_events"`
	Actions        []ExplorerAction        `json:"actions"`
}

// ExplorerBlock is the mined-block reference of a transaction; nil while the
// transaction is still pending.
type ExplorerBlock struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
	Time   string `json:"time"`
}

// ExplorerTransferEvent is an ERC-20/721/1155 transfer decoded from the
// transaction receipt. Count is the transferred amount as a decimal integer
// string in the token's atomic unit.
type ExplorerTransferEvent struct {
	Contract string `json:"contract"`
	From     string `json:"from"`
	To       string `json:"to"`
	Count    string `json:"count"`
}

// ExplorerAction is an internal native-value transfer executed inside the
// transaction (e.g. by a contract call).
type ExplorerAction struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
}
