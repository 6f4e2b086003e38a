package port

import (
	"context"

	wire "wallet_connector/internal/entity"
)

// BalanceProvider is the primary (REST) balance source:
// GET /v1/{currencyId}/account/{address}/balance.
type BalanceProvider interface {
	GetAccountBalance(ctx context.Context, currencyID, address string) ([]wire.GateBalanceEntry, error)
}

// FeeProvider is the primary (REST) fee estimation source:
// POST /v1/{network}/transaction/estimate.
type FeeProvider interface {
	EstimateTransaction(ctx context.Context, network string, req wire.GateEstimateRequest) (*wire.GateEstimateResponse, error)
}

// SpotRateProvider resolves spot rates for a set of currency ids against a
// target fiat currency. Missing ids are simply absent from the result map.
type SpotRateProvider interface {
	GetSpotRates(ctx context.Context, currencyIDs []string, to string) (map[string]float64, error)
}

// ExplorerProvider fetches raw transactions for an address, newest first,
// with input data stripped and relevance filtering enabled. pageToken is the
// opaque cursor from a previous page, empty for the first one.
type ExplorerProvider interface {
	GetAddressTransactions(ctx context.Context, blockchain, address string, batchSize int, pageToken string) (*wire.ExplorerTxPage, error)
}
