package port

import (
	"context"
	"math/big"

	"wallet_connector/internal/domain/entity"
)

// EstimateGasCall is the argument object of eth_estimateGas. All fields are
// hex-encoded; empty fields are omitted from the call.
type EstimateGasCall struct {
	From  string
	To    string
	Value string
	Input string
}

// NodeGateway is the backend JSON-RPC relay, addressed per chain. Each
// method performs exactly one RPC call; tiering and defaults are the
// caller's concern.
type NodeGateway interface {
	// GetBalance performs eth_getBalance(address, "latest").
	GetBalance(ctx context.Context, chainID uint64, address string) (*big.Int, error)

	// EstimateGas performs eth_estimateGas(call, "latest").
	EstimateGas(ctx context.Context, chainID uint64, call EstimateGasCall) (uint64, error)

	// LatestBaseFee performs eth_getBlockByNumber("latest", false) and reads
	// baseFeePerGas from the result.
	LatestBaseFee(ctx context.Context, chainID uint64) (*big.Int, error)

	// MaxPriorityFeePerGas performs eth_maxPriorityFeePerGas().
	MaxPriorityFeePerGas(ctx context.Context, chainID uint64) (*big.Int, error)

	// TransactionCount performs eth_getTransactionCount(address, "latest").
	TransactionCount(ctx context.Context, chainID uint64, address string) (uint64, error)
}

// NetworkDefinitionProvider resolves chain metadata for the networks this
// connector supports.
type NetworkDefinitionProvider interface {
	ByChainID(chainID uint64) (entity.NetworkDefinition, bool)
	ByCurrencyID(currencyID string) (entity.NetworkDefinition, bool)
	All() []entity.NetworkDefinition
}
