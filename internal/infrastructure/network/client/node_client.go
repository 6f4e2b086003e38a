package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"wallet_connector/internal/app/port"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// relayBlockchainName is the blockchain family the relay envelope carries.
// All supported chains are EVM-compatible and addressed as "ethereum" plus
// their chain id.
const relayBlockchainName = "ethereum"

// NodeClient performs JSON-RPC calls against the backend relay for one
// chain. Each method is exactly one call; no retries.
type NodeClient struct {
	rpcClient      *rpc.Client
	chainID        uint64
	rpcCallTimeout time.Duration
}

// NewNodeClient dials the relay endpoint for the given chain id.
func NewNodeClient(baseURL string, chainID uint64, connectionTimeout, rpcCallTimeout time.Duration) (*NodeClient, error) {
	endpoint := fmt.Sprintf("%s/blockchain/%s/%d", strings.TrimRight(baseURL, "/"), relayBlockchainName, chainID)

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to node gateway %s: %w", endpoint, err)
	}
	return &NodeClient{rpcClient: rpcClient, chainID: chainID, rpcCallTimeout: rpcCallTimeout}, nil
}

// GetBalance fetches the native balance in wei.
func (c *NodeClient) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	var result hexutil.Big
	if err := c.rpcClient.CallContext(callCtx, &result, "eth_getBalance", common.HexToAddress(address), "latest"); err != nil {
		return nil, fmt.Errorf("eth_getBalance for %s on chain %d failed: %w", address, c.chainID, err)
	}
	return (*big.Int)(&result), nil
}

// EstimateGas estimates the gas a call would consume.
func (c *NodeClient) EstimateGas(ctx context.Context, call port.EstimateGasCall) (uint64, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	args := map[string]interface{}{}
	if call.From != "" {
		args["from"] = call.From
	}
	if call.To != "" {
		args["to"] = call.To
	}
	if call.Value != "" {
		args["value"] = call.Value
	}
	if call.Input != "" {
		args["input"] = call.Input
	}

	var result hexutil.Uint64
	if err := c.rpcClient.CallContext(callCtx, &result, "eth_estimateGas", args, "latest"); err != nil {
		return 0, fmt.Errorf("eth_estimateGas on chain %d failed: %w", c.chainID, err)
	}
	return uint64(result), nil
}

// LatestBaseFee reads baseFeePerGas from the latest block header.
func (c *NodeClient) LatestBaseFee(ctx context.Context) (*big.Int, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	var head struct {
		BaseFeePerGas *hexutil.Big `json:"baseFeePerGas"`
	}
	if err := c.rpcClient.CallContext(callCtx, &head, "eth_getBlockByNumber", "latest", false); err != nil {
		return nil, fmt.Errorf("eth_getBlockByNumber on chain %d failed: %w", c.chainID, err)
	}
	if head.BaseFeePerGas == nil {
		return nil, fmt.Errorf("latest block on chain %d carries no baseFeePerGas", c.chainID)
	}
	return (*big.Int)(head.BaseFeePerGas), nil
}

// MaxPriorityFeePerGas fetches the suggested priority fee.
func (c *NodeClient) MaxPriorityFeePerGas(ctx context.Context) (*big.Int, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	var result hexutil.Big
	if err := c.rpcClient.CallContext(callCtx, &result, "eth_maxPriorityFeePerGas"); err != nil {
		return nil, fmt.Errorf("eth_maxPriorityFeePerGas on chain %d failed: %w", c.chainID, err)
	}
	return (*big.Int)(&result), nil
}

// TransactionCount fetches the "latest" nonce of an address.
func (c *NodeClient) TransactionCount(ctx context.Context, address string) (uint64, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	var result hexutil.Uint64
	if err := c.rpcClient.CallContext(callCtx, &result, "eth_getTransactionCount", common.HexToAddress(address), "latest"); err != nil {
		return 0, fmt.Errorf("eth_getTransactionCount for %s on chain %d failed: %w", address, c.chainID, err)
	}
	return uint64(result), nil
}
