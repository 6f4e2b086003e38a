package service

import (
	"context"
	"errors"
	"math"
	"math/big"
	"sync"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/domain/entity"
	wire "wallet_connector/internal/entity"
	"wallet_connector/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Last-resort fee parameters used when an individual RPC fallback call
// fails. Deliberately conservative placeholders, not real market values.
const (
	fallbackGasLimit      = 90000
	fallbackBaseFee       = 2000000
	fallbackPriorityFee   = 20000
	estimateGasHeadroom   = 1.2
	intentTypeSend        = "send"
	intentFeesStrategyMid = "medium"
	intentAssetTypeNative = "native"
)

var errChainIDUnset = errors.New("transaction carries no chain id")

// FeeEstimator produces EIP-1559 fee parameters and nonces for a
// transaction. Tier one is the gate estimate endpoint for networks it
// supports; tier two is three independent JSON-RPC calls, each with its own
// hardcoded default.
type FeeEstimator struct {
	feeProvider port.FeeProvider
	nodeGateway port.NodeGateway
	networks    port.NetworkDefinitionProvider
	logger      port.Logger
}

// NewFeeEstimator creates a new FeeEstimator.
func NewFeeEstimator(
	fp port.FeeProvider,
	ng port.NodeGateway,
	np port.NetworkDefinitionProvider,
	l port.Logger,
) *FeeEstimator {
	return &FeeEstimator{
		feeProvider: fp,
		nodeGateway: ng,
		networks:    np,
		logger:      l,
	}
}

// GetFeesForTransaction estimates gas limit and fees for the transaction.
// Unsupported chains skip the gate tier and go straight to the RPC path.
func (e *FeeEstimator) GetFeesForTransaction(ctx context.Context, tx entity.TransactionRequest) (*entity.GasFeeEstimation, error) {
	if tx.ChainID == 0 {
		return nil, &entity.FeeEstimationError{ChainID: 0, Err: errChainIDUnset}
	}

	if network, supported := e.networks.ByChainID(tx.ChainID); supported {
		estimate, err := e.feeProvider.EstimateTransaction(ctx, network.Name, wire.GateEstimateRequest{
			Intent: wire.GateTransactionIntent{
				Type:         intentTypeSend,
				Sender:       tx.From,
				Recipient:    tx.To,
				Amount:       tx.Value,
				Asset:        wire.GateAsset{Type: intentAssetTypeNative},
				FeesStrategy: intentFeesStrategyMid,
				Data:         tx.Data,
			},
		})
		if err == nil {
			return &entity.GasFeeEstimation{
				GasLimit:             estimate.Parameters.GasLimit,
				MaxFeePerGas:         estimate.Parameters.MaxFeePerGas,
				MaxPriorityFeePerGas: estimate.Parameters.MaxPriorityFeePerGas,
			}, nil
		}
		e.logger.Warn("Gate fee estimation failed, falling back to RPC",
			"chain_id", tx.ChainID, "network", network.Name, "error", err)
	} else {
		e.logger.Debug("Chain not supported by gate, using RPC fee path", "chain_id", tx.ChainID)
	}

	metrics.ProviderFallbacks.WithLabelValues("fees").Inc()
	return e.estimateViaRPC(ctx, tx), nil
}

// estimateViaRPC performs the three independent fallback calls. Each one
// substitutes its default on failure, so this tier always yields a result.
func (e *FeeEstimator) estimateViaRPC(ctx context.Context, tx entity.TransactionRequest) *entity.GasFeeEstimation {
	gasLimit := uint64(fallbackGasLimit)
	baseFee := big.NewInt(fallbackBaseFee)
	priorityFee := big.NewInt(fallbackPriorityFee)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		estimated, err := e.nodeGateway.EstimateGas(ctx, tx.ChainID, port.EstimateGasCall{
			From:  tx.From,
			To:    tx.To,
			Value: tx.Value,
			Input: tx.Data,
		})
		if err != nil {
			e.logger.Warn("eth_estimateGas failed, using default gas limit",
				"chain_id", tx.ChainID, "default", fallbackGasLimit, "error", err)
			return
		}
		// headroom against estimation drift between now and signing
		gasLimit = uint64(math.Round(float64(estimated) * estimateGasHeadroom))
	}()

	go func() {
		defer wg.Done()
		fee, err := e.nodeGateway.LatestBaseFee(ctx, tx.ChainID)
		if err != nil {
			e.logger.Warn("baseFeePerGas lookup failed, using default",
				"chain_id", tx.ChainID, "default", fallbackBaseFee, "error", err)
			return
		}
		baseFee = fee
	}()

	go func() {
		defer wg.Done()
		fee, err := e.nodeGateway.MaxPriorityFeePerGas(ctx, tx.ChainID)
		if err != nil {
			e.logger.Warn("eth_maxPriorityFeePerGas failed, using default",
				"chain_id", tx.ChainID, "default", fallbackPriorityFee, "error", err)
			return
		}
		priorityFee = fee
	}()

	wg.Wait()

	// 2*baseFee keeps the transaction valid across ~6 consecutive full
	// blocks of 12.5% base-fee growth
	maxFee := new(big.Int).Add(new(big.Int).Lsh(baseFee, 1), priorityFee)

	return &entity.GasFeeEstimation{
		GasLimit:             hexutil.EncodeUint64(gasLimit),
		MaxFeePerGas:         hexutil.EncodeBig(maxFee),
		MaxPriorityFeePerGas: hexutil.EncodeBig(priorityFee),
	}
}

// GetNonceForTx resolves the "latest" nonce of the sender. On failure the
// nonce is unknown and the error is returned; callers must not substitute
// zero.
func (e *FeeEstimator) GetNonceForTx(ctx context.Context, tx entity.TransactionRequest) (string, error) {
	if tx.ChainID == 0 {
		return "", &entity.FeeEstimationError{ChainID: 0, Err: errChainIDUnset}
	}
	count, err := e.nodeGateway.TransactionCount(ctx, tx.ChainID, tx.From)
	if err != nil {
		e.logger.Warn("Nonce lookup failed", "chain_id", tx.ChainID, "from", tx.From, "error", err)
		return "", err
	}
	return hexutil.EncodeUint64(count), nil
}
