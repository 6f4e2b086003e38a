package service

import (
	"context"
	"fmt"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/domain/entity"
	"wallet_connector/internal/pkg/metrics"
)

// TransactionAssembler completes a partial transaction request so it is
// ready to hand off for signing. Unlike the account hydrators this path is
// strict: a transaction with guessed fees or a guessed nonce would be signed
// and broadcast, so every unresolved field aborts assembly.
type TransactionAssembler struct {
	fees      *FeeEstimator
	walletCtx port.WalletContext
	logger    port.Logger
}

// NewTransactionAssembler creates a new TransactionAssembler.
func NewTransactionAssembler(fe *FeeEstimator, wc port.WalletContext, l port.Logger) *TransactionAssembler {
	return &TransactionAssembler{fees: fe, walletCtx: wc, logger: l}
}

// Assemble fills chain id, fee parameters and nonce, in that order. Fields
// already present on the request are kept as-is.
func (a *TransactionAssembler) Assemble(ctx context.Context, tx entity.TransactionRequest) (entity.TransactionRequest, error) {
	if tx.ChainID == 0 {
		tx.ChainID = a.walletCtx.Current().ChainID
	}
	if tx.ChainID == 0 {
		metrics.AssemblyFailures.Inc()
		return tx, &entity.FeeEstimationError{ChainID: 0, Err: errChainIDUnset}
	}

	if !tx.HasFees() {
		estimation, err := a.fees.GetFeesForTransaction(ctx, tx)
		if err != nil {
			a.logger.Error("Transaction assembly failed at fee estimation",
				"chain_id", tx.ChainID, "from", tx.From, "error", err)
			metrics.AssemblyFailures.Inc()
			return tx, fmt.Errorf("failed to estimate fees: %w", err)
		}
		tx.Gas = estimation.GasLimit
		tx.MaxFeePerGas = estimation.MaxFeePerGas
		tx.MaxPriorityFeePerGas = estimation.MaxPriorityFeePerGas
	}

	if tx.Nonce == "" {
		nonce, err := a.fees.GetNonceForTx(ctx, tx)
		if err != nil {
			a.logger.Error("Transaction assembly failed at nonce resolution",
				"chain_id", tx.ChainID, "from", tx.From, "error", err)
			metrics.AssemblyFailures.Inc()
			return tx, fmt.Errorf("failed to resolve nonce: %w", err)
		}
		tx.Nonce = nonce
	}

	a.logger.Info("Transaction assembled",
		"chain_id", tx.ChainID, "from", tx.From, "to", tx.To,
		"gas", tx.Gas, "nonce", tx.Nonce)
	return tx, nil
}
