package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/domain/entity"
	wire "wallet_connector/internal/entity"
	"wallet_connector/internal/pkg/metrics"
	"wallet_connector/internal/pkg/utils"
)

var errMalformedBalanceResponse = errors.New("malformed balance response")

const defaultNativeDecimals = 18

// BalanceHydrator enriches an account with its native balance and token
// positions. Tier one is the gate balance endpoint; tier two is a single
// eth_getBalance against the node gateway. It never returns an error: when
// both tiers fail the account comes back with a zero balance and no tokens.
type BalanceHydrator struct {
	balanceProvider port.BalanceProvider
	nodeGateway     port.NodeGateway
	networks        port.NetworkDefinitionProvider
	logger          port.Logger
}

// NewBalanceHydrator creates a new BalanceHydrator.
func NewBalanceHydrator(
	bp port.BalanceProvider,
	ng port.NodeGateway,
	np port.NetworkDefinitionProvider,
	l port.Logger,
) *BalanceHydrator {
	return &BalanceHydrator{
		balanceProvider: bp,
		nodeGateway:     ng,
		networks:        np,
		logger:          l,
	}
}

// Hydrate returns a copy of the account with Balance and Tokens populated
// on a best-effort basis.
func (h *BalanceHydrator) Hydrate(ctx context.Context, account entity.Account) entity.Account {
	decimals := int32(defaultNativeDecimals)
	network, networkKnown := h.networks.ByCurrencyID(account.CurrencyID)
	if networkKnown {
		decimals = network.Decimals
	}

	entries, err := h.balanceProvider.GetAccountBalance(ctx, account.CurrencyID, account.FreshAddress)
	if err == nil {
		if enriched, ok := h.applyGateEntries(account, entries, decimals); ok {
			return enriched
		}
		err = &entity.BalanceFetchError{
			Address:    account.FreshAddress,
			CurrencyID: account.CurrencyID,
			Err:        errMalformedBalanceResponse,
		}
	}

	h.logger.Warn("Primary balance provider failed, falling back to RPC",
		"address", account.FreshAddress, "currency_id", account.CurrencyID, "error", err)
	metrics.ProviderFallbacks.WithLabelValues("balance").Inc()

	if networkKnown {
		wei, rpcErr := h.nodeGateway.GetBalance(ctx, network.ChainID, account.FreshAddress)
		if rpcErr == nil {
			account.Balance = utils.FormatAtomic(wei, decimals)
			account.Tokens = []entity.TokenBalance{}
			return account
		}
		h.logger.Warn("RPC balance fallback failed",
			"address", account.FreshAddress, "chain_id", network.ChainID, "error", rpcErr)
	} else {
		h.logger.Warn("No network definition for currency, RPC fallback unavailable",
			"currency_id", account.CurrencyID)
	}

	metrics.HydrationFailures.WithLabelValues("balance").Inc()
	account.Balance = utils.ZeroBalance()
	account.Tokens = []entity.TokenBalance{}
	return account
}

// applyGateEntries maps the gate response onto the account. A response
// without a native entry counts as malformed and triggers the fallback.
func (h *BalanceHydrator) applyGateEntries(account entity.Account, entries []wire.GateBalanceEntry, decimals int32) (entity.Account, bool) {
	var nativeSeen bool
	tokens := make([]entity.TokenBalance, 0, len(entries))

	for _, entry := range entries {
		if strings.EqualFold(entry.Asset.Type, "native") {
			atomic, ok := new(big.Int).SetString(entry.Value, 10)
			if !ok {
				h.logger.Warn("Gate returned unparseable native balance",
					"address", account.FreshAddress, "value", entry.Value)
				return account, false
			}
			account.Balance = utils.FormatAtomic(atomic, decimals)
			nativeSeen = true
			continue
		}

		tokenBalance := entry.Value
		if entry.Asset.Decimals > 0 {
			if atomic, ok := new(big.Int).SetString(entry.Value, 10); ok {
				tokenBalance = utils.FormatAtomic(atomic, int32(entry.Asset.Decimals))
			}
		}
		tokens = append(tokens, entity.TokenBalance{
			LedgerID: tokenLedgerID(account.CurrencyID, entry.Asset),
			Ticker:   entry.Asset.Ticker,
			Name:     entry.Asset.Name,
			Balance:  tokenBalance,
		})
	}

	if !nativeSeen {
		return account, false
	}
	account.Tokens = tokens
	return account, true
}

// tokenLedgerID derives the ledger id of a token entry from the host
// currency and the asset descriptor, e.g. "ethereum/erc20/0xa0b8...".
func tokenLedgerID(currencyID string, asset wire.GateAsset) string {
	ref := strings.ToLower(asset.AssetReference)
	if ref == "" {
		ref = strings.ToLower(asset.Ticker)
	}
	return fmt.Sprintf("%s/%s/%s", currencyID, strings.ToLower(asset.Type), ref)
}
