package service

import (
	"context"
	"fmt"
	"strings"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/domain/entity"
	"wallet_connector/internal/walletcontext"

	"golang.org/x/sync/errgroup"
)

// SelectedAccountAssembler resolves the account marked selected in the
// wallet context and merges all three hydrations into a DetailedAccount.
// Balance hydration runs first (fiat depends on it); fiat and history run
// concurrently against the balance-hydrated account.
type SelectedAccountAssembler struct {
	walletCtx port.WalletContext
	keySync   port.KeySync
	balances  *BalanceHydrator
	fiat      *FiatValueHydrator
	history   *TransactionHistoryHydrator
	logger    port.Logger
}

// NewSelectedAccountAssembler creates a new SelectedAccountAssembler.
func NewSelectedAccountAssembler(
	wc port.WalletContext,
	ks port.KeySync,
	bh *BalanceHydrator,
	fh *FiatValueHydrator,
	th *TransactionHistoryHydrator,
	l port.Logger,
) *SelectedAccountAssembler {
	return &SelectedAccountAssembler{
		walletCtx: wc,
		keySync:   ks,
		balances:  bh,
		fiat:      fh,
		history:   th,
		logger:    l,
	}
}

// Assemble returns the fully enriched selected account, or a typed error
// (*entity.NoSelectedAccountError, *entity.AccountNotFoundError) the caller
// resolves by redirecting the user, not by retrying.
func (a *SelectedAccountAssembler) Assemble(ctx context.Context, targetCurrency string) (*entity.DetailedAccount, error) {
	state := a.walletCtx.Current()
	if state.SelectedAccount == nil {
		a.logger.Warn("No selected account in wallet context")
		return nil, &entity.NoSelectedAccountError{}
	}
	selected := *state.SelectedAccount

	if err := a.keySync.Authenticate(ctx); err != nil {
		return nil, fmt.Errorf("key-sync authentication failed: %w", err)
	}

	accounts, err := a.keySync.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list synced accounts: %w", err)
	}

	account, found := findAccount(accounts, selected)
	if !found {
		a.logger.Warn("Selected account not found in synced accounts",
			"address", selected.FreshAddress, "currency_id", selected.CurrencyID)
		return nil, &entity.AccountNotFoundError{
			FreshAddress: selected.FreshAddress,
			CurrencyID:   selected.CurrencyID,
		}
	}

	hydrated := a.balances.Hydrate(ctx, account)

	var withFiat entity.AccountWithFiat
	var withHistory entity.AccountWithHistory

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		withFiat = a.fiat.Hydrate(gctx, hydrated, targetCurrency)
		return nil
	})
	g.Go(func() error {
		withHistory = a.history.Hydrate(gctx, hydrated)
		return nil
	})
	// the hydrators degrade instead of failing, Wait only joins them
	_ = g.Wait()

	detailed := &entity.DetailedAccount{
		Account: hydrated,
		Fiat:    withFiat.Fiat,
		History: withHistory.History,
	}

	a.walletCtx.Dispatch(walletcontext.AccountChanged{})
	a.logger.Info("Selected account assembled",
		"address", detailed.FreshAddress, "currency_id", detailed.CurrencyID,
		"has_fiat", detailed.Fiat != nil, "has_history", detailed.History != nil)
	return detailed, nil
}

// findAccount looks an account up by the (freshAddress, currencyId) pair.
// The address alone is not unique across EVM-compatible chains.
func findAccount(accounts []entity.Account, ref walletcontext.AccountRef) (entity.Account, bool) {
	for _, acc := range accounts {
		if strings.EqualFold(acc.FreshAddress, ref.FreshAddress) &&
			strings.EqualFold(acc.CurrencyID, ref.CurrencyID) {
			return acc, true
		}
	}
	return entity.Account{}, false
}
