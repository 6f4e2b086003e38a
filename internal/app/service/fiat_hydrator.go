package service

import (
	"context"
	"strings"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/domain/entity"
	"wallet_connector/internal/pkg/metrics"
	"wallet_connector/internal/pkg/utils"
)

const defaultFiatCurrency = "usd"

// FiatValueHydrator converts a hydrated balance into a fiat amount via a
// spot-rate lookup. Any failure degrades to an absent fiat value; it never
// returns an error and holds no state between calls.
type FiatValueHydrator struct {
	spotRates port.SpotRateProvider
	logger    port.Logger
}

// NewFiatValueHydrator creates a new FiatValueHydrator.
func NewFiatValueHydrator(sp port.SpotRateProvider, l port.Logger) *FiatValueHydrator {
	return &FiatValueHydrator{spotRates: sp, logger: l}
}

// Hydrate computes rate * balance formatted to two decimals. When the
// account has no hydrated balance the network is not touched at all.
func (h *FiatValueHydrator) Hydrate(ctx context.Context, account entity.Account, targetCurrency string) entity.AccountWithFiat {
	result := entity.AccountWithFiat{Account: account}

	if !account.Hydrated() {
		h.logger.Debug("Skipping fiat hydration, balance not hydrated",
			"address", account.FreshAddress, "currency_id", account.CurrencyID)
		return result
	}

	if targetCurrency == "" {
		targetCurrency = defaultFiatCurrency
	}

	rates, err := h.spotRates.GetSpotRates(ctx, []string{account.CurrencyID}, targetCurrency)
	if err != nil {
		h.logger.Warn("Spot rate lookup failed, fiat value unavailable",
			"currency_id", account.CurrencyID, "target", targetCurrency, "error", err)
		metrics.HydrationFailures.WithLabelValues("fiat").Inc()
		return result
	}

	rate, found := rates[account.CurrencyID]
	if !found || rate == 0 {
		// a zero rate means "unknown", never a genuine zero valuation
		h.logger.Warn("Spot rate missing for currency, fiat value unavailable",
			"currency_id", account.CurrencyID, "target", targetCurrency, "rate_count", len(rates))
		metrics.HydrationFailures.WithLabelValues("fiat").Inc()
		return result
	}

	value, err := utils.MultiplyToFiat(rate, account.Balance)
	if err != nil {
		h.logger.Error("Failed to compute fiat value",
			"currency_id", account.CurrencyID, "balance", account.Balance, "error", err)
		metrics.HydrationFailures.WithLabelValues("fiat").Inc()
		return result
	}

	result.Fiat = &entity.FiatValue{
		Value:    value,
		Currency: strings.ToUpper(targetCurrency),
	}
	return result
}
