package entity

import "fmt"

// NetworkError is a transport-level failure from one of the data providers,
// carrying enough context to diagnose the request that failed.
type NetworkError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// BalanceFetchError wraps a failure of the primary balance provider for a
// specific account. The balance hydrator degrades on it, never propagates.
type BalanceFetchError struct {
	Address    string
	CurrencyID string
	Err        error
}

func (e *BalanceFetchError) Error() string {
	return fmt.Sprintf("balance fetch for %s on %s failed: %v", e.Address, e.CurrencyID, e.Err)
}

func (e *BalanceFetchError) Unwrap() error { return e.Err }

// FeeEstimationError wraps a failure of the fee estimation chain for a
// transaction. Unlike hydration errors it aborts transaction assembly.
type FeeEstimationError struct {
	ChainID uint64
	Err     error
}

func (e *FeeEstimationError) Error() string {
	return fmt.Sprintf("fee estimation on chain %d failed: %v", e.ChainID, e.Err)
}

func (e *FeeEstimationError) Unwrap() error { return e.Err }

// TransactionHistoryError wraps an explorer failure for a specific address.
type TransactionHistoryError struct {
	Blockchain string
	Address    string
	Err        error
}

func (e *TransactionHistoryError) Error() string {
	return fmt.Sprintf("transaction history for %s on %s failed: %v", e.Address, e.Blockchain, e.Err)
}

func (e *TransactionHistoryError) Unwrap() error { return e.Err }

// NoSelectedAccountError is returned when the wallet context carries no
// selected account marker. The caller is expected to redirect the user to
// account selection, not retry.
type NoSelectedAccountError struct{}

func (e *NoSelectedAccountError) Error() string {
	return "no account is currently selected in the wallet context"
}

// AccountNotFoundError is returned when the selected (freshAddress,
// currencyId) pair is missing from the synced account list. Both fields are
// needed because one address can exist on several EVM chains.
type AccountNotFoundError struct {
	FreshAddress string
	CurrencyID   string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %s (%s) not found in synced accounts", e.FreshAddress, e.CurrencyID)
}
