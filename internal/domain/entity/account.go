package entity

// Account is the minimal account record recovered from the key-sync
// collaborator, plus the mutable enrichment fields the hydrators fill in.
// Hydrators never mutate an Account in place; they return enriched copies.
type Account struct {
	ID             string         `json:"id"`
	CurrencyID     string         `json:"currencyId"`
	FreshAddress   string         `json:"freshAddress"`
	SeedIdentifier string         `json:"seedIdentifier"`
	DerivationMode string         `json:"derivationMode"`
	Index          int            `json:"index"`
	Name           string         `json:"name"`
	Ticker         string         `json:"ticker"`
	Balance        string         `json:"balance,omitempty"`
	Tokens         []TokenBalance `json:"tokens"`
}

// Hydrated reports whether the balance enrichment has run for this account.
// An empty balance string means "not hydrated"; a hydrated account always
// carries a formatted value, "0.0000" at worst.
func (a Account) Hydrated() bool {
	return a.Balance != ""
}

// TokenBalance is a single token position attached to an account.
// Entries are keyed by LedgerID; ordering is irrelevant.
type TokenBalance struct {
	LedgerID    string     `json:"ledgerId"`
	Ticker      string     `json:"ticker"`
	Name        string     `json:"name"`
	Balance     string     `json:"balance"`
	FiatBalance *FiatValue `json:"fiatBalance,omitempty"`
}

// FiatValue is a formatted fiat amount paired with its currency code.
type FiatValue struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// AccountWithFiat is the transient shape produced by the fiat hydrator.
// A nil Fiat means the enrichment was unavailable, never an error value.
type AccountWithFiat struct {
	Account
	Fiat *FiatValue `json:"fiatBalance,omitempty"`
}

// AccountWithHistory is the transient shape produced by the transaction
// history hydrator. A nil History means the enrichment was unavailable;
// an empty non-nil slice means the address genuinely has no transactions.
type AccountWithHistory struct {
	Account
	History []TransactionHistoryItem `json:"transactionHistory,omitempty"`
}

// DetailedAccount is the terminal shape returned to the caller: the base
// account merged with both optional enrichments.
type DetailedAccount struct {
	Account
	Fiat    *FiatValue               `json:"fiatBalance,omitempty"`
	History []TransactionHistoryItem `json:"transactionHistory,omitempty"`
}
