package service

import (
	"context"
	"strings"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/domain/entity"
	wire "wallet_connector/internal/entity"
	"wallet_connector/internal/pkg/metrics"
	"wallet_connector/internal/pkg/utils"
)

const defaultHistoryBatchSize = 20

// TransactionHistoryHydrator fetches and classifies recent transactions for
// an account. Hydrate degrades to an absent history on any failure;
// FetchPage exposes the raw paginated form for callers that walk further
// back.
type TransactionHistoryHydrator struct {
	explorer  port.ExplorerProvider
	batchSize int
	logger    port.Logger
}

// NewTransactionHistoryHydrator creates a new TransactionHistoryHydrator.
// batchSize <= 0 selects the default of 20.
func NewTransactionHistoryHydrator(ep port.ExplorerProvider, batchSize int, l port.Logger) *TransactionHistoryHydrator {
	if batchSize <= 0 {
		batchSize = defaultHistoryBatchSize
	}
	return &TransactionHistoryHydrator{explorer: ep, batchSize: batchSize, logger: l}
}

// Hydrate returns the account with its first history page attached, or with
// a nil history when the explorer is unavailable.
func (h *TransactionHistoryHydrator) Hydrate(ctx context.Context, account entity.Account) entity.AccountWithHistory {
	result := entity.AccountWithHistory{Account: account}

	page, err := h.FetchPage(ctx, account, "")
	if err != nil {
		h.logger.Warn("Transaction history fetch failed, history unavailable",
			"address", account.FreshAddress, "ticker", account.Ticker, "error", err)
		metrics.HydrationFailures.WithLabelValues("history").Inc()
		return result
	}

	result.History = page.Items
	return result
}

// FetchPage fetches one explorer page for the account and classifies every
// transaction. The returned NextPageToken is the explorer's cursor,
// passed through unmodified.
func (h *TransactionHistoryHydrator) FetchPage(ctx context.Context, account entity.Account, pageToken string) (*entity.TransactionHistoryPage, error) {
	blockchain := strings.ToLower(account.Ticker)

	rawPage, err := h.explorer.GetAddressTransactions(ctx, blockchain, account.FreshAddress, h.batchSize, pageToken)
	if err != nil {
		return nil, &entity.TransactionHistoryError{
			Blockchain: blockchain,
			Address:    account.FreshAddress,
			Err:        err,
		}
	}

	items := make([]entity.TransactionHistoryItem, 0, len(rawPage.Data))
	for _, tx := range rawPage.Data {
		items = append(items, classifyTransaction(tx, account.FreshAddress))
	}

	return &entity.TransactionHistoryPage{
		Items:         items,
		NextPageToken: rawPage.Token,
	}, nil
}

// classifyTransaction derives direction, value and timestamp of one raw
// explorer transaction as seen from the given address.
func classifyTransaction(tx wire.ExplorerTransaction, address string) entity.TransactionHistoryItem {
	isSender := strings.EqualFold(tx.From, address)

	isTokenRecipient := false
	for _, ev := range tx.TransferEvents {
		if strings.EqualFold(ev.To, address) {
			isTokenRecipient = true
			break
		}
	}

	// Direction: receiving a token transfer wins over having sent the
	// transaction; otherwise being the plain recipient counts only when the
	// address is not also the sender. Everything ambiguous resolves to
	// "sent".
	txType := entity.TransactionTypeSent
	if isTokenRecipient || (!isSender && strings.EqualFold(tx.To, address)) {
		txType = entity.TransactionTypeReceived
	}

	return entity.TransactionHistoryItem{
		Hash:      tx.Hash,
		Type:      txType,
		Value:     transactionValue(tx, address, txType),
		Timestamp: transactionTimestamp(tx),
	}
}

// transactionValue extracts the value moved in the transaction from the
// address's perspective: token transfer events first, then internal native
// actions, then the transaction's own value field.
func transactionValue(tx wire.ExplorerTransaction, address, txType string) string {
	received := txType == entity.TransactionTypeReceived

	matches := make([]string, 0, len(tx.TransferEvents))
	for _, ev := range tx.TransferEvents {
		if received && strings.EqualFold(ev.To, address) {
			matches = append(matches, ev.Count)
		} else if !received && strings.EqualFold(ev.From, address) {
			matches = append(matches, ev.Count)
		}
	}
	if len(matches) > 0 {
		return utils.SumDecimalStrings(matches)
	}

	for _, action := range tx.Actions {
		if received && strings.EqualFold(action.To, address) {
			matches = append(matches, action.Value)
		} else if !received && strings.EqualFold(action.From, address) {
			matches = append(matches, action.Value)
		}
	}
	if len(matches) > 0 {
		return utils.SumDecimalStrings(matches)
	}

	directionMatches := (received && strings.EqualFold(tx.To, address)) ||
		(!received && strings.EqualFold(tx.From, address))
	if directionMatches && tx.Value != "" {
		return tx.Value
	}
	return "0"
}

func transactionTimestamp(tx wire.ExplorerTransaction) string {
	if tx.Block != nil && tx.Block.Time != "" {
		return tx.Block.Time
	}
	return tx.ReceivedAt
}
