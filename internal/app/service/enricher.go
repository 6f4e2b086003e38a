package service

import (
	"context"
	"sync"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/domain/entity"
)

// ProgressiveAccountEnricher hydrates balances for the full account list
// concurrently and emits one array snapshot per settled account: the raw
// list first, then a progressively more complete copy each time a hydration
// resolves. One account failing never delays or fails its siblings.
type ProgressiveAccountEnricher struct {
	directory             port.AccountDirectory
	balances              *BalanceHydrator
	logger                port.Logger
	maxConcurrentRoutines int
}

// NewProgressiveAccountEnricher creates a new ProgressiveAccountEnricher.
func NewProgressiveAccountEnricher(
	dir port.AccountDirectory,
	bh *BalanceHydrator,
	l port.Logger,
	maxRoutines int,
) *ProgressiveAccountEnricher {
	if maxRoutines <= 0 {
		maxRoutines = 1
	}
	return &ProgressiveAccountEnricher{
		directory:             dir,
		balances:              bh,
		logger:                l,
		maxConcurrentRoutines: maxRoutines,
	}
}

// Enrich fetches the account list once and returns a channel of snapshots.
// The channel is buffered for the full sequence and closed when every
// account has settled, so an abandoned consumer never blocks the producers;
// in-flight hydrations settle and their snapshots are simply discarded.
func (e *ProgressiveAccountEnricher) Enrich(ctx context.Context) (<-chan []entity.Account, error) {
	accounts, err := e.directory.ListAccounts(ctx)
	if err != nil {
		e.logger.Error("Failed to list accounts for enrichment", "error", err)
		return nil, err
	}
	e.logger.Debug("Starting progressive enrichment", "account_count", len(accounts))

	snapshots := make(chan []entity.Account, len(accounts)+1)
	snapshots <- snapshotOf(accounts)

	if len(accounts) == 0 {
		close(snapshots)
		return snapshots, nil
	}

	type settled struct {
		index   int
		account entity.Account
	}
	results := make(chan settled, len(accounts))
	semaphore := make(chan struct{}, e.maxConcurrentRoutines)

	var wg sync.WaitGroup
	for i, account := range accounts {
		wg.Add(1)
		go func(idx int, acc entity.Account) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			// the hydrator itself never panics or errors, but a broken
			// provider implementation must not take the siblings down
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error("Balance hydration panicked, keeping account unhydrated",
						"address", acc.FreshAddress, "panic", r)
					results <- settled{index: idx, account: acc}
				}
			}()

			results <- settled{index: idx, account: e.balances.Hydrate(ctx, acc)}
		}(i, account)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(snapshots)
		working := snapshotOf(accounts)
		for res := range results {
			working[res.index] = res.account
			snapshots <- snapshotOf(working)
		}
		e.logger.Debug("Progressive enrichment finished", "account_count", len(working))
	}()

	return snapshots, nil
}

// snapshotOf copies the working array so emitted snapshots are immutable.
func snapshotOf(accounts []entity.Account) []entity.Account {
	out := make([]entity.Account, len(accounts))
	copy(out, accounts)
	return out
}
