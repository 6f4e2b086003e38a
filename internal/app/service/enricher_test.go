package service

import (
	"context"
	"testing"

	"wallet_connector/internal/domain/entity"
	wire "wallet_connector/internal/entity"
	"wallet_connector/internal/infrastructure/network/definition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secondAddress = "0x2222222222222222222222222222222222222222"

func twoTestAccounts() []entity.Account {
	second := testAccount()
	second.ID = "acc-2"
	second.FreshAddress = secondAddress
	return []entity.Account{testAccount(), second}
}

func collectSnapshots(t *testing.T, snapshots <-chan []entity.Account) [][]entity.Account {
	t.Helper()
	var all [][]entity.Account
	for snap := range snapshots {
		all = append(all, snap)
	}
	return all
}

func newTestEnricher(directory *fakeKeySync, provider *fakeBalanceProvider, gateway *fakeNodeGateway) *ProgressiveAccountEnricher {
	hydrator := NewBalanceHydrator(provider, gateway, definition.NewProvider(), noopLogger{})
	return NewProgressiveAccountEnricher(directory, hydrator, noopLogger{}, 4)
}

func TestEnricher_EmitsRawSnapshotFirst(t *testing.T) {
	directory := &fakeKeySync{accounts: twoTestAccounts()}
	provider := &fakeBalanceProvider{
		entries: map[string][]wire.GateBalanceEntry{
			testAddress:   {{Value: "1000000000000000000", Asset: wire.GateAsset{Type: "native"}}},
			secondAddress: {{Value: "2000000000000000000", Asset: wire.GateAsset{Type: "native"}}},
		},
	}
	enricher := newTestEnricher(directory, provider, &fakeNodeGateway{})

	snapshots, err := enricher.Enrich(context.Background())
	require.NoError(t, err)

	all := collectSnapshots(t, snapshots)
	require.Len(t, all, 3)

	for _, account := range all[0] {
		assert.False(t, account.Hydrated())
	}
	final := all[len(all)-1]
	assert.Equal(t, "1.0000", final[0].Balance)
	assert.Equal(t, "2.0000", final[1].Balance)
}

func TestEnricher_OneAccountFailingDoesNotAffectSiblings(t *testing.T) {
	directory := &fakeKeySync{accounts: twoTestAccounts()}
	provider := &fakeBalanceProvider{
		entries: map[string][]wire.GateBalanceEntry{
			secondAddress: {{Value: "2000000000000000000", Asset: wire.GateAsset{Type: "native"}}},
		},
		panics: map[string]bool{testAddress: true},
	}
	enricher := newTestEnricher(directory, provider, &fakeNodeGateway{balanceErr: errProviderDown})

	snapshots, err := enricher.Enrich(context.Background())
	require.NoError(t, err)

	all := collectSnapshots(t, snapshots)
	final := all[len(all)-1]

	assert.False(t, final[0].Hydrated())
	assert.Equal(t, "2.0000", final[1].Balance)
}

func TestEnricher_DirectoryFailurePropagates(t *testing.T) {
	directory := &fakeKeySync{listErr: errProviderDown}
	enricher := newTestEnricher(directory, &fakeBalanceProvider{}, &fakeNodeGateway{})

	snapshots, err := enricher.Enrich(context.Background())

	assert.Nil(t, snapshots)
	assert.ErrorIs(t, err, errProviderDown)
}

func TestEnricher_EmptyDirectory(t *testing.T) {
	directory := &fakeKeySync{}
	enricher := newTestEnricher(directory, &fakeBalanceProvider{}, &fakeNodeGateway{})

	snapshots, err := enricher.Enrich(context.Background())
	require.NoError(t, err)

	all := collectSnapshots(t, snapshots)
	require.Len(t, all, 1)
	assert.Empty(t, all[0])
}

func TestEnricher_SnapshotsAreIndependentCopies(t *testing.T) {
	directory := &fakeKeySync{accounts: twoTestAccounts()}
	provider := &fakeBalanceProvider{
		entries: map[string][]wire.GateBalanceEntry{
			testAddress:   {{Value: "1000000000000000000", Asset: wire.GateAsset{Type: "native"}}},
			secondAddress: {{Value: "2000000000000000000", Asset: wire.GateAsset{Type: "native"}}},
		},
	}
	enricher := newTestEnricher(directory, provider, &fakeNodeGateway{})

	snapshots, err := enricher.Enrich(context.Background())
	require.NoError(t, err)

	all := collectSnapshots(t, snapshots)
	all[1][0].Balance = "tampered"
	assert.NotEqual(t, "tampered", all[2][0].Balance)
}
