package service

import (
	"context"
	"testing"

	"wallet_connector/internal/domain/entity"
	wire "wallet_connector/internal/entity"
	"wallet_connector/internal/infrastructure/network/definition"
	"wallet_connector/internal/walletcontext"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssembler(
	walletCtx *recordingWalletContext,
	keySync *fakeKeySync,
	balances *fakeBalanceProvider,
	spot *fakeSpotRateProvider,
	explorer *fakeExplorerProvider,
) *SelectedAccountAssembler {
	networks := definition.NewProvider()
	return NewSelectedAccountAssembler(
		walletCtx,
		keySync,
		NewBalanceHydrator(balances, &fakeNodeGateway{balanceErr: errProviderDown}, networks, noopLogger{}),
		NewFiatValueHydrator(spot, noopLogger{}),
		NewTransactionHistoryHydrator(explorer, 20, noopLogger{}),
		noopLogger{},
	)
}

func selectedState() walletcontext.State {
	return walletcontext.State{
		SelectedAccount: &walletcontext.AccountRef{
			FreshAddress: testAddress,
			CurrencyID:   "ethereum",
		},
		ChainID: 1,
	}
}

func TestSelectedAccountAssembler_FullEnrichment(t *testing.T) {
	walletCtx := &recordingWalletContext{state: selectedState()}
	keySync := &fakeKeySync{accounts: []entity.Account{testAccount()}}
	balances := &fakeBalanceProvider{
		entries: map[string][]wire.GateBalanceEntry{
			testAddress: {{Value: "2000000000000000000", Asset: wire.GateAsset{Type: "native"}}},
		},
	}
	spot := &fakeSpotRateProvider{rates: map[string]float64{"ethereum": 3000}}
	explorer := &fakeExplorerProvider{
		page: &wire.ExplorerTxPage{
			Data: []wire.ExplorerTransaction{
				{Hash: "0xabc", From: counterparty, To: testAddress, Value: "1", ReceivedAt: "2024-01-01T00:00:00Z"},
			},
		},
	}
	assembler := newTestAssembler(walletCtx, keySync, balances, spot, explorer)

	got, err := assembler.Assemble(context.Background(), "usd")

	require.NoError(t, err)
	assert.Equal(t, "2.0000", got.Balance)
	require.NotNil(t, got.Fiat)
	assert.Equal(t, "6000.00", got.Fiat.Value)
	assert.Equal(t, "USD", got.Fiat.Currency)
	require.Len(t, got.History, 1)
	assert.Equal(t, entity.TransactionTypeReceived, got.History[0].Type)

	require.Len(t, walletCtx.events, 1)
	assert.IsType(t, walletcontext.AccountChanged{}, walletCtx.events[0])
}

func TestSelectedAccountAssembler_NoSelection(t *testing.T) {
	walletCtx := &recordingWalletContext{state: walletcontext.State{ChainID: 1}}
	assembler := newTestAssembler(walletCtx, &fakeKeySync{}, &fakeBalanceProvider{}, &fakeSpotRateProvider{}, &fakeExplorerProvider{})

	_, err := assembler.Assemble(context.Background(), "usd")

	var noSelection *entity.NoSelectedAccountError
	require.ErrorAs(t, err, &noSelection)
	assert.Empty(t, walletCtx.events)
}

func TestSelectedAccountAssembler_AccountNotFound(t *testing.T) {
	walletCtx := &recordingWalletContext{state: selectedState()}
	other := testAccount()
	other.FreshAddress = secondAddress
	keySync := &fakeKeySync{accounts: []entity.Account{other}}
	assembler := newTestAssembler(walletCtx, keySync, &fakeBalanceProvider{}, &fakeSpotRateProvider{}, &fakeExplorerProvider{})

	_, err := assembler.Assemble(context.Background(), "usd")

	var notFound *entity.AccountNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, testAddress, notFound.FreshAddress)
	assert.Equal(t, "ethereum", notFound.CurrencyID)
}

func TestSelectedAccountAssembler_MatchesCaseInsensitively(t *testing.T) {
	state := selectedState()
	state.SelectedAccount.FreshAddress = "0X742D35CC6634C0532925A3B844BC454E4438F44E"
	walletCtx := &recordingWalletContext{state: state}
	keySync := &fakeKeySync{accounts: []entity.Account{testAccount()}}
	balances := &fakeBalanceProvider{
		entries: map[string][]wire.GateBalanceEntry{
			testAddress: {{Value: "0", Asset: wire.GateAsset{Type: "native"}}},
		},
	}
	assembler := newTestAssembler(walletCtx, keySync, balances, &fakeSpotRateProvider{err: errProviderDown}, &fakeExplorerProvider{err: errProviderDown})

	got, err := assembler.Assemble(context.Background(), "usd")

	require.NoError(t, err)
	assert.Equal(t, testAddress, got.FreshAddress)
}

func TestSelectedAccountAssembler_EnrichmentFailuresDegrade(t *testing.T) {
	walletCtx := &recordingWalletContext{state: selectedState()}
	keySync := &fakeKeySync{accounts: []entity.Account{testAccount()}}
	assembler := newTestAssembler(
		walletCtx,
		keySync,
		&fakeBalanceProvider{err: errProviderDown},
		&fakeSpotRateProvider{err: errProviderDown},
		&fakeExplorerProvider{err: errProviderDown},
	)

	got, err := assembler.Assemble(context.Background(), "usd")

	require.NoError(t, err)
	assert.Equal(t, "0.0000", got.Balance)
	assert.Nil(t, got.Fiat)
	assert.Nil(t, got.History)
}

func TestSelectedAccountAssembler_AuthFailure(t *testing.T) {
	walletCtx := &recordingWalletContext{state: selectedState()}
	keySync := &fakeKeySync{authErr: errProviderDown}
	assembler := newTestAssembler(walletCtx, keySync, &fakeBalanceProvider{}, &fakeSpotRateProvider{}, &fakeExplorerProvider{})

	_, err := assembler.Assemble(context.Background(), "usd")

	require.ErrorIs(t, err, errProviderDown)
	assert.Empty(t, walletCtx.events)
}
