package service

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/domain/entity"
	wire "wallet_connector/internal/entity"
	"wallet_connector/internal/walletcontext"
)

var errProviderDown = errors.New("provider down")

type noopLogger struct{}

func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}

type fakeBalanceProvider struct {
	mu      sync.Mutex
	entries map[string][]wire.GateBalanceEntry
	err     error
	panics  map[string]bool
	calls   []string
}

func (f *fakeBalanceProvider) GetAccountBalance(_ context.Context, currencyID, address string) ([]wire.GateBalanceEntry, error) {
	f.mu.Lock()
	f.calls = append(f.calls, address)
	f.mu.Unlock()
	if f.panics[address] {
		panic("broken provider")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[address], nil
}

type fakeNodeGateway struct {
	balance     *big.Int
	balanceErr  error
	gas         uint64
	gasErr      error
	baseFee     *big.Int
	baseFeeErr  error
	priority    *big.Int
	priorityErr error
	nonce       uint64
	nonceErr    error
}

func (f *fakeNodeGateway) GetBalance(context.Context, uint64, string) (*big.Int, error) {
	return f.balance, f.balanceErr
}

func (f *fakeNodeGateway) EstimateGas(context.Context, uint64, port.EstimateGasCall) (uint64, error) {
	return f.gas, f.gasErr
}

func (f *fakeNodeGateway) LatestBaseFee(context.Context, uint64) (*big.Int, error) {
	return f.baseFee, f.baseFeeErr
}

func (f *fakeNodeGateway) MaxPriorityFeePerGas(context.Context, uint64) (*big.Int, error) {
	return f.priority, f.priorityErr
}

func (f *fakeNodeGateway) TransactionCount(context.Context, uint64, string) (uint64, error) {
	return f.nonce, f.nonceErr
}

type fakeSpotRateProvider struct {
	rates map[string]float64
	err   error
	calls int
}

func (f *fakeSpotRateProvider) GetSpotRates(_ context.Context, _ []string, _ string) (map[string]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

type fakeExplorerProvider struct {
	page      *wire.ExplorerTxPage
	err       error
	lastToken string
	lastBatch int
	lastChain string
}

func (f *fakeExplorerProvider) GetAddressTransactions(_ context.Context, blockchain, _ string, batchSize int, pageToken string) (*wire.ExplorerTxPage, error) {
	f.lastChain = blockchain
	f.lastBatch = batchSize
	f.lastToken = pageToken
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

type fakeFeeProvider struct {
	response    *wire.GateEstimateResponse
	err         error
	lastNetwork string
	lastReq     wire.GateEstimateRequest
	calls       int
}

func (f *fakeFeeProvider) EstimateTransaction(_ context.Context, network string, req wire.GateEstimateRequest) (*wire.GateEstimateResponse, error) {
	f.calls++
	f.lastNetwork = network
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type fakeKeySync struct {
	accounts []entity.Account
	authErr  error
	listErr  error
}

func (f *fakeKeySync) Authenticate(context.Context) error { return f.authErr }

func (f *fakeKeySync) ListAccounts(context.Context) ([]entity.Account, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.accounts, nil
}

type recordingWalletContext struct {
	mu     sync.Mutex
	state  walletcontext.State
	events []walletcontext.Event
}

func (r *recordingWalletContext) Current() walletcontext.State { return r.state }

func (r *recordingWalletContext) Dispatch(e walletcontext.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	r.state = walletcontext.Reduce(r.state, e)
}

func (r *recordingWalletContext) Subscribe(func(walletcontext.State)) func() {
	return func() {}
}
