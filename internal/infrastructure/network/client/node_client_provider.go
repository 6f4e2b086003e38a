package client

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/config"

	"github.com/patrickmn/go-cache"
)

// nodeGatewayProvider implements port.NodeGateway by maintaining one dialed
// NodeClient per chain id. Clients are cached with a TTL so stale
// connections to rarely used chains eventually get redialed.
type nodeGatewayProvider struct {
	baseURL           string
	connectionTimeout time.Duration
	rpcCallTimeout    time.Duration
	clients           *cache.Cache
	mu                sync.Mutex
	logger            port.Logger
}

// NewNodeGatewayProvider creates a NodeGateway backed by per-chain cached
// RPC clients.
func NewNodeGatewayProvider(cfg *config.Config, logger port.Logger) port.NodeGateway {
	ttl := time.Duration(cfg.NodeGateway.ClientTTLMinutes) * time.Minute
	return &nodeGatewayProvider{
		baseURL:           cfg.NodeGateway.BaseURL,
		connectionTimeout: time.Duration(cfg.NodeGateway.ConnectionTimeoutSeconds) * time.Second,
		rpcCallTimeout:    time.Duration(cfg.NodeGateway.RPCCallTimeoutSeconds) * time.Second,
		clients:           cache.New(ttl, 10*time.Minute),
		logger:            logger,
	}
}

func (p *nodeGatewayProvider) clientFor(chainID uint64) (*NodeClient, error) {
	key := fmt.Sprintf("%d", chainID)
	if cached, found := p.clients.Get(key); found {
		if c, ok := cached.(*NodeClient); ok {
			return c, nil
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// re-check under the lock, another goroutine may have dialed already
	if cached, found := p.clients.Get(key); found {
		if c, ok := cached.(*NodeClient); ok {
			return c, nil
		}
	}

	p.logger.Debug("Dialing node gateway for chain", "chain_id", chainID)
	c, err := NewNodeClient(p.baseURL, chainID, p.connectionTimeout, p.rpcCallTimeout)
	if err != nil {
		p.logger.Error("Failed to dial node gateway", "chain_id", chainID, "error", err)
		return nil, err
	}
	p.clients.Set(key, c, cache.DefaultExpiration)
	return c, nil
}

func (p *nodeGatewayProvider) GetBalance(ctx context.Context, chainID uint64, address string) (*big.Int, error) {
	c, err := p.clientFor(chainID)
	if err != nil {
		return nil, err
	}
	return c.GetBalance(ctx, address)
}

func (p *nodeGatewayProvider) EstimateGas(ctx context.Context, chainID uint64, call port.EstimateGasCall) (uint64, error) {
	c, err := p.clientFor(chainID)
	if err != nil {
		return 0, err
	}
	return c.EstimateGas(ctx, call)
}

func (p *nodeGatewayProvider) LatestBaseFee(ctx context.Context, chainID uint64) (*big.Int, error) {
	c, err := p.clientFor(chainID)
	if err != nil {
		return nil, err
	}
	return c.LatestBaseFee(ctx)
}

func (p *nodeGatewayProvider) MaxPriorityFeePerGas(ctx context.Context, chainID uint64) (*big.Int, error) {
	c, err := p.clientFor(chainID)
	if err != nil {
		return nil, err
	}
	return c.MaxPriorityFeePerGas(ctx)
}

func (p *nodeGatewayProvider) TransactionCount(ctx context.Context, chainID uint64, address string) (uint64, error) {
	c, err := p.clientFor(chainID)
	if err != nil {
		return 0, err
	}
	return c.TransactionCount(ctx, address)
}
