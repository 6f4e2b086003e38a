package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wallet_connector/internal/app/port"
	wire "wallet_connector/internal/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// gateClientImpl talks to the primary balance/fee provider. It implements
// both port.BalanceProvider and port.FeeProvider.
type gateClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGateClient creates a client for the gate REST surface.
func NewGateClient(baseURL string, timeout time.Duration, logger *zap.Logger) *gateClientImpl { //nolint:revive // unexported-return kept symmetric with sibling clients
	return &gateClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("GateClient"),
	}
}

// GetAccountBalance implements port.BalanceProvider.
func (c *gateClientImpl) GetAccountBalance(ctx context.Context, currencyID, address string) ([]wire.GateBalanceEntry, error) {
	if currencyID == "" || address == "" {
		return nil, fmt.Errorf("currencyID and address must not be empty")
	}
	requestURL := fmt.Sprintf("%s/v1/%s/account/%s/balance", c.baseURL, currencyID, address)
	c.logger.Debug("Requesting account balance from gate", zap.String("url", requestURL))

	rawBody, err := execute(ctx, c.client, fasthttp.MethodGet, requestURL, nil, c.timeout)
	if err != nil {
		c.logger.Error("Gate balance request failed", zap.String("url", requestURL), zap.Error(err))
		return nil, err
	}

	var entries []wire.GateBalanceEntry
	if err := json.Unmarshal(rawBody, &entries); err != nil {
		c.logger.Error("Failed to unmarshal gate balance response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal gate balance response from %s: %w", requestURL, err)
	}

	c.logger.Debug("Gate balance response received",
		zap.String("currencyId", currencyID),
		zap.Int("entryCount", len(entries)))
	return entries, nil
}

// EstimateTransaction implements port.FeeProvider.
func (c *gateClientImpl) EstimateTransaction(ctx context.Context, network string, req wire.GateEstimateRequest) (*wire.GateEstimateResponse, error) {
	if network == "" {
		return nil, fmt.Errorf("network must not be empty")
	}
	requestURL := fmt.Sprintf("%s/v1/%s/transaction/estimate", c.baseURL, network)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal estimate request: %w", err)
	}
	c.logger.Debug("Requesting fee estimate from gate", zap.String("url", requestURL))

	rawBody, err := execute(ctx, c.client, fasthttp.MethodPost, requestURL, payload, c.timeout)
	if err != nil {
		c.logger.Error("Gate estimate request failed", zap.String("url", requestURL), zap.Error(err))
		return nil, err
	}

	var estimate wire.GateEstimateResponse
	if err := json.Unmarshal(rawBody, &estimate); err != nil {
		c.logger.Error("Failed to unmarshal gate estimate response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal gate estimate response from %s: %w", requestURL, err)
	}
	if estimate.Parameters.GasLimit == "" || estimate.Parameters.MaxFeePerGas == "" || estimate.Parameters.MaxPriorityFeePerGas == "" {
		return nil, fmt.Errorf("gate estimate response from %s is missing fee parameters", requestURL)
	}

	return &estimate, nil
}

var (
	_ port.BalanceProvider = (*gateClientImpl)(nil)
	_ port.FeeProvider     = (*gateClientImpl)(nil)
)
