package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wallet_connector/internal/app/port"
	wire "wallet_connector/internal/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// explorerClientImpl implements port.ExplorerProvider against the
// block-explorer v4 API. Requests are rate limited; the explorer throttles
// aggressively on bursts.
type explorerClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
	limiter *rate.Limiter
}

// NewExplorerClient creates a client for the block-explorer provider.
func NewExplorerClient(baseURL string, timeout time.Duration, logger *zap.Logger, rateLimit, burstLimit int) port.ExplorerProvider {
	if rateLimit <= 0 {
		rateLimit = 10
	}
	if burstLimit <= 0 {
		burstLimit = 5
	}
	return &explorerClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("ExplorerClient"),
		limiter: rate.NewLimiter(rate.Limit(rateLimit), burstLimit),
	}
}

// GetAddressTransactions implements port.ExplorerProvider. pageToken, when
// set, is forwarded verbatim as the token query parameter.
func (c *explorerClientImpl) GetAddressTransactions(ctx context.Context, blockchain, address string, batchSize int, pageToken string) (*wire.ExplorerTxPage, error) {
	if blockchain == "" || address == "" {
		return nil, fmt.Errorf("blockchain and address must not be empty")
	}
	if batchSize <= 0 {
		batchSize = 20
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait interrupted: %w", err)
	}

	query := url.Values{}
	query.Set("batch_size", strconv.Itoa(batchSize))
	query.Set("order", "descending")
	query.Set("noinput", "true")
	query.Set("filtering", "true")
	if pageToken != "" {
		query.Set("token", pageToken)
	}
	requestURL := fmt.Sprintf("%s/blockchain/v4/%s/address/%s/txs?%s",
		c.baseURL, strings.ToLower(blockchain), address, query.Encode())

	c.logger.Debug("Requesting address transactions from explorer", zap.String("url", requestURL))

	rawBody, err := execute(ctx, c.client, fasthttp.MethodGet, requestURL, nil, c.timeout)
	if err != nil {
		c.logger.Error("Explorer request failed", zap.String("url", requestURL), zap.Error(err))
		return nil, err
	}

	var page wire.ExplorerTxPage
	if err := json.Unmarshal(rawBody, &page); err != nil {
		c.logger.Error("Failed to unmarshal explorer response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal explorer response from %s: %w", requestURL, err)
	}

	c.logger.Debug("Explorer page received",
		zap.String("blockchain", blockchain),
		zap.Int("txCount", len(page.Data)),
		zap.Bool("hasNextPage", page.Token != ""))
	return &page, nil
}
