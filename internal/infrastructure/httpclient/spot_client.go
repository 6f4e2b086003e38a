package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"wallet_connector/internal/app/port"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// spotClientImpl implements port.SpotRateProvider against the spot-rate
// provider: GET /v3/spot/simple?froms={ids}&to={currency}.
type spotClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewSpotClient creates a client for the spot-rate provider.
func NewSpotClient(baseURL string, timeout time.Duration, logger *zap.Logger) port.SpotRateProvider {
	return &spotClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("SpotClient"),
	}
}

// GetSpotRates implements port.SpotRateProvider. Ids missing from the
// provider's answer are absent from the returned map; the caller decides
// what absence means.
func (c *spotClientImpl) GetSpotRates(ctx context.Context, currencyIDs []string, to string) (map[string]float64, error) {
	if len(currencyIDs) == 0 {
		return nil, fmt.Errorf("currencyIDs must not be empty")
	}
	if to == "" {
		to = "usd"
	}

	query := url.Values{}
	query.Set("froms", strings.Join(currencyIDs, ","))
	query.Set("to", strings.ToLower(to))
	requestURL := fmt.Sprintf("%s/v3/spot/simple?%s", c.baseURL, query.Encode())

	c.logger.Debug("Requesting spot rates", zap.String("url", requestURL))

	rawBody, err := execute(ctx, c.client, fasthttp.MethodGet, requestURL, nil, c.timeout)
	if err != nil {
		c.logger.Error("Spot rate request failed", zap.String("url", requestURL), zap.Error(err))
		return nil, err
	}

	var rates map[string]float64
	if err := json.Unmarshal(rawBody, &rates); err != nil {
		c.logger.Error("Failed to unmarshal spot rate response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal spot rate response from %s: %w", requestURL, err)
	}

	if len(rates) == 0 {
		c.logger.Warn("Spot rate provider returned an empty rate set",
			zap.String("url", requestURL),
			zap.Strings("currencyIds", currencyIDs))
	}
	return rates, nil
}
