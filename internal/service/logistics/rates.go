// internal/service/logistics/rates.go
package logistics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// RateClient fetches the CNH to USD conversion rate used to express freight
// totals in dollars. A fetch failure degrades to the configured fallback
// rate rather than failing the estimate.
type RateClient struct {
	httpClient   *http.Client
	apiBase      string
	appID        string
	fallbackRate float64
	logger       *zap.Logger
}

func NewRateClient(apiBase, appID string, fallbackRate float64, logger *zap.Logger) *RateClient {
	return &RateClient{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		apiBase:      apiBase,
		appID:        appID,
		fallbackRate: fallbackRate,
		logger:       logger,
	}
}

// CNHToUSD returns how many CNH one USD buys.
func (c *RateClient) CNHToUSD(ctx context.Context) float64 {
	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("base", "USD")
	q.Set("symbols", "CNH")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiBase+"/api/latest.json?"+q.Encode(), nil)
	if err != nil {
		return c.fallbackRate
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("exchange rate fetch failed, using fallback",
			zap.Float64("fallback", c.fallbackRate),
			zap.Error(err),
		)
		return c.fallbackRate
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("exchange rate service returned non-200",
			zap.Int("status", resp.StatusCode),
		)
		return c.fallbackRate
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn("failed to decode exchange rate response", zap.Error(err))
		return c.fallbackRate
	}

	rate, ok := body.Rates["CNH"]
	if !ok || rate <= 0 {
		return c.fallbackRate
	}
	return rate
}
