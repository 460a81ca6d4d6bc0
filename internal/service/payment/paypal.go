// internal/service/payment/paypal.go
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	xerrors "cncquote-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// PayPalClient fetches OAuth2 client-credentials tokens for payment
// capture flows.
type PayPalClient struct {
	httpClient   *http.Client
	apiBase      string
	clientID     string
	clientSecret string
	logger       *zap.Logger
}

func NewPayPalClient(apiBase, clientID, clientSecret string, logger *zap.Logger) *PayPalClient {
	return &PayPalClient{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		apiBase:      apiBase,
		clientID:     clientID,
		clientSecret: clientSecret,
		logger:       logger,
	}
}

// AccessToken exchanges the client credentials for a bearer token.
func (c *PayPalClient) AccessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiBase+"/v1/oauth2/token", strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: paypal token: %v", xerrors.ErrVendorRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("paypal token request failed", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: paypal token: status %d", xerrors.ErrVendorRequest, resp.StatusCode)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("failed to decode paypal token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: paypal token response empty", xerrors.ErrVendorRequest)
	}
	return tok.AccessToken, nil
}
