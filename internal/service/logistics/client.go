// internal/service/logistics/client.go
package logistics

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	xerrors "cncquote-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// ClientConfig carries the three vendor hosts and the OAuth credentials.
// The open API host serves token, price trial and tracking; the UC and
// OMS hosts serve the region/postcode and country catalogs.
type ClientConfig struct {
	APIBase   string
	UCBase    string
	OMSBase   string
	ClientID  string
	Secret    string
	SourceKey string
}

// Client wraps the cross-border logistics vendor. Signed endpoints use a
// client-credentials token plus an HMAC request signature; the catalog
// endpoints are unauthenticated.
type Client struct {
	httpClient *http.Client
	cfg        ClientConfig
	logger     *zap.Logger
}

func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
		logger:     logger,
	}
}

// AccessToken performs the client-credentials exchange. Tokens are
// short-lived; callers fetch one per vendor interaction.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{
		"appId":     c.cfg.ClientID,
		"appSecret": c.cfg.Secret,
		"grantType": "client_credentials",
		"sourceKey": c.cfg.SourceKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.APIBase+"/openapi/oauth2/token", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: logistics token: %v", xerrors.ErrVendorRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: logistics token: status %d", xerrors.ErrVendorRequest, resp.StatusCode)
	}

	var tok struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: logistics token response empty", xerrors.ErrVendorRequest)
	}
	return tok.AccessToken, nil
}

// sign produces the per-request HMAC signature the open API expects:
// base64(HMAC-SHA256(secret, "date=<ms>&method=GET&uri=<path>")).
func (c *Client) sign(timestamp int64, method, uri string) string {
	content := fmt.Sprintf("date=%d&method=%s&uri=%s", timestamp, method, uri)
	mac := hmac.New(sha256.New, []byte(c.cfg.Secret))
	mac.Write([]byte(content))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// signedGet performs a token-and-signature authenticated GET on the open
// API host.
func (c *Client) signedGet(ctx context.Context, uri string, params url.Values, out any) error {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}

	timestamp := time.Now().UnixMilli()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.APIBase+uri+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("token", token)
	req.Header.Set("date", strconv.FormatInt(timestamp, 10))
	req.Header.Set("sign", c.sign(timestamp, http.MethodGet, uri))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "zh-CN")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", xerrors.ErrVendorRequest, uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: status %d", xerrors.ErrVendorRequest, uri, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", uri, err)
	}
	return nil
}

// plainGet fetches one of the unauthenticated catalog endpoints.
func (c *Client) plainGet(ctx context.Context, fullURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", xerrors.ErrVendorRequest, fullURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", xerrors.ErrVendorRequest, fullURL, resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return raw, nil
}

// Countries lists the destination countries served by a shipping product.
func (c *Client) Countries(ctx context.Context, productCode string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("ProductCode", productCode)
	return c.plainGet(ctx, c.cfg.OMSBase+"/api/Product/GetRecverCountrys?"+q.Encode())
}

// Regions lists first-level regions of a country, or second-level regions
// when region1 is non-empty.
func (c *Client) Regions(ctx context.Context, countryCode, region1 string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("country", countryCode)
	if region1 != "" {
		q.Set("region1", region1)
	}
	return c.plainGet(ctx, c.cfg.UCBase+"/api/ars/GetRegion?"+q.Encode())
}

// Postcodes lists postcodes for a country/region1/region2 triple.
func (c *Client) Postcodes(ctx context.Context, countryCode, region1, region2 string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("country", countryCode)
	q.Set("region1", region1)
	q.Set("region2", region2)
	return c.plainGet(ctx, c.cfg.UCBase+"/api/ars/GetPostcode?"+q.Encode())
}

// FreightFee is one line of a price trial result.
type FreightFee struct {
	ProductCode     string  `json:"product_code"`
	FeeName         string  `json:"fee_name"`
	CalculateAmount float64 `json:"calculate_amount"`
	IntervalDay     string  `json:"interval_day"`
}

// PriceTrial quotes international freight fees for a weight bound for a
// country. Returns every fee line; callers filter by product code.
func (c *Client) PriceTrial(ctx context.Context, countryCode string, weight float64) ([]FreightFee, error) {
	q := url.Values{}
	q.Set("country_code", countryCode)
	q.Set("weight", strconv.FormatFloat(weight, 'f', -1, 64))
	q.Set("package_type", "C")

	var body struct {
		Result []FreightFee `json:"result"`
	}
	if err := c.signedGet(ctx, "/v1/price-trial/get", q, &body); err != nil {
		return nil, err
	}
	return body.Result, nil
}

// Track fetches the tracking events of a waybill.
func (c *Client) Track(ctx context.Context, waybillNumber string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("order_number", waybillNumber)

	var raw json.RawMessage
	if err := c.signedGet(ctx, "/v1/track-service/info/get", q, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
