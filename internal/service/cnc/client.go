// internal/service/cnc/client.go
package cnc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	xerrors "cncquote-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36"

// Client talks to the CNC manufacturing platform. All requests ride on a
// pre-provisioned browser cookie blob supplied through config; the
// platform has no API-key auth for these endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cookie     string
	logger     *zap.Logger
}

func NewClient(baseURL, cookie string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		cookie:     cookie,
		logger:     logger,
	}
}

// vendorEnvelope is the common response shape of the CNC platform.
type vendorEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*vendorEnvelope, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Origin", c.baseURL)
	req.Header.Set("Referer", c.baseURL+"/cncOrder/")
	req.Header.Set("User-Agent", userAgent)
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", xerrors.ErrVendorRequest, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("cnc vendor returned non-200",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: %s: status %d", xerrors.ErrVendorRequest, path, resp.StatusCode)
	}

	var env vendorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode vendor response: %w", err)
	}
	return &env, nil
}

// Valuation requests price quotes for a batch of configured parts. The
// payload is forwarded as-is; only the quoteInfos slice of the response
// is returned.
func (c *Client) Valuation(ctx context.Context, payload any) ([]map[string]any, error) {
	env, err := c.postJSON(ctx, "/api/cncOrder/valuation", payload)
	if err != nil {
		return nil, err
	}

	var data struct {
		QuoteInfos []map[string]any `json:"quoteInfos"`
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("failed to decode quote infos: %w", err)
		}
	}
	if len(data.QuoteInfos) == 0 {
		return nil, fmt.Errorf("%w: valuation returned no quotes", xerrors.ErrVendorRequest)
	}
	return data.QuoteInfos, nil
}

// AnalyzeModel kicks off geometry analysis for previously uploaded
// models.
func (c *Client) AnalyzeModel(ctx context.Context, clientID string, fileInfoAccessIDs []string) (json.RawMessage, error) {
	body := map[string]any{
		"clientId":          clientID,
		"from":              nil,
		"fileInfoAccessIds": fileInfoAccessIDs,
	}

	env, err := c.postJSON(ctx, "/api/cncOrder/model/analyze", body)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetAnalysisResult polls the analysis outcome for one model. The vendor
// expects a bare JSON array of access ids.
func (c *Client) GetAnalysisResult(ctx context.Context, fileInfoAccessID string) (json.RawMessage, error) {
	env, err := c.postJSON(ctx, "/api/cncOrder/model/getAnalysisResult", []string{fileInfoAccessID})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// UploadDrawFile pushes a 2D drawing to the platform and returns the
// vendor's file descriptor.
func (c *Client) UploadDrawFile(ctx context.Context, fileName string, content io.Reader) (json.RawMessage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(fw, content); err != nil {
		return nil, fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	path := "/api/cncOrder/file/uploadDrawFile"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Origin", c.baseURL)
	req.Header.Set("Referer", c.baseURL+"/cncOrder/")
	req.Header.Set("User-Agent", userAgent)
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", xerrors.ErrVendorRequest, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", xerrors.ErrVendorRequest, path, resp.StatusCode)
	}

	var env vendorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return env.Data, nil
}

// OrderWeight fetches the settlement weight of a quoted order, the input
// to freight estimation.
func (c *Client) OrderWeight(ctx context.Context, businessLine, bizOrderAccessID string) (float64, error) {
	body := map[string]any{
		"businessLine":      businessLine,
		"bizOrderAccessIds": []string{bizOrderAccessID},
	}

	env, err := c.postJSON(ctx, "/api/cncSettlement/obtain/queryObtainBizOrder", body)
	if err != nil {
		return 0, err
	}

	var data struct {
		BizTotalWeight float64 `json:"bizTotalWeight"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return 0, fmt.Errorf("failed to decode order weight: %w", err)
	}
	return data.BizTotalWeight, nil
}

// CarriageFee is the domestic leg of the freight estimate: the platform's
// own courier fee with and without tax.
type CarriageFee struct {
	Fee        float64
	IncludeTax float64
}

// CalculateCarriage fetches the platform-side courier fee for an order.
func (c *Client) CalculateCarriage(ctx context.Context, bizOrderAccessID string) (*CarriageFee, error) {
	body := map[string]any{
		"bizOrderType":      "cnc",
		"businessLine":      "cnc",
		"bindingDelivery":   true,
		"expressCode":       "JDTH",
		"expressType":       "JDTH",
		"couponFlag":        true,
		"packingType":       0,
		"confirmOrderType":  "CUSTOMER_CONFIRM",
		"bizOrderAccessIds": []string{bizOrderAccessID},
	}

	env, err := c.postJSON(ctx, "/api/cncOrder/walletWeb/placeCalculateCouponFee", body)
	if err != nil {
		return nil, err
	}

	var data struct {
		CarriageFee           float64 `json:"carriageFee"`
		CarriageFeeIncludeTax float64 `json:"carriageFeeIncludeTax"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode carriage fee: %w", err)
	}
	return &CarriageFee{Fee: data.CarriageFee, IncludeTax: data.CarriageFeeIncludeTax}, nil
}
