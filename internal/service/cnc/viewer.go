// internal/service/cnc/viewer.go
package cnc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	xerrors "cncquote-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// ViewerClient uploads models to the 3D preview service and builds the
// browser-facing preview URLs the storefront embeds.
type ViewerClient struct {
	httpClient *http.Client
	uploadURL  string
	previewURL string
	logger     *zap.Logger
}

func NewViewerClient(uploadURL, previewURL string, logger *zap.Logger) *ViewerClient {
	return &ViewerClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		uploadURL:  uploadURL,
		previewURL: previewURL,
		logger:     logger,
	}
}

// UploadModel sends one model file to the preview service and returns the
// token key identifying the rendered model.
func (c *ViewerClient) UploadModel(ctx context.Context, fileName string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(fw, content); err != nil {
		return "", fmt.Errorf("failed to read model content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "*/*")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: model preview upload: %v", xerrors.ErrVendorRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: model preview upload: status %d", xerrors.ErrVendorRequest, resp.StatusCode)
	}

	var body struct {
		Data struct {
			TokenKey string `json:"tokenKey"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode preview response: %w", err)
	}
	if body.Data.TokenKey == "" {
		c.logger.Warn("preview service returned no token key", zap.String("file_name", fileName))
		return "", fmt.Errorf("%w: preview service returned no token key", xerrors.ErrVendorRequest)
	}
	return body.Data.TokenKey, nil
}

// PreviewURL builds the embeddable preview link for an uploaded model.
func (c *ViewerClient) PreviewURL(fileSize int64, fileType, tokenKey string) string {
	q := url.Values{}
	q.Set("fileSize", strconv.FormatInt(fileSize, 10))
	q.Set("fileType", fileType)
	q.Set("tokenKey", tokenKey)
	return c.previewURL + "?" + q.Encode()
}
