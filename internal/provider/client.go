package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/octobees/employee-search/api/internal/logger"
	"github.com/octobees/employee-search/api/internal/metrics"
)

// maxResponseBody bounds a successful provider payload.
const maxResponseBody = 16 << 20

// Client performs exactly one HTTP call per Execute. It does not retry and does not
// interpret successful payloads.
type Client struct {
	httpClient *http.Client
	adapter    Adapter
}

// NewClient builds a client for adapter. A nil httpClient gets the default timeout.
func NewClient(httpClient *http.Client, adapter Adapter) *Client {
	if adapter == nil {
		panic("provider adapter must not be nil")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{httpClient: httpClient, adapter: adapter}
}

// Execute sends req with credential and returns the raw response body.
// Non-2xx responses are returned as *HTTPError.
func (c *Client) Execute(ctx context.Context, req Request, credential string) ([]byte, error) {
	name := c.adapter.Name()
	if credential == "" {
		return nil, ErrMissingCredential
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", name, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	c.adapter.Authorize(httpReq, credential)

	log := logger.FromContext(ctx)
	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.ProviderRequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(name, "error").Inc()
		log.Warn("provider request failed", zap.String("provider", name), zap.Error(err))
		return nil, fmt.Errorf("%s: request failed: %w", name, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.ProviderRequestsTotal.WithLabelValues(name, strconv.Itoa(resp.StatusCode)).Inc()
	log.Debug("provider responded",
		zap.String("provider", name),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, newHTTPError(name, resp.StatusCode, raw)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", name, err)
	}
	return payload, nil
}
