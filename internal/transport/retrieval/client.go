// Package retrieval is a thin client for the full-text/semantic search
// service. Stateless: no retries, no caching, transport-default timeouts.
package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/doculex/docgate/internal/metrics"
)

const serviceName = "retrieval"

// Client calls the retrieval service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds the retrieval service endpoint.
type Config struct {
	Host   string
	Port   int
	Logger *zap.Logger
}

// New creates a retrieval client.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Search resolves a free-text query to ranked document metadata. The remote
// service is authoritative; the body is returned verbatim.
func (c *Client) Search(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{
		"query": {query},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v1/docRetrieval/retrieval?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build retrieval request: %w", err)
	}

	start := time.Now()
	// Record the duration on every branch. With no client timeout the
	// failed calls are the ones whose latency matters most.
	defer func() {
		metrics.RemoteRequestDuration.WithLabelValues(serviceName, "retrieval").Observe(time.Since(start).Seconds())
	}()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RemoteRequestsTotal.WithLabelValues(serviceName, "retrieval", "error").Inc()
		return nil, fmt.Errorf("retrieval: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RemoteRequestsTotal.WithLabelValues(serviceName, "retrieval", "error").Inc()
		return nil, fmt.Errorf("read retrieval response: %w", err)
	}

	metrics.RemoteRequestsTotal.WithLabelValues(serviceName, "retrieval", "success").Inc()

	c.logger.Debug("retrieval call",
		zap.Int("status", resp.StatusCode),
		zap.Int("response_bytes", len(body)),
	)
	return body, nil
}
