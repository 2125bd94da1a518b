// Package similarity is a thin client for the similarity service. Stateless:
// no retries, no caching, transport-default timeouts.
package similarity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/doculex/docgate/internal/metrics"
)

const serviceName = "similarity"

// Client calls the similarity service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds the similarity service endpoint.
type Config struct {
	Host   string
	Port   int
	Logger *zap.Logger
}

// New creates a similarity client.
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

// GetSimilar returns the remote body for the k nearest documents. Expected
// success shape: {similar_documents: [...], similarities: [[id, score], ...]};
// error shapes are returned verbatim.
func (c *Client) GetSimilar(ctx context.Context, documentID string, k int) (json.RawMessage, error) {
	params := url.Values{
		"document_id": {documentID},
		"get_k":       {strconv.Itoa(k)},
	}
	return c.get(ctx, "get_similarities", "/api/v1/similarity/get_similarities", params)
}

// RefreshEmbedding triggers recomputation of a document's embedding and
// returns the remote body verbatim.
func (c *Client) RefreshEmbedding(ctx context.Context, documentID string) (json.RawMessage, error) {
	params := url.Values{
		"document_id": {documentID},
	}
	return c.get(ctx, "new_document_embedding", "/api/v1/similarity/new_document_embedding", params)
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}

	start := time.Now()
	// Record the duration on every branch. With no client timeout the
	// failed calls are the ones whose latency matters most.
	defer func() {
		metrics.RemoteRequestDuration.WithLabelValues(serviceName, op).Observe(time.Since(start).Seconds())
	}()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RemoteRequestsTotal.WithLabelValues(serviceName, op, "error").Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RemoteRequestsTotal.WithLabelValues(serviceName, op, "error").Inc()
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}

	metrics.RemoteRequestsTotal.WithLabelValues(serviceName, op, "success").Inc()

	c.logger.Debug("similarity call",
		zap.String("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.Int("response_bytes", len(body)),
	)
	return body, nil
}
