// Package enrichment is a thin client for the annotation service. Stateless:
// no retries, no caching, transport-default timeouts.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/doculex/docgate/internal/metrics"
)

const serviceName = "enrichment"

// Client calls the annotation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds the annotation service endpoint.
type Config struct {
	Host   string
	Port   int
	Logger *zap.Logger
}

// New creates an enrichment client.
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

// Annotate posts the text to the annotation service and returns the response
// body verbatim, including the remote service's own error shape.
func (c *Client) Annotate(ctx context.Context, text, language string) (json.RawMessage, error) {
	form := url.Values{
		"id":                  {"1"},
		"text_" + language:    {text},
		"languages":           {language},
		"ontology":            {"ALL"},
		"indices":             {"false"},
		"numericClassifiers":  {"false"},
		"spaces":              {"false"},
		"wordAnnotations":     {"false"},
		"synonyms":            {"false"},
		"allowAlternateNames": {"false"},
		"hierarchy":           {"false"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/annotate", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build annotate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	// Record the duration on every branch. With no client timeout the
	// failed calls are the ones whose latency matters most.
	defer func() {
		metrics.RemoteRequestDuration.WithLabelValues(serviceName, "annotate").Observe(time.Since(start).Seconds())
	}()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RemoteRequestsTotal.WithLabelValues(serviceName, "annotate", "error").Inc()
		return nil, fmt.Errorf("annotate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RemoteRequestsTotal.WithLabelValues(serviceName, "annotate", "error").Inc()
		return nil, fmt.Errorf("read annotate response: %w", err)
	}

	metrics.RemoteRequestsTotal.WithLabelValues(serviceName, "annotate", "success").Inc()

	c.logger.Debug("annotate call",
		zap.Int("status", resp.StatusCode),
		zap.Int("response_bytes", len(body)),
	)
	return body, nil
}
