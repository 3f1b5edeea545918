// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"tutorlink-client/internal/common/errors"
	"tutorlink-client/internal/common/jsonutil"
	"tutorlink-client/internal/common/logger"
	"tutorlink-client/internal/common/metrics"
	"tutorlink-client/internal/session"
)

// Client is the typed wrapper around the platform REST API. Every page-level
// component goes through it instead of hand-rolling fetch/try-catch blocks.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   session.Store
	metrics    *metrics.Metrics
	logger     logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, sessions session.Store, m *metrics.Metrics, log logger.Logger) *Client {
	if m == nil {
		m = metrics.NewDefault()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sessions: sessions,
		metrics:  m,
		logger:   log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// do issues one JSON request and decodes the response into out (out may be
// nil, or a *json.RawMessage to defer decoding). All error paths collapse into
// the client error taxonomy; transport failures are terminal, there is no
// automatic retry.
func (c *Client) do(ctx context.Context, method, path, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, endpoint, out)
}

// send finishes a prepared request: attaches auth + request id headers,
// records metrics, and maps the response onto the error taxonomy.
func (c *Client) send(req *http.Request, endpoint string, out interface{}) error {
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	if sess, err := c.sessions.Load(req.Context()); err == nil {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveError(endpoint)
		c.logger.Error("request failed", map[string]interface{}{
			"endpoint":  endpoint,
			"requestId": requestID,
			"error":     err.Error(),
		})
		return errors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveRequest(endpoint, resp.StatusCode, time.Since(start))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkError(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serverMessage(respBody)
		c.logger.Warn("request rejected", map[string]interface{}{
			"endpoint":  endpoint,
			"requestId": requestID,
			"status":    resp.StatusCode,
			"message":   msg,
		})
		return errors.FromHTTPStatus(resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], respBody...)
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.NewNetworkError(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// serverMessage pulls the human-readable text out of an error body, trying
// the key names the API is known to use.
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	m := jsonutil.UnwrapObject(body)
	return jsonutil.StringAt(m, "message", "error", "data.message")
}

// get is the raw-fetch variant used by the dashboard aggregator; the payload
// shape is normalized downstream.
func (c *Client) get(ctx context.Context, path, endpoint string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, endpoint, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
