package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"bizchat/internal/models"
)

// RelayClient posts chat requests to the relay endpoint.
type RelayClient struct {
	URL        string
	HTTPClient *http.Client
}

// NewRelayClient creates a client. A zero timeout leaves the call unbounded.
func NewRelayClient(url string, timeout time.Duration) *RelayClient {
	return &RelayClient{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Send posts req and decodes the relay envelope. The envelope is returned for
// any HTTP status; only transport and decode failures are errors.
func (c *RelayClient) Send(ctx context.Context, req models.RelayRequest) (*models.RelayResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	slog.Debug("relay_request",
		"url", c.URL,
		"business", req.Business,
		"history_turns", len(req.History),
	)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var out models.RelayResponse
	if err := json.Unmarshal(body, &out); err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		slog.Error("relay_response_unparseable", "status_code", resp.StatusCode, "response_preview", preview)
		return nil, fmt.Errorf("failed to unmarshal response (status %d): %w", resp.StatusCode, err)
	}

	slog.Debug("relay_response",
		"status_code", resp.StatusCode,
		"success", out.Success,
		"retry", out.Retry,
	)
	return &out, nil
}
