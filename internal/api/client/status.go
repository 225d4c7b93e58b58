package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Operation status values reported by the transcription backend.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// OperationStatus is the status endpoint's response body. Error is only
// populated when Status is "failed", and may be absent even then.
type OperationStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// GetOperation fetches the current status of a transcription operation.
// A non-2xx response is returned as an error; the poller treats any
// error from this method as transient.
func (c *Client) GetOperation(ctx context.Context, operationID string) (*OperationStatus, error) {
	endpoint := c.baseURL + "/api/chat/transcribe/operations/" + url.PathEscape(operationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("operation status request: HTTP %d", resp.StatusCode)
	}

	var st OperationStatus
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return nil, fmt.Errorf("decode operation status: %w", err)
	}
	return &st, nil
}
