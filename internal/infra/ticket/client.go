package ticket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"dcops-server/internal/infra/utils"
)

const _defaultTimeout = 10 * time.Second

// Client opens approval tickets in the external ticket system. A ticket is
// opened at most once per work order, so callers must not retry on failure.
type Client interface {
	CreateTicket(ctx context.Context, req CreateRequest) (string, error)
}

type Config struct {
	BaseURL    string
	AppID      string
	Username   string
	Timeout    time.Duration
	ProcessIDs map[string]string
}

type CreateRequest struct {
	BatchID       string         `json:"batch_id"`
	OperationType string         `json:"operation_type"`
	ProcessID     string         `json:"process_id"`
	Title         string         `json:"title"`
	Applicant     string         `json:"applicant"`
	Payload       map[string]any `json:"payload,omitempty"`
}

type createResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    struct {
		OrderNumber string `json:"order_number"`
	} `json:"data"`
}

var _ Client = (*HTTPClient)(nil)

type HTTPClient struct {
	config Config
	client *http.Client
}

func NewHTTPClient(config Config) *HTTPClient {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = _defaultTimeout
	}

	return &HTTPClient{
		config: config,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) CreateTicket(ctx context.Context, req CreateRequest) (string, error) {
	if req.ProcessID == "" {
		req.ProcessID = c.config.ProcessIDs[req.OperationType]
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling ticket request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/tickets", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building ticket request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-App-ID", c.config.AppID)
	httpReq.Header.Set("X-Username", c.config.Username)
	httpReq.Header.Set("X-Request-ID", utils.GenerateHEX(16))

	slog.Debug("creating external ticket",
		slog.String("batch_id", req.BatchID),
		slog.String("operation_type", req.OperationType))

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling ticket system: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ticket system returned status %d", resp.StatusCode)
	}

	var payload createResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding ticket response: %w", err)
	}

	if payload.Status != 0 || payload.Data.OrderNumber == "" {
		return "", fmt.Errorf("ticket system rejected request: status=%d message=%q", payload.Status, payload.Message)
	}

	slog.Info("external ticket created",
		slog.String("batch_id", req.BatchID),
		slog.String("order_number", payload.Data.OrderNumber))

	return payload.Data.OrderNumber, nil
}
