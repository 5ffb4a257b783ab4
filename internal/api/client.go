// Package api talks to the external barcode generation service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/barcoder/internal/models"
)

// DefaultTimeout bounds every request made by a Client
const DefaultTimeout = 30 * time.Second

// CSVFilename is the name the service's history export is saved under
const CSVFilename = "qr_generation_log.csv"

// Client is a generation service API client
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

// APIError is returned when the service answers with a failure
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("service returned status %d: %s", e.StatusCode, e.Message)
}

// ServiceMessage extracts the message the service supplied with a failure,
// or an empty string when err did not come from the service.
func ServiceMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// NewClient creates a new client for the service rooted at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate asks the service to encode a request
func (c *Client) Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/generate/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out models.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode generate response: %w", err)
	}
	if !out.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: out.Message}
	}
	if out.ImageURL == "" {
		out.ImageURL = out.Log.ImageURL
	}

	return &out, nil
}

// Logs fetches every generation log in the order the service returns them
func (c *Client) Logs(ctx context.Context) ([]models.GenerationLog, error) {
	resp, err := c.do(ctx, http.MethodGet, "/logs/", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var logs []models.GenerationLog
	if err := json.NewDecoder(resp.Body).Decode(&logs); err != nil {
		return nil, fmt.Errorf("failed to decode logs: %w", err)
	}
	if logs == nil {
		logs = []models.GenerationLog{}
	}

	return logs, nil
}

// ClearLogs asks the service to purge its history
func (c *Client) ClearLogs(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodDelete, "/logs/clear/", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// DownloadCSV fetches the history export produced by the service
func (c *Client) DownloadCSV(ctx context.Context) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, "/logs/csv/", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV export: %w", err)
	}

	return data, nil
}

// DownloadImage fetches a generated image by its absolute URL
func (c *Client) DownloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	if imageURL == "" {
		return nil, errors.New("generation has no image url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return data, nil
}

// do sends one request and turns non-2xx answers into an APIError.
// The caller owns the returned body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	slog.Debug("Service call", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: messageFromBody(raw)}
	}

	return resp, nil
}

// messageFromBody prefers the service's JSON "message" field and falls back
// to the trimmed body text.
func messageFromBody(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Detail != "" {
			return payload.Detail
		}
		return ""
	}
	return strings.TrimSpace(string(raw))
}
