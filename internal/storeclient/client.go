// Package storeclient is the HTTP client for the persistence service that
// keeps staff rows, activity logs and bots.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from the store.
type APIError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("store %s %s: HTTP %d: %s", e.Method, e.Path, e.Code, e.Body)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the store rooted at baseURL, e.g.
// "http://localhost:3000/api".
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) ListStaff(ctx context.Context) ([]models.StaffEntry, error) {
	var staff []models.StaffEntry
	if err := c.do(ctx, http.MethodGet, "/staff", nil, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// SyncStaff upserts a staff row keyed by id.
func (c *Client) SyncStaff(ctx context.Context, entry models.StaffEntry) error {
	return c.do(ctx, http.MethodPost, "/staff/sync", entry, nil)
}

// ListLogs returns the most recent logs, newest first.
func (c *Client) ListLogs(ctx context.Context) ([]models.ActivityLogEntry, error) {
	var logs []models.ActivityLogEntry
	if err := c.do(ctx, http.MethodGet, "/logs", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *Client) AppendLog(ctx context.Context, entry models.ActivityLogEntry) error {
	return c.do(ctx, http.MethodPost, "/logs", entry, nil)
}

func (c *Client) ListBots(ctx context.Context) ([]models.BotEntry, error) {
	var bots []models.BotEntry
	if err := c.do(ctx, http.MethodGet, "/bots", nil, &bots); err != nil {
		return nil, err
	}
	return bots, nil
}

// UpsertBot creates or fully replaces a bot keyed by id.
func (c *Client) UpsertBot(ctx context.Context, bot models.BotEntry) error {
	return c.do(ctx, http.MethodPost, "/bots", bot, nil)
}

func (c *Client) DeleteBot(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bots/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call store %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode store %s %s response: %w", method, path, err)
	}
	return nil
}
