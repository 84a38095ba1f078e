// Package device talks to the ESP32 pad's HTTP status endpoint.
package device

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
)

// StatusError is returned when the pad answers with a non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("device returned HTTP %d", e.Code)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the pad at baseURL. The caller bounds
// each request through the context; httpClient may be nil.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// statusPayload mirrors the firmware JSON; pointers tell absent fields
// apart from zero values.
type statusPayload struct {
	PhoneOnPad            *bool    `json:"phoneOnPad"`
	LastPhoneChangeAgoSec *float64 `json:"lastPhoneChangeAgoSec"`
	LastMotionAgoSec      *float64 `json:"lastMotionAgoSec"`
}

// FetchStatus performs GET /status with caching disabled.
func (c *Client) FetchStatus(ctx context.Context) (*models.DeviceReading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch device status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var payload statusPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode device status: %w", err)
	}

	reading := &models.DeviceReading{
		LastMotionAgoSec: 999999,
	}
	if payload.PhoneOnPad != nil {
		reading.PhoneOnPad = *payload.PhoneOnPad
	}
	if payload.LastPhoneChangeAgoSec != nil {
		reading.LastPhoneChangeAgoSec = *payload.LastPhoneChangeAgoSec
	}
	if payload.LastMotionAgoSec != nil {
		reading.LastMotionAgoSec = *payload.LastMotionAgoSec
	}
	return reading, nil
}
