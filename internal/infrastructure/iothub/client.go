// Package iothub relays appliance commands to a device through the IoT hub
// direct-method REST API. One request per call, no retries.
package iothub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lumenhub/appliance-portal/internal/core/domain"
)

const (
	apiVersion     = "2021-04-12"
	defaultTimeout = 10 * time.Second
	tokenLifetime  = time.Hour

	MethodStatus = "status"
	MethodToggle = "toggle"
)

// Client implements ports.DeviceRelay.
type Client struct {
	creds    Credentials
	deviceID string
	timeout  time.Duration
	baseURL  string
	http     *http.Client
	now      func() time.Time
}

type Option func(*Client)

// WithBaseURL overrides https://<HostName>; used against test servers.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func NewClient(creds Credentials, deviceID string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		creds:    creds,
		deviceID: deviceID,
		timeout:  timeout,
		baseURL:  "https://" + creds.HostName,
		http:     &http.Client{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type methodRequest struct {
	MethodName      string          `json:"methodName"`
	ResponseTimeout int             `json:"responseTimeoutInSeconds"`
	Payload         json.RawMessage `json:"payload"`
}

type methodResponse struct {
	Status  int             `json:"status"`
	Payload json.RawMessage `json:"payload"`
}

// applianceResponse is the device's reply. Field matching is
// case-insensitive, so both "Status" and "status" decode.
type applianceResponse struct {
	Status *domain.ApplianceStatus `json:"status"`
}

func (c *Client) GetStatus(ctx context.Context) (domain.ApplianceStatus, error) {
	return c.invoke(ctx, MethodStatus)
}

func (c *Client) ToggleStatus(ctx context.Context) (domain.ApplianceStatus, error) {
	return c.invoke(ctx, MethodToggle)
}

func (c *Client) invoke(ctx context.Context, method string) (domain.ApplianceStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(methodRequest{
		MethodName:      method,
		ResponseTimeout: int(c.timeout / time.Second),
		Payload:         json.RawMessage("null"),
	})
	if err != nil {
		return domain.StatusUnknown, fmt.Errorf("encode %s request: %w", method, err)
	}

	endpoint := fmt.Sprintf("%s/twins/%s/methods?api-version=%s", c.baseURL, url.PathEscape(c.deviceID), apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.StatusUnknown, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.creds.SASToken(c.now().Add(tokenLifetime)))

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.StatusUnknown, fmt.Errorf("%w: %s: %v", domain.ErrDeviceUnreachable, method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return domain.StatusUnknown, fmt.Errorf("%w: %s: read body: %v", domain.ErrDeviceUnreachable, method, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.StatusUnknown, fmt.Errorf("%w: %s: hub returned %d: %s", domain.ErrDeviceUnreachable, method, resp.StatusCode, bytes.TrimSpace(raw))
	}

	var mr methodResponse
	if err := json.Unmarshal(raw, &mr); err != nil {
		return domain.StatusUnknown, fmt.Errorf("%w: %s: decode response: %v", domain.ErrDeviceUnreachable, method, err)
	}
	if mr.Status >= 300 {
		return domain.StatusUnknown, fmt.Errorf("%w: %s: device returned %d", domain.ErrDeviceUnreachable, method, mr.Status)
	}

	return decodePayload(mr.Payload)
}

// decodePayload maps an absent or null payload to StatusUnknown.
func decodePayload(p json.RawMessage) (domain.ApplianceStatus, error) {
	if len(bytes.TrimSpace(p)) == 0 || bytes.Equal(bytes.TrimSpace(p), []byte("null")) {
		return domain.StatusUnknown, nil
	}
	var ar applianceResponse
	if err := json.Unmarshal(p, &ar); err != nil {
		return domain.StatusUnknown, fmt.Errorf("%w: decode payload: %v", domain.ErrDeviceUnreachable, err)
	}
	if ar.Status == nil {
		return domain.StatusUnknown, nil
	}
	return *ar.Status, nil
}
