// Package sms delivers text messages through the Semaphore gateway.
package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultEndpoint = "https://api.semaphore.co/api/v4/messages"

var ErrNotConfigured = errors.New("sms gateway is not configured")

// Client sends SMS through the Semaphore HTTP API.
type Client struct {
	apiKey     string
	senderName string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a Semaphore client. An empty apiKey yields a client
// that fails fast with ErrNotConfigured, which lets deployments without
// SMS run everything except the credit console login.
func NewClient(apiKey, senderName string) *Client {
	return &Client{
		apiKey:     apiKey,
		senderName: senderName,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Send delivers one message to one mobile number.
func (c *Client) Send(ctx context.Context, mobileNo, message string) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}
	mobileNo = strings.TrimSpace(mobileNo)
	if mobileNo == "" {
		return errors.New("mobile number is required")
	}

	form := url.Values{}
	form.Set("apikey", c.apiKey)
	form.Set("number", mobileNo)
	form.Set("message", message)
	if c.senderName != "" {
		form.Set("sendername", c.senderName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, string(body))
	}

	// Semaphore answers 200 with an error object on some failures, so
	// the body has to be inspected as well.
	var messages []struct {
		MessageID int64  `json:"message_id"`
		Status    string `json:"status"`
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("failed to read sms gateway response: %w", err)
	}
	if err := json.Unmarshal(body, &messages); err != nil || len(messages) == 0 {
		return fmt.Errorf("sms gateway rejected message: %s", string(body))
	}
	return nil
}
