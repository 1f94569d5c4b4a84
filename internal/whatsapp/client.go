package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// InstanceState is the tri-state connection status of a messaging session.
type InstanceState string

const (
	StateConnected    InstanceState = "connected"
	StateDisconnected InstanceState = "disconnected"
	StateError        InstanceState = "error"
)

// sendDelayMillis is the fixed artificial delay the platform applies before
// delivering an outbound message, paired with the "composing" presence so the
// reply reads as typed by a human.
const sendDelayMillis = 1200

// Client calls the Evolution API for one instance. Credentials come from the
// Settings record; a Client is built per pipeline invocation.
type Client struct {
	BaseURL    string
	InstanceID string
	Token      string

	// HTTPClient is used for all requests. Left nil, a client with a 30s
	// timeout is used.
	HTTPClient *http.Client
}

// NewClient builds a Client for the given instance.
func NewClient(baseURL, instanceID, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		InstanceID: instanceID,
		Token:      token,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

type sendTextRequest struct {
	Number  string `json:"number"`
	Options struct {
		Delay    int    `json:"delay"`
		Presence string `json:"presence"`
	} `json:"options"`
	TextMessage struct {
		Text string `json:"text"`
	} `json:"textMessage"`
}

// SendText delivers a text message to the given number. A non-2xx status is
// an error; the caller decides whether a failed send aborts anything (the
// pipeline records it and moves on, no retry).
func (c *Client) SendText(ctx context.Context, number, text string) error {
	var body sendTextRequest
	body.Number = number
	body.Options.Delay = sendDelayMillis
	body.Options.Presence = "composing"
	body.TextMessage.Text = text

	url := fmt.Sprintf("%s/message/sendText/%s", c.BaseURL, c.InstanceID)
	resp, err := c.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("send text: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send text: evolution api status %d", resp.StatusCode)
	}
	return nil
}

// SendTyping sets the "composing" presence for the conversation. Best-effort;
// callers log and ignore failures.
func (c *Client) SendTyping(ctx context.Context, number string) error {
	body := map[string]string{
		"number":   number,
		"presence": "composing",
	}
	url := fmt.Sprintf("%s/chat/presence/%s", c.BaseURL, c.InstanceID)
	resp, err := c.do(ctx, http.MethodPut, url, body)
	if err != nil {
		return fmt.Errorf("send typing: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send typing: evolution api status %d", resp.StatusCode)
	}
	return nil
}

// InstanceStatus fetches the connection state of the instance. Network or
// non-success responses map to StateError; a reachable instance reports
// connected only when the platform state is "open".
func (c *Client) InstanceStatus(ctx context.Context) InstanceState {
	url := fmt.Sprintf("%s/instance/fetchInstances/%s", c.BaseURL, c.InstanceID)
	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return StateError
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return StateError
	}

	var payload struct {
		Instance struct {
			State string `json:"state"`
		} `json:"instance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return StateError
	}
	if payload.Instance.State == "open" {
		return StateConnected
	}
	return StateDisconnected
}

func (c *Client) do(ctx context.Context, method, url string, body any) (*http.Response, error) {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	return c.httpClient().Do(req)
}
