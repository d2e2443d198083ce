// Package probe exercises a running museum guide service the way the dialogue
// engine does, for smoke tests and operator checks.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/museumguide/internal/domain/dialogue"
)

const maxBody = 1 << 20

// Client posts dialogue requests to the service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a probe client.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// envelope is the subset of the response the probe reports on.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Result []struct {
			Value any `json:"value"`
		} `json:"result"`
		IsValid *bool `json:"is_valid"`
	} `json:"data"`
}

// Ask posts the painting request for title to endpoint.
func (c *Client) Ask(ctx context.Context, endpoint, title string) Result {
	res := Result{Endpoint: endpoint, RequestID: uuid.NewString()}

	body, err := json.Marshal(dialogue.NewPaintingRequest(title))
	if err != nil {
		res.Err = fmt.Errorf("marshal request: %w", err)
		return res
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		res.Err = fmt.Errorf("create request: %w", err)
		return res
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", res.RequestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	res.Latency = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("post %s: %w", endpoint, err)
		return res
	}
	defer resp.Body.Close()

	res.Raw, err = io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", endpoint, err)
		return res
	}
	if resp.StatusCode != http.StatusOK {
		res.Err = fmt.Errorf("%s: status %d", endpoint, resp.StatusCode)
		return res
	}

	var env envelope
	if err := json.Unmarshal(res.Raw, &env); err != nil {
		res.Err = fmt.Errorf("decode %s: %w", endpoint, err)
		return res
	}
	res.Status = env.Status
	res.Message = env.Message
	res.Value = summarize(env)
	return res
}

func summarize(env envelope) string {
	if env.Data.IsValid != nil {
		return fmt.Sprintf("valid=%t", *env.Data.IsValid)
	}
	values := make([]string, 0, len(env.Data.Result))
	for _, r := range env.Data.Result {
		values = append(values, fmt.Sprint(r.Value))
	}
	return strings.Join(values, ", ")
}

// Health calls GET /healthz and returns the reported status.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("get healthz: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("healthz: status %d", resp.StatusCode)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&body); err != nil {
		return "", fmt.Errorf("decode healthz: %w", err)
	}
	return body.Status, nil
}
