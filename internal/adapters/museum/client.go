// Package museum is a client for the Harvard Art Museums collection API.
package museum

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

	"golang.org/x/sync/singleflight"

	"github.com/okian/museumguide/internal/domain/model"
	"github.com/okian/museumguide/pkg/logger"
	"github.com/okian/museumguide/pkg/metrics"
)

// DefaultTimeout applies when no timeout or HTTP client is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody bounds how much of a failed response is kept for the error.
const maxErrorBody = 512

// Fetcher loads a collection object by id.
type Fetcher interface {
	Object(ctx context.Context, id string) (*model.Object, error)
}

// Client fetches objects from /object/{id}.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
	group      singleflight.Group
}

var _ Fetcher = (*Client)(nil)

// New creates a museum client. The api key is sent as-is; an empty key is
// allowed so a keyless proxy can sit in front of the real API.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("museum base url required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse museum base url: %w", err)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Object fetches one object. Concurrent calls for the same id share a single
// upstream request.
func (c *Client) Object(ctx context.Context, id string) (*model.Object, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidID
	}

	ch := c.group.DoChan(id, func() (any, error) {
		// Detach from the first caller's cancellation; the HTTP client
		// timeout still bounds the call.
		return c.fetch(context.WithoutCancel(ctx), id)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.RecordMuseumSharedRequest()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		// Shared between callers; treat as read-only.
		return res.Val.(*model.Object), nil
	}
}

func (c *Client) fetch(ctx context.Context, id string) (*model.Object, error) {
	endpoint, err := url.Parse(c.baseURL + "/object/" + url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	// Errors and logs name the endpoint without its query so the key stays out.
	redacted := endpoint.String()
	if c.apiKey != "" {
		params := url.Values{}
		params.Set("apikey", c.apiKey)
		endpoint.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		c.observe("transport_error", latency)
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redacted
		}
		return nil, fmt.Errorf("%w: execute request (latency=%v): %w", ErrUpstream, latency, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.observe("not_found", latency)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case resp.StatusCode != http.StatusOK:
		c.observe("bad_status", latency)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d (latency=%v): %s", ErrUpstream, resp.StatusCode, latency, strings.TrimSpace(string(body)))
	}

	var obj model.Object
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		c.observe("decode_error", latency)
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	c.observe("ok", latency)
	c.logger.Debug(ctx, "fetched museum object",
		logger.String("object_id", id),
		logger.Duration("latency", latency),
		logger.Int("people", len(obj.People)),
		logger.Int("images", len(obj.Images)),
	)
	return &obj, nil
}

func (c *Client) observe(outcome string, latency time.Duration) {
	metrics.RecordMuseumRequest(outcome, float64(latency.Milliseconds()))
}
