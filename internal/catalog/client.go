package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Oktay2617/trvip6/internal/config"
	"github.com/Oktay2617/trvip6/internal/logging"
)

// Fetcher retrieves the channel catalog.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Channel, error)
}

// Client fetches the catalog from a single endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTransport overrides the round tripper beneath the header injection.
func WithTransport(base http.RoundTripper) Option {
	return func(c *Client) {
		if base == nil {
			return
		}
		if ht, ok := c.httpClient.Transport.(*headerTransport); ok {
			ht.base = base
		}
	}
}

// WithLogger sets the logger used for progress lines.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a catalog client that sends userAgent and referer with every
// request and gives up after timeout.
func New(url, userAgent, referer string, timeout time.Duration, opts ...Option) (*Client, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("catalog url required")
	}
	if timeout <= 0 {
		return nil, errors.New("catalog timeout must be positive")
	}
	headers := http.Header{}
	headers.Set("User-Agent", userAgent)
	headers.Set("Referer", referer)

	client := &Client{
		url: url,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &headerTransport{headers: headers, base: http.DefaultTransport},
		},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// NewFromConfig builds a client from the [source] section.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	return New(cfg.Source.URL, cfg.Source.UserAgent, cfg.Source.Referer, cfg.RequestTimeout(), opts...)
}

// URL returns the catalog endpoint.
func (c *Client) URL() string {
	return c.url
}

// Fetch performs one GET against the catalog endpoint and decodes the body as
// a JSON array of channel entries, preserving their order.
func (c *Client) Fetch(ctx context.Context) ([]Channel, error) {
	c.logger.Info("fetching channel catalog", "url", c.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, newError(ErrUnknown, c.url, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newError(classifyTransport(err), c.url, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		fetchErr := newError(ErrHTTP, c.url, "", nil)
		fetchErr.Status = resp.StatusCode
		return nil, fetchErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(classifyTransport(err), c.url, "read body", err)
	}

	channels, err := decodeChannels(body)
	if err != nil {
		return nil, newError(ErrDecode, c.url, "", err)
	}

	c.logger.Info("channel catalog fetched",
		"channels", len(channels),
		"latency", time.Since(requestStart).Round(time.Millisecond),
	)
	return channels, nil
}

func decodeChannels(body []byte) ([]Channel, error) {
	if !json.Valid(body) {
		return nil, errors.New("response body is not valid JSON")
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("expected a JSON array of channels, got %s", typeErr.Value)
		}
		return nil, err
	}
	channels := make([]Channel, 0, len(entries))
	for _, entry := range entries {
		channels = append(channels, NewChannel(entry))
	}
	return channels, nil
}
