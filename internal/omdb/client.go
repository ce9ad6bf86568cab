package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/cinex/internal/domain"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultDetailTTL = 10 * time.Minute
	userAgent        = "Cinex/1.0"
)

// Options tunes a Client. Zero values pick the defaults.
type Options struct {
	Timeout time.Duration

	// RequestsPerSecond caps outgoing requests; <= 0 disables limiting
	RequestsPerSecond float64
	Burst             int

	// DetailTTL is how long found detail records are cached; < 0 disables
	DetailTTL time.Duration

	HTTPClient *http.Client
}

// Client implements domain.MovieClient against the backend proxy
type Client struct {
	apiURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
	details    *cache.Cache
	logger     *slog.Logger
}

var _ domain.MovieClient = (*Client)(nil)

// NewClient creates a client for the proxy rooted at apiURL (e.g.
// http://localhost:8001/api)
func NewClient(apiURL string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	var details *cache.Cache
	switch {
	case opts.DetailTTL == 0:
		details = cache.New(defaultDetailTTL, 2*defaultDetailTTL)
	case opts.DetailTTL > 0:
		details = cache.New(opts.DetailTTL, 2*opts.DetailTTL)
	}

	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
		details:    details,
		logger:     logger,
	}
}

// doRequest performs a GET against the proxy and returns the body
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	reqURL := c.apiURL + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("backend request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("backend request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: unexpected status code %d", domain.ErrServerOffline, resp.StatusCode)
	}

	return body, nil
}

// Search returns one page of results. Every call issues exactly one request.
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.SearchPage, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))

	body, err := c.doRequest(ctx, "/movies/search", q)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return MapSearchPage(&resp), nil
}

// Details returns the full record of a title. Found records are cached.
func (c *Client) Details(ctx context.Context, id string) (*domain.MovieDetail, error) {
	if c.details != nil {
		if v, ok := c.details.Get(id); ok {
			c.logger.Debug("detail cache hit", "id", id)
			d := *v.(*domain.MovieDetail)
			return &d, nil
		}
	}

	body, err := c.doRequest(ctx, "/movies/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var resp DetailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse detail response: %w", err)
	}

	detail := MapDetail(&resp)
	if detail.Found && c.details != nil {
		stored := *detail
		c.details.SetDefault(id, &stored)
	}
	return detail, nil
}
