package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tradefeed/internal/model"
)

// Client talks to the trade feed backend. Requests are rate limited and time
// bounded; there is no automatic retry, the caller re-triggers explicitly.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Config configures a backend client.
type Config struct {
	BaseURL           string
	RequestTimeout    time.Duration
	RequestsPerSecond float64
}

func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 10),
		logger:     logger,
	}, nil
}

// EnsureUser creates or fetches the account bound to a wallet address.
func (c *Client) EnsureUser(ctx context.Context, walletAddress string) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPost, "/api/users/ensure", map[string]string{
		"wallet_address": walletAddress,
	}, &out)
	return out, err
}

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	Username string `json:"username"`
	TxHash   string `json:"tx_hash"`
	Content  string `json:"content"`
}

// CreatePost publishes a trade post. Domain failures come back as *APIError
// with a user-facing message for 403, 404, and 409.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (model.Post, error) {
	var out model.Post
	err := c.do(ctx, http.MethodPost, "/api/posts", req, &out)
	return out, err
}

// ListPostsQuery selects a feed page.
type ListPostsQuery struct {
	Sort   string
	Limit  int
	Offset int
	Viewer string
}

// ListPostsResponse is one feed page plus the total match count.
type ListPostsResponse struct {
	Posts []model.Post `json:"posts"`
	Total int          `json:"total"`
}

// ListPosts fetches one feed page.
func (c *Client) ListPosts(ctx context.Context, q ListPostsQuery) (ListPostsResponse, error) {
	values := url.Values{}
	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}
	values.Set("limit", strconv.Itoa(q.Limit))
	values.Set("offset", strconv.Itoa(q.Offset))
	if q.Viewer != "" {
		values.Set("viewer", q.Viewer)
	}

	var out ListPostsResponse
	err := c.do(ctx, http.MethodGet, "/api/posts?"+values.Encode(), nil, &out)
	return out, err
}

// PostedHashes returns the tx hashes that already have posts.
func (c *Client) PostedHashes(ctx context.Context) ([]string, error) {
	var out struct {
		PostedHashes []string `json:"posted_hashes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/posts/posted-hashes", nil, &out); err != nil {
		return nil, err
	}
	return out.PostedHashes, nil
}

// RecordTipRequest is the body of POST /api/posts/{id}/tips.
type RecordTipRequest struct {
	TipperAddress string `json:"tipper_address"`
	TxHash        string `json:"tx_hash"`
}

// RecordTip records a confirmed on-chain tip against a post.
func (c *Client) RecordTip(ctx context.Context, postID int64, req RecordTipRequest) (model.Tip, error) {
	var out model.Tip
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/tips", postID), req, &out)
	return out, err
}

// PostTips lists the tips recorded on a post.
func (c *Client) PostTips(ctx context.Context, postID int64) ([]model.Tip, error) {
	var out []model.Tip
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d/tips", postID), nil, &out)
	return out, err
}

// UserTips summarizes the tips a user has received.
func (c *Client) UserTips(ctx context.Context, username string) (model.TipSummary, error) {
	var out model.TipSummary
	err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(username)+"/tips", nil, &out)
	return out, err
}

// SwapsResponse is the raw swap envelope: logs plus the block and transaction
// records they join to.
type SwapsResponse struct {
	Success      bool                    `json:"success"`
	Swaps        []model.SwapLog         `json:"swaps"`
	Blocks       []model.SwapBlock       `json:"blocks"`
	Transactions []model.SwapTransaction `json:"transactions"`
	Error        string                  `json:"error,omitempty"`
}

// Swaps fetches raw swap events for a wallet address.
func (c *Client) Swaps(ctx context.Context, address string, debug bool) (SwapsResponse, error) {
	values := url.Values{}
	values.Set("address", address)
	if debug {
		values.Set("debug", "true")
	}

	var out SwapsResponse
	if err := c.do(ctx, http.MethodGet, "/api/swaps?"+values.Encode(), nil, &out); err != nil {
		return SwapsResponse{}, err
	}
	if !out.Success {
		return SwapsResponse{}, fmt.Errorf("swaps fetch failed: %s", out.Error)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
