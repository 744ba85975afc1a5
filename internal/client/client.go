package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

// API is the backend surface the suite drives. Every call returns the raw
// response body; interpreting it is the caller's job.
type API interface {
	OpenSession(ctx context.Context, params model.Params) (string, error)
	SetNick(ctx context.Context, params model.Params) (string, error)
	StartTournament(ctx context.Context, params model.Params) (string, error)
	EndTournament(ctx context.Context, params model.Params) (string, error)
	DeleteLeaderboards(ctx context.Context) (string, error)
	RefreshPlayer(ctx context.Context, params model.Params) (string, error)
	CloseSession(ctx context.Context, params model.Params) (string, error)
	DeletePlayer(ctx context.Context, params model.Params) (string, error)
}

// BasePath is prepended to every operation path
const BasePath = "/api/v1/"

// Options configures a Client
type Options struct {
	APIKey  string
	Timeout time.Duration
	Logger  *slog.Logger
	// HTTPClient overrides the default client (tests pass httptest clients)
	HTTPClient *http.Client
}

// Client is an HTTP/JSON implementation of API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ API = (*Client)(nil)

// New creates a new API client
func New(baseURL string, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     opts.APIKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Do sends params to the named operation and returns the body unmodified.
// Domain failures come back as an error envelope, not a Go error; the error
// return is reserved for transport and read failures.
func (c *Client) Do(ctx context.Context, op model.Operation, params model.Params) (string, error) {
	if params == nil {
		params = model.Params{}
	}
	data, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("%s: failed to marshal request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+BasePath+string(op), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed",
			slog.String("operation", string(op)),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: failed to read response: %w", op, err)
	}

	c.logger.Debug("backend call",
		slog.String("operation", string(op)),
		slog.Int("http_status", resp.StatusCode),
		slog.String("request_id", resp.Header.Get("X-Request-ID")),
		slog.Int("size", len(body)),
		slog.Duration("duration", time.Since(start)),
	)

	return string(body), nil
}

// Ping checks that the backend answers its health endpoint
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+BasePath+"health", nil)
	if err != nil {
		return fmt.Errorf("health: failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("health: HTTP %d", resp.StatusCode)
	}
	return nil
}

// OpenSession creates a session, and implicitly a player, for a device
func (c *Client) OpenSession(ctx context.Context, params model.Params) (string, error) {
	return c.Do(ctx, model.OpOpenSession, params)
}

// SetNick changes a player's nickname
func (c *Client) SetNick(ctx context.Context, params model.Params) (string, error) {
	return c.Do(ctx, model.OpSetNick, params)
}

// StartTournament enters a player into a new tournament
func (c *Client) StartTournament(ctx context.Context, params model.Params) (string, error) {
	return c.Do(ctx, model.OpStartTournament, params)
}

// EndTournament ends a running tournament
func (c *Client) EndTournament(ctx context.Context, params model.Params) (string, error) {
	return c.Do(ctx, model.OpEndTournament, params)
}

// DeleteLeaderboards drops every leaderboard on the backend
func (c *Client) DeleteLeaderboards(ctx context.Context) (string, error) {
	return c.Do(ctx, model.OpDeleteLeaderboards, nil)
}

// RefreshPlayer issues a fresh player token
func (c *Client) RefreshPlayer(ctx context.Context, params model.Params) (string, error) {
	return c.Do(ctx, model.OpRefreshPlayer, params)
}

// CloseSession ends a session and returns the player's token
func (c *Client) CloseSession(ctx context.Context, params model.Params) (string, error) {
	return c.Do(ctx, model.OpCloseSession, params)
}

// DeletePlayer removes a player
func (c *Client) DeletePlayer(ctx context.Context, params model.Params) (string, error) {
	return c.Do(ctx, model.OpDeletePlayer, params)
}

// Call dispatches op through any API implementation
func Call(ctx context.Context, api API, op model.Operation, params model.Params) (string, error) {
	switch op {
	case model.OpOpenSession:
		return api.OpenSession(ctx, params)
	case model.OpSetNick:
		return api.SetNick(ctx, params)
	case model.OpStartTournament:
		return api.StartTournament(ctx, params)
	case model.OpEndTournament:
		return api.EndTournament(ctx, params)
	case model.OpDeleteLeaderboards:
		return api.DeleteLeaderboards(ctx)
	case model.OpRefreshPlayer:
		return api.RefreshPlayer(ctx, params)
	case model.OpCloseSession:
		return api.CloseSession(ctx, params)
	case model.OpDeletePlayer:
		return api.DeletePlayer(ctx, params)
	}
	return "", fmt.Errorf("unknown operation %q", op)
}
