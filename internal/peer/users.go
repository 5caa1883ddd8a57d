package peer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/clinic-api/internal/platform/logger"
)

// Outcomes reported to an Observer.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeBadStatus = "bad_status"
	OutcomeBadBody   = "bad_body"
)

// usersPeer names users-api in logs and metrics.
const usersPeer = "users-api"

// maxBodyBytes caps how much of a peer response is read.
const maxBodyBytes = 10 << 20

// Observer is notified of every peer call outcome.
type Observer interface {
	ObservePeer(peer, outcome string)
}

// UsersClient fetches the user list from users-api.
type UsersClient struct {
	baseURL  string
	http     *http.Client
	logger   *slog.Logger
	observer Observer
}

// Option configures a UsersClient.
type Option func(*UsersClient)

// WithHTTPClient replaces the default client. Its Timeout is left unchanged.
func WithHTTPClient(c *http.Client) Option {
	return func(u *UsersClient) { u.http = c }
}

// WithObserver reports each call outcome to o.
func WithObserver(o Observer) Option {
	return func(u *UsersClient) { u.observer = o }
}

// NewUsersClient creates a client for the users-api at baseURL. Each call is
// bounded by timeout.
func NewUsersClient(baseURL string, timeout time.Duration, logger *slog.Logger, opts ...Option) *UsersClient {
	if logger == nil {
		logger = slog.Default()
	}
	c := &UsersClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With(slog.String("component", "users_client"), slog.String("peer", usersPeer)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListUsers performs GET <base>/users. A transport error, a non-2xx status, or
// a body that is not a JSON array yields an unavailable Result.
func (c *UsersClient) ListUsers(ctx context.Context) Result[[]json.RawMessage] {
	log := logger.FromContextOrDefault(ctx, c.logger).With(slog.String("peer", usersPeer))
	start := time.Now()

	users, outcome, err := c.listUsers(ctx)
	if c.observer != nil {
		c.observer.ObservePeer(usersPeer, outcome)
	}

	if err != nil {
		log.Warn("peer unavailable",
			slog.String("outcome", outcome),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return Unavailable[[]json.RawMessage](err)
	}

	log.Debug("peer responded",
		slog.Int("count", len(users)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return Available(users)
}

func (c *UsersClient) listUsers(ctx context.Context) ([]json.RawMessage, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users", nil)
	if err != nil {
		return nil, OutcomeError, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, OutcomeError, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, OutcomeBadStatus, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var users []json.RawMessage
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&users); err != nil {
		return nil, OutcomeBadBody, fmt.Errorf("%w: invalid body: %v", ErrUnavailable, err)
	}
	if users == nil {
		// a literal null is not a list
		return nil, OutcomeBadBody, fmt.Errorf("%w: body is not an array", ErrUnavailable)
	}
	return users, OutcomeOK, nil
}
