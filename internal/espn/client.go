package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/gnhen/sports/internal/leagues"
	"github.com/gnhen/sports/internal/timeutil"
)

const (
	defaultBaseURL = "https://site.api.espn.com"
	defaultTimeout = 10 * time.Second
	defaultRetries = 3

	summaryPathPrefix = "/apis/site/v2/sports/"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls how the client reaches the upstream API.
type Config struct {
	// BaseURL hosts the summary endpoint; scoreboard URLs come from the
	// league registry entries.
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	MaxRetries int
}

// Client fetches scoreboard and summary payloads from the upstream API.
type Client struct {
	baseURL    string
	httpClient httpDoer
	maxRetries int
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		maxRetries: resolveRetries(cfg.MaxRetries),
	}
}

// Scoreboard fetches one league's scoreboard for a date. The date is
// encoded as YYYYMMDD in its own calendar zone, matching the upstream's
// local-day windows.
func (c *Client) Scoreboard(ctx context.Context, league leagues.League, date time.Time) (*ScoreboardResponse, error) {
	endpoint := fmt.Sprintf("%s?dates=%s", league.ScoreboardURL, timeutil.FormatDate(date))

	var payload ScoreboardResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Events fetches and unwraps a league's scoreboard event list.
func (c *Client) Events(ctx context.Context, league leagues.League, date time.Time) ([]Event, error) {
	payload, err := c.Scoreboard(ctx, league, date)
	if err != nil {
		return nil, err
	}
	return payload.Events, nil
}

// Summary fetches the box-score/summary payload for one event. The caller
// is expected to skip leagues with an empty summary path.
func (c *Client) Summary(ctx context.Context, league leagues.League, eventID string) (*SummaryResponse, error) {
	if league.SummaryPath == "" {
		return nil, fmt.Errorf("espn: league %s has no summary path", league.ID)
	}
	endpoint := fmt.Sprintf("%s%s%s/summary?event=%s",
		c.baseURL, summaryPathPrefix, league.SummaryPath, url.QueryEscape(eventID))

	var payload SummaryResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// getJSON performs a GET with bounded exponential backoff. Client errors
// other than 429 are permanent; everything else is retried.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			err := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("espn: decode %s: %w", endpoint, err))
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)),
		ctx,
	)
	return backoff.Retry(operation, policy)
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("espn: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("espn: unexpected status %d: %s", e.Code, e.Body)
}

func normalizeBaseURL(base string) string {
	if base == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(base, "/")
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func resolveRetries(n int) int {
	if n <= 0 {
		return defaultRetries
	}
	return n
}
