package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Coder-ak/svitlo-e-stats/internal/logger"
)

// DefaultTimeout bounds a single API request.
const DefaultTimeout = 15 * time.Second

// Client talks to the Svitlo bot statistics API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL, e.g.
// "https://svitlo.example.org". A zero timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// AccessStats fetches binned access counts for one time window.
func (c *Client) AccessStats(ctx context.Context, endTimeMs, rangeSec, binSec int64) (*AccessStats, error) {
	q := url.Values{}
	q.Set("endTime", strconv.FormatInt(endTimeMs, 10))
	q.Set("rangeSec", strconv.FormatInt(rangeSec, 10))
	q.Set("binInterval", strconv.FormatInt(binSec, 10))

	var stats AccessStats
	u, err := c.getJSON(ctx, "/api/stats/access", q, &stats)
	if err != nil {
		return nil, err
	}
	if stats.Bins == nil {
		return nil, &MalformedResponseError{URL: u, Reason: "missing bins array"}
	}
	for category, counts := range stats.CountsByType {
		if len(counts) != len(stats.Bins) {
			return nil, &MalformedResponseError{
				URL:    u,
				Reason: fmt.Sprintf("category %q has %d counts for %d bins", category, len(counts), len(stats.Bins)),
			}
		}
	}
	return &stats, nil
}

// Summary fetches the aggregate counters. With refresh the server recomputes
// instead of serving its cached aggregate.
func (c *Client) Summary(ctx context.Context, refresh bool) (*Summary, error) {
	q := url.Values{}
	if refresh {
		q.Set("refresh", "true")
	}
	var s Summary
	if _, err := c.getJSON(ctx, "/api/stats/summary", q, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Insights fetches global and per-area outage/load statistics.
func (c *Client) Insights(ctx context.Context) (*Insights, error) {
	var ins Insights
	if _, err := c.getJSON(ctx, "/api/stats/insights", nil, &ins); err != nil {
		return nil, err
	}
	return &ins, nil
}

// LightStatus fetches the ordered on/off events per area in [startMs, endMs].
func (c *Client) LightStatus(ctx context.Context, startMs, endMs int64) (*LightStatus, error) {
	q := url.Values{}
	q.Set("startTime", strconv.FormatInt(startMs, 10))
	q.Set("endTime", strconv.FormatInt(endMs, 10))

	var ls LightStatus
	if _, err := c.getJSON(ctx, "/api/stats/light", q, &ls); err != nil {
		return nil, err
	}
	return &ls, nil
}

// getJSON performs a GET and decodes the body into v. It returns the request
// URL for error reporting.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, v any) (string, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return u, &NetworkError{URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return u, &NetworkError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	logger.Debug("stats API request", "url", u, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return u, &NetworkError{URL: u, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return u, &MalformedResponseError{URL: u, Reason: err.Error()}
	}
	return u, nil
}
