// Package geocode is the Nominatim-backed geocoder client, grounded on
// original_source/pipeline/geocoder.py: a single process-wide rate
// limiter throttles outbound requests, and each candidate response is
// scored against the submitted address before being accepted.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/sony/gobreaker"

	"github.com/Skatetrax/ice-maker/internal/errs"
)

// Result is one scored geocode outcome for a submitted address.
type Result struct {
	Latitude   float64
	Longitude  float64
	Confidence float64
	DisplayName string
}

// Clock abstracts time.Now/time.Sleep so the rate limiter is testable
// without real sleeps.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time    { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Client queries Nominatim, rate-limiting itself to at most one request
// per RateLimit interval (a single global last-request timestamp, as in
// geocoder.py — this pipeline is single-threaded per source, so one
// mutex held by the Client stands in for the original's module global).
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	clock      Clock
	rateLimit  time.Duration

	mu       sync.Mutex
	lastCall time.Time
}

// Option configures a Client, following the teacher's functional-options
// construction style.
type Option func(*Client)

// WithHTTPClient overrides the default http.Client (tests inject one
// pointed at an httptest.Server).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock overrides the default real clock (tests inject a fake one to
// avoid real sleeps).
func WithClock(clk Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// New builds a Client against baseURL (Nominatim's /search endpoint),
// rate-limited to one request per rateLimit.
func New(baseURL string, rateLimit time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		clock:      realClock{},
		rateLimit:  rateLimit,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "nominatim",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type NominatimResult struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
}

// Search queries Nominatim for query and returns every candidate result
// Nominatim returned, unscored (the caller scores them against the
// submitted address via Score).
func (c *Client) Search(ctx context.Context, query string) ([]NominatimResult, error) {
	c.throttle()

	v, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doSearch(ctx, query)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return nil, errs.Transient(errors.Wrap(err, "geocoder circuit open"))
		}
		return nil, err
	}
	return v.([]NominatimResult), nil
}

func (c *Client) doSearch(ctx context.Context, query string) ([]NominatimResult, error) {
	u := fmt.Sprintf("%s?%s", c.baseURL, url.Values{
		"q":              {query},
		"format":         {"jsonv2"},
		"addressdetails": {"1"},
		"limit":          {"5"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errs.Permanent(errors.Wrap(err, "build request"))
	}
	req.Header.Set("User-Agent", "ice-maker/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Transient(errors.Wrap(err, "nominatim request"))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, errs.Transient(fmt.Errorf("nominatim returned %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.Permanent(fmt.Errorf("nominatim returned %d", resp.StatusCode))
	}

	var results []NominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, errs.Permanent(errors.Wrap(err, "decode nominatim response"))
	}
	return results, nil
}

// throttle blocks until at least rateLimit has elapsed since the last
// outbound request, matching geocoder.py's module-global rate limiter.
func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := c.clock.Now().Sub(c.lastCall)
	if c.lastCall.IsZero() {
		c.lastCall = c.clock.Now()
		return
	}
	if elapsed < c.rateLimit {
		c.clock.Sleep(c.rateLimit - elapsed)
	}
	c.lastCall = c.clock.Now()
}
