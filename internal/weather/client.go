// Package weather fetches the current temperature from an
// OpenWeatherMap-compatible endpoint.
package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"
)

// Fetcher is the port the decision gate consumes; tests inject fakes.
type Fetcher interface {
	CurrentTemp(ctx context.Context, location string) (float64, error)
}

// Client implements Fetcher against an OpenWeatherMap-style API.
type Client struct {
	apiURL  string
	apiKey  string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a weather client. The circuit breaker only matters for
// long-running serve mode; in one-shot mode it never accumulates state.
func NewClient(apiURL, apiKey string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weather",
		MaxRequests: 2,
		Interval:    5 * time.Minute,
		Timeout:     10 * time.Minute,
	})

	return &Client{
		apiURL:  apiURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		circuit: cb,
	}
}

// CurrentTemp performs one GET and extracts main.temp from the JSON body.
// Any transport failure, non-2xx status, or missing field is an error; the
// caller treats it as fatal for the run.
func (c *Client) CurrentTemp(ctx context.Context, location string) (float64, error) {
	result, err := c.circuit.Execute(func() (any, error) {
		temp, err := c.fetch(ctx, location)
		if err != nil {
			return nil, err
		}
		return temp, nil
	})
	if err != nil {
		return 0, err
	}
	return result.(float64), nil
}

func (c *Client) fetch(ctx context.Context, location string) (float64, error) {
	values := url.Values{}
	values.Set("q", location)
	values.Set("appid", c.apiKey)
	values.Set("units", "imperial")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+values.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read weather response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	temp := gjson.GetBytes(body, "main.temp")
	if !temp.Exists() {
		return 0, fmt.Errorf("weather response missing main.temp")
	}

	return temp.Float(), nil
}
