// Package weather fetches current conditions used as conversational context.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/streetwise-app/backend/internal/model/weather"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// ErrMissingCredential means no weather API key was configured.
var ErrMissingCredential = errors.New("weather api key is missing")

// Client queries the weather API in imperial units.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient builds a Client. baseURL is overridable for tests; empty uses the
// production endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch returns a weather snapshot for the coordinates. A missing key fails
// fast; a non-200 response is a hard failure. Callers treat weather as
// optional context and swallow errors themselves.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (*weather.Snapshot, error) {
	if c.apiKey == "" {
		return nil, ErrMissingCredential
	}

	endpoint := fmt.Sprintf("%s?%s", c.baseURL, url.Values{
		"lat":   {fmt.Sprintf("%f", lat)},
		"lon":   {fmt.Sprintf("%f", lon)},
		"units": {"imperial"},
		"appid": {c.apiKey},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create weather request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("weather api error %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Main struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}
	if payload.Main.Temp == nil {
		return nil, fmt.Errorf("weather response missing temperature")
	}

	snap := &weather.Snapshot{
		TempF:       *payload.Main.Temp,
		Description: "Unknown conditions",
		City:        payload.Name,
	}
	if len(payload.Weather) > 0 {
		if payload.Weather[0].Description != "" {
			snap.Description = payload.Weather[0].Description
		}
		snap.Icon = payload.Weather[0].Icon
	}
	return snap, nil
}
