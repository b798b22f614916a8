package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const openWeatherEndpoint = "https://api.openweathermap.org/data/2.5/weather"

// Report is the subset of the OpenWeather response the assistant speaks.
type Report struct {
	City        string
	Description string
	TempC       float64
	Humidity    int
}

// Summary formats the report the way the assistant reads it out.
func (r Report) Summary() string {
	return fmt.Sprintf("Weather in %s: %s, temperature %.1f°C, humidity %d%%", r.City, r.Description, r.TempC, r.Humidity)
}

// Client fetches current weather from OpenWeather.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates an OpenWeather client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: openWeatherEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithEndpoint creates a client against a custom endpoint. Used by
// tests to point at a stub server.
func NewClientWithEndpoint(apiKey, endpoint string) *Client {
	c := NewClient(apiKey)
	c.endpoint = endpoint
	return c
}

type openWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Name string `json:"name"`
}

// Current fetches current weather for a city in metric units.
func (c *Client) Current(ctx context.Context, city string) (*Report, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather API returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if len(parsed.Weather) == 0 {
		return nil, fmt.Errorf("weather API returned no conditions for %q", city)
	}

	name := parsed.Name
	if name == "" {
		name = city
	}

	return &Report{
		City:        name,
		Description: parsed.Weather[0].Description,
		TempC:       parsed.Main.Temp,
		Humidity:    parsed.Main.Humidity,
	}, nil
}
