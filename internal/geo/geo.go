// Package geo wraps the two location collaborators: ipapi.co for coarse
// IP-based lookup and Nominatim for reverse geocoding of GPS coordinates.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	ipapiEndpoint     = "https://ipapi.co/json/"
	nominatimEndpoint = "https://nominatim.openstreetmap.org/reverse"
	userAgent         = "GramVaani-App/1.0 (contact@gramvaani.com)"
)

// Location is a coarse IP-derived location.
type Location struct {
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Location string `json:"location"`
}

// Client calls the geolocation collaborators.
type Client struct {
	ipapiURL     string
	nominatimURL string
	httpClient   *http.Client
}

// NewClient creates a geo client with per-call network deadlines.
func NewClient() *Client {
	return &Client{
		ipapiURL:     ipapiEndpoint,
		nominatimURL: nominatimEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithEndpoints creates a client against custom endpoints. Used by
// tests to point at stub servers.
func NewClientWithEndpoints(ipapiURL, nominatimURL string) *Client {
	c := NewClient()
	c.ipapiURL = ipapiURL
	c.nominatimURL = nominatimURL
	return c
}

type ipapiResponse struct {
	City        string `json:"city"`
	Region      string `json:"region"`
	CountryName string `json:"country_name"`
}

// Lookup resolves the caller's coarse location from their IP.
func (c *Client) Lookup(ctx context.Context) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ipapiURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("location request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("location API returned %d", resp.StatusCode)
	}

	var parsed ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode location response: %w", err)
	}

	city := orUnknown(parsed.City)
	region := orUnknown(parsed.Region)

	return &Location{
		City:     city,
		Region:   region,
		Country:  orUnknown(parsed.CountryName),
		Location: city + ", " + region,
	}, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

type nominatimResponse struct {
	Address *nominatimAddress `json:"address"`
}

type nominatimAddress struct {
	Village       string `json:"village"`
	Town          string `json:"town"`
	City          string `json:"city"`
	StateDistrict string `json:"state_district"`
	State         string `json:"state"`
	Postcode      string `json:"postcode"`
}

// ReverseGeocode resolves GPS coordinates to a human-readable address.
// When no address is available it falls back to formatted coordinates.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("zoom", "18")
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nominatimURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CoordinateFallback(lat, lon), nil
	}

	var parsed nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}
	if parsed.Address == nil {
		return CoordinateFallback(lat, lon), nil
	}

	return formatAddress(parsed.Address, lat, lon), nil
}

// formatAddress assembles village/town/city, district, state, and postcode
// into one line, preferring the most local place name available.
func formatAddress(a *nominatimAddress, lat, lon float64) string {
	var parts []string

	switch {
	case a.Village != "":
		parts = append(parts, a.Village)
	case a.Town != "":
		parts = append(parts, a.Town)
	case a.City != "":
		parts = append(parts, a.City)
	}

	if a.StateDistrict != "" && !contains(parts, a.StateDistrict) {
		parts = append(parts, a.StateDistrict)
	}
	if a.State != "" {
		parts = append(parts, a.State)
	}
	if a.Postcode != "" {
		parts = append(parts, a.Postcode)
	}

	if len(parts) == 0 {
		return CoordinateFallback(lat, lon)
	}

	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}

func contains(parts []string, s string) bool {
	for _, p := range parts {
		if p == s {
			return true
		}
	}
	return false
}

// CoordinateFallback formats raw coordinates when no address is available.
func CoordinateFallback(lat, lon float64) string {
	return fmt.Sprintf("Coordinates: %.4f, %.4f", lat, lon)
}
