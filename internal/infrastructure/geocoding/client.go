// Package geocoding implements the external geocoding API client.
//
// The provider speaks a Google-style contract: a free-text address plus API
// key and language hint in the query string, answered by a JSON envelope
// with a status code and an ordered candidate list. Only the first candidate
// is ever used.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

const defaultRequestTimeout = 10 * time.Second

type Client struct {
	session  *http.Client
	baseURL  string
	apiKey   string
	language string
}

func NewClient(baseURL, apiKey, language string) *Client {
	return &Client{
		session:  &http.Client{Timeout: defaultRequestTimeout},
		baseURL:  baseURL,
		apiKey:   apiKey,
		language: language,
	}
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves one free-text address. The address is sent as given —
// normalization is a cache-key concern, the provider matches better against
// the raw spelling.
//
// Failures are classified into the domain sentinels so callers never have to
// inspect provider payloads: zero results → ErrGeocodeNoResults, rejected
// key → ErrGeocodeInvalidKey, throttling → ErrGeocodeQuotaExceeded,
// transport problems → ErrGeocodeNoResponse. Context cancellation passes
// through unwrapped.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode request: %w", err)
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)
	if c.language != "" {
		q.Set("language", c.language)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.Coordinates{}, err
		}
		return domain.Coordinates{}, fmt.Errorf("%w: %v", domain.ErrGeocodeNoResponse, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.Coordinates{}, fmt.Errorf("%w: http %d", domain.ErrGeocodeInvalidKey, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return domain.Coordinates{}, fmt.Errorf("%w: http %d", domain.ErrGeocodeQuotaExceeded, resp.StatusCode)
	case resp.StatusCode >= 500:
		return domain.Coordinates{}, fmt.Errorf("%w: http %d", domain.ErrGeocodeNoResponse, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return domain.Coordinates{}, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	switch decoded.Status {
	case "OK":
		if len(decoded.Results) == 0 {
			return domain.Coordinates{}, domain.ErrGeocodeNoResults
		}
		loc := decoded.Results[0].Geometry.Location
		return domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
	case "ZERO_RESULTS":
		return domain.Coordinates{}, domain.ErrGeocodeNoResults
	case "REQUEST_DENIED":
		return domain.Coordinates{}, fmt.Errorf("%w: %s", domain.ErrGeocodeInvalidKey, decoded.ErrorMessage)
	case "OVER_QUERY_LIMIT":
		return domain.Coordinates{}, fmt.Errorf("%w: %s", domain.ErrGeocodeQuotaExceeded, decoded.ErrorMessage)
	default:
		return domain.Coordinates{}, fmt.Errorf("geocode: status %s: %s", decoded.Status, decoded.ErrorMessage)
	}
}
