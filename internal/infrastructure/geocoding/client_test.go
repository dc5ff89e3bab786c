package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Geocode_Success(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("address"); got != "123 Main St" {
			t.Errorf("expected raw address in query, got %q", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("expected api key in query, got %q", got)
		}
		if got := r.URL.Query().Get("language"); got != "en" {
			t.Errorf("expected language hint, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"formatted_address": "123 Main St", "geometry": {"location": {"lat": 19.43, "lng": -99.13}}},
				{"formatted_address": "123 Main St, Elsewhere", "geometry": {"location": {"lat": 1, "lng": 2}}}
			]
		}`))
	})

	client := NewClient(srv.URL, "test-key", "en")
	coords, err := client.Geocode(context.Background(), "123 Main St")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Only the first candidate counts.
	if coords.Lat != 19.43 || coords.Lng != -99.13 {
		t.Errorf("unexpected coordinates: %+v", coords)
	}
}

func TestClient_Geocode_ZeroResults(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	client := NewClient(srv.URL, "test-key", "")
	_, err := client.Geocode(context.Background(), "nowhere lane")
	if !errors.Is(err, domain.ErrGeocodeNoResults) {
		t.Errorf("expected ErrGeocodeNoResults, got %v", err)
	}
}

func TestClient_Geocode_RequestDenied(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "The provided API key is invalid."}`))
	})

	client := NewClient(srv.URL, "bad-key", "")
	_, err := client.Geocode(context.Background(), "123 Main St")
	if !errors.Is(err, domain.ErrGeocodeInvalidKey) {
		t.Errorf("expected ErrGeocodeInvalidKey, got %v", err)
	}
}

func TestClient_Geocode_OverQueryLimit(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OVER_QUERY_LIMIT", "error_message": "You have exceeded your daily request quota."}`))
	})

	client := NewClient(srv.URL, "test-key", "")
	_, err := client.Geocode(context.Background(), "123 Main St")
	if !errors.Is(err, domain.ErrGeocodeQuotaExceeded) {
		t.Errorf("expected ErrGeocodeQuotaExceeded, got %v", err)
	}
}

func TestClient_Geocode_HTTPStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrGeocodeInvalidKey},
		{http.StatusForbidden, domain.ErrGeocodeInvalidKey},
		{http.StatusTooManyRequests, domain.ErrGeocodeQuotaExceeded},
		{http.StatusBadGateway, domain.ErrGeocodeNoResponse},
		{http.StatusServiceUnavailable, domain.ErrGeocodeNoResponse},
	}

	for _, tc := range cases {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})
		client := NewClient(srv.URL, "test-key", "")

		_, err := client.Geocode(context.Background(), "123 Main St")
		if !errors.Is(err, tc.want) {
			t.Errorf("http %d: expected %v, got %v", tc.status, tc.want, err)
		}
	}
}

func TestClient_Geocode_TransportFailure(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // refuse connections

	client := NewClient(srv.URL, "test-key", "")
	_, err := client.Geocode(context.Background(), "123 Main St")
	if !errors.Is(err, domain.ErrGeocodeNoResponse) {
		t.Errorf("expected ErrGeocodeNoResponse, got %v", err)
	}
}

func TestClient_Geocode_CancellationPassesThrough(t *testing.T) {
	block := make(chan struct{})
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-block
	})
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	client := NewClient(srv.URL, "test-key", "")

	done := make(chan error, 1)
	go func() {
		_, err := client.Geocode(ctx, "123 Main St")
		done <- err
	}()
	cancel()

	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cancellation must stay classifiable, got %v", err)
	}
}
