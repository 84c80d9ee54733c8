package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/i474232898/weather-lookup/internal/weather"
)

func TestNominatimSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("User-Agent"); got != "weather-lookup-test" {
			t.Errorf("User-Agent = %q", got)
		}
		q := r.URL.Query()
		if q.Get("q") != "Sydney" || q.Get("format") != "json" {
			t.Errorf("query = %v", q)
		}
		writeJSON(t, w, []map[string]any{
			{"name": "Sydney", "display_name": "Sydney, New South Wales, Australia", "lat": "-33.8698439", "lon": "151.2082848"},
			{"name": "", "display_name": "Sydney, Nova Scotia, Canada", "lat": "46.1351", "lon": "-60.1831"},
		})
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.Client(), srv.URL, "weather-lookup-test")
	places, err := g.Search(context.Background(), "Sydney")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []weather.Place{
		{Name: "Sydney", Lat: "-33.8698439", Lon: "151.2082848"},
		{Name: "Sydney", Lat: "46.1351", Lon: "-60.1831"},
	}
	if len(places) != len(want) {
		t.Fatalf("got %d places, want %d", len(places), len(want))
	}
	for i := range want {
		if places[i] != want[i] {
			t.Errorf("place %d = %+v, want %+v", i, places[i], want[i])
		}
	}
}

func TestNominatimDefaultUserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != DefaultUserAgent {
			t.Errorf("User-Agent = %q", got)
		}
		writeJSON(t, w, []any{})
	}))
	defer srv.Close()

	places, err := NewNominatimGeocoder(srv.Client(), srv.URL, "").Search(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 0 {
		t.Errorf("places = %v", places)
	}
}

func TestNominatimUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewNominatimGeocoder(srv.Client(), srv.URL, "").Search(context.Background(), "Sydney")
	if !errors.Is(err, weather.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestIPInfoLocate(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		path string
	}{
		{"caller address", "", "/json"},
		{"explicit address", "8.8.8.8", "/8.8.8.8/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.path {
					t.Errorf("path = %q, want %q", r.URL.Path, tt.path)
				}
				writeJSON(t, w, map[string]any{
					"ip":       "8.8.8.8",
					"city":     "Mountain View",
					"loc":      "37.4056,-122.0775",
					"timezone": "America/Los_Angeles",
				})
			}))
			defer srv.Close()

			got, err := NewIPInfoLocator(srv.Client(), srv.URL).Locate(context.Background(), tt.ip)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := weather.IPLocation{City: "Mountain View", Loc: "37.4056,-122.0775", Timezone: "America/Los_Angeles"}
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestIPInfoMissingKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"ip": "10.0.0.1", "bogon": true})
	}))
	defer srv.Close()

	_, err := NewIPInfoLocator(srv.Client(), srv.URL).Locate(context.Background(), "")
	if !errors.Is(err, weather.ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
}
