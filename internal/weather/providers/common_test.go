package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/weather-lookup/internal/telemetry"
	"github.com/i474232898/weather-lookup/internal/weather"
)

func TestCircuitOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	up := newUpstream("flaky", srv.URL, srv.Client())
	var out map[string]any
	for i := 0; i < 6; i++ {
		err := up.getJSON(context.Background(), "/", nil, &out)
		if !errors.Is(err, weather.ErrUpstreamUnavailable) || !errors.Is(err, errServerError) {
			t.Fatalf("call %d: error = %v", i, err)
		}
	}

	err := up.getJSON(context.Background(), "/", nil, &out)
	if !errors.Is(err, weather.ErrUpstreamUnavailable) || !errors.Is(err, errCircuitOpen) {
		t.Fatalf("error = %v, want open circuit", err)
	}
	if got := hits.Load(); got != 6 {
		t.Errorf("upstream hit %d times, want 6", got)
	}
	if outcome(err) != telemetry.OutcomeCircuitOpen {
		t.Errorf("outcome = %q", outcome(err))
	}
}

func TestClientErrorsKeepCircuitClosed(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	up := newUpstream("typos", srv.URL, srv.Client())
	var out map[string]any
	for i := 0; i < 10; i++ {
		err := up.getJSON(context.Background(), "/Atlantiss", nil, &out)
		if !errors.Is(err, weather.ErrUpstreamUnavailable) || !errors.Is(err, errUnexpected) {
			t.Fatalf("call %d: error = %v", i, err)
		}
	}
	if got := hits.Load(); got != 10 {
		t.Errorf("upstream hit %d times, want 10", got)
	}
}

func TestRateLimitOpensCircuit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	up := newUpstream("limited", srv.URL, srv.Client())
	var out map[string]any
	for i := 0; i < 6; i++ {
		_ = up.getJSON(context.Background(), "/", nil, &out)
	}
	if err := up.getJSON(context.Background(), "/", nil, &out); !errors.Is(err, errCircuitOpen) {
		t.Fatalf("error = %v, want open circuit", err)
	}
}

func TestTimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := srv.Client()
	client.Timeout = 50 * time.Millisecond
	up := newUpstream("slow", srv.URL, client)

	var out map[string]any
	err := up.getJSON(context.Background(), "/", nil, &out)
	if !errors.Is(err, weather.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestUndecodableBodyIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	var out map[string]any
	err := newUpstream("html", srv.URL, srv.Client()).getJSON(context.Background(), "/", nil, &out)
	if !errors.Is(err, weather.ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
	if outcome(err) != telemetry.OutcomeMalformed {
		t.Errorf("outcome = %q", outcome(err))
	}
}

func TestNilClientIsUnavailable(t *testing.T) {
	var out map[string]any
	err := newUpstream("none", "http://127.0.0.1:1", nil).getJSON(context.Background(), "/", nil, &out)
	if !errors.Is(err, weather.ErrUpstreamUnavailable) || !errors.Is(err, errNoClient) {
		t.Fatalf("error = %v", err)
	}
}

func TestPickStrings(t *testing.T) {
	got, err := pickStrings(map[string]any{"city": "Oslo", "moon_illumination": float64(75)}, "city", "moon_illumination")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["city"] != "Oslo" || got["moon_illumination"] != "75" {
		t.Errorf("got %v", got)
	}

	_, err = pickStrings(map[string]any{"city": nil, "loc": true}, "city", "loc", "timezone")
	if !errors.Is(err, weather.ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
}
