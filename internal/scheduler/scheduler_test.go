package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-lookup/internal/weather"
)

type countingGeocoder struct {
	mu      sync.Mutex
	queries []string
}

func (g *countingGeocoder) Search(_ context.Context, query string) ([]weather.Place, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.queries = append(g.queries, query)
	return nil, nil
}

type noIP struct{}

func (noIP) Locate(context.Context, string) (weather.IPLocation, error) {
	return weather.IPLocation{}, nil
}

type noZone struct{}

func (noZone) TimezoneName(float64, float64) string { return "" }

func TestStartWithoutPlaces(t *testing.T) {
	s := New(nil, time.Minute, nil, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()
}

func TestRunOnceChecksEveryPlace(t *testing.T) {
	geo := &countingGeocoder{}
	resolver := weather.NewResolver(geo, noIP{}, noZone{})
	s := New([]string{"Sydney", "Oslo"}, time.Minute, resolver, weather.NewService(nil, nil, nil))

	s.RunOnce()

	if len(geo.queries) != 2 || geo.queries[0] != "Sydney" || geo.queries[1] != "Oslo" {
		t.Errorf("queries = %v", geo.queries)
	}
}
