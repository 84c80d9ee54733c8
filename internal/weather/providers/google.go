package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-lookup/internal/common"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultGoogleGeocodingURL is the library's endpoint, including the trailing "?".
const DefaultGoogleGeocodingURL = "https://maps.googleapis.com/maps/api/geocode/json?"

// googleSlot serializes lookups: the library keeps its key and endpoint in
// package variables that are read during each call.
var googleSlot = make(chan struct{}, 1)

type googleResult struct {
	loc geocoder.Location
	err error
}

// GoogleGeocoder implements weather.Geocoder with the Google Geocoding API.
// Google answers with a single best match and no place name, so the query
// itself is used as the city name.
type GoogleGeocoder struct {
	apiKey  string
	apiURL  string
	timeout time.Duration
	lookup  func(geocoder.Address) (geocoder.Location, error)
}

// NewGoogleGeocoder creates a geocoder. The library's HTTP client has no
// timeout, so each Search is bounded by timeout (when positive) and the
// caller's context.
func NewGoogleGeocoder(apiKey, apiURL string, timeout time.Duration) *GoogleGeocoder {
	if apiURL == "" {
		apiURL = DefaultGoogleGeocodingURL
	}
	return &GoogleGeocoder{
		apiKey:  apiKey,
		apiURL:  apiURL,
		timeout: timeout,
		lookup:  geocoder.Geocoding,
	}
}

func (g *GoogleGeocoder) Search(ctx context.Context, query string) ([]weather.Place, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: google geocoding api key is not configured", weather.ErrUpstreamUnavailable)
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	select {
	case googleSlot <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("google: %w: %v", weather.ErrUpstreamUnavailable, ctx.Err())
	}

	done := make(chan googleResult, 1)
	go func() {
		defer func() { <-googleSlot }()
		done <- g.call(query)
	}()

	var res googleResult
	select {
	case res = <-done:
	case <-ctx.Done():
		return nil, fmt.Errorf("google: %w: %v", weather.ErrUpstreamUnavailable, ctx.Err())
	}

	if res.err != nil {
		if errors.Is(res.err, weather.ErrMalformedResponse) {
			return nil, res.err
		}
		if common.HasAny(res.err.Error(), "ZERO_RESULTS", "not found", "no results") {
			return nil, nil
		}
		return nil, fmt.Errorf("google: %w: %v", weather.ErrUpstreamUnavailable, res.err)
	}
	if res.loc.Latitude == 0 && res.loc.Longitude == 0 {
		return nil, nil
	}

	return []weather.Place{{
		Name: strings.TrimSpace(query),
		Lat:  strconv.FormatFloat(res.loc.Latitude, 'f', -1, 64),
		Lon:  strconv.FormatFloat(res.loc.Longitude, 'f', -1, 64),
	}}, nil
}

// call runs one library lookup while holding googleSlot. The library indexes
// its results without checking for statuses it does not know, so a panic is
// reported as a malformed response.
func (g *GoogleGeocoder) call(query string) (res googleResult) {
	defer func() {
		if r := recover(); r != nil {
			res = googleResult{err: fmt.Errorf("google: %w: %v", weather.ErrMalformedResponse, r)}
		}
	}()

	geocoder.ApiKey = g.apiKey
	geocoder.ApiUrl = g.apiURL
	loc, err := g.lookup(geocoder.Address{City: url.QueryEscape(strings.TrimSpace(query))})
	return googleResult{loc: loc, err: err}
}
