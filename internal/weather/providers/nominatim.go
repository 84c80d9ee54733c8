package providers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// NominatimGeocoder implements weather.Geocoder against OpenStreetMap Nominatim.
type NominatimGeocoder struct {
	upstream
}

// NewNominatimGeocoder creates a geocoder. Nominatim's usage policy requires
// an identifying User-Agent; an empty userAgent falls back to DefaultUserAgent.
func NewNominatimGeocoder(client *http.Client, baseURL, userAgent string) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	up := newUpstream("nominatim", baseURL, client)
	if userAgent != "" {
		up.userAgent = userAgent
	}
	return &NominatimGeocoder{upstream: up}
}

// nominatimResponse is shaped for the search API response.
type nominatimResponse []struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search returns candidates in Nominatim's ranking order.
func (g *NominatimGeocoder) Search(ctx context.Context, query string) ([]weather.Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")

	var results nominatimResponse
	if err := g.getJSON(ctx, "/search", params, &results); err != nil {
		return nil, err
	}

	places := make([]weather.Place, 0, len(results))
	for _, r := range results {
		name := r.Name
		if name == "" {
			name, _, _ = strings.Cut(r.DisplayName, ",")
		}
		places = append(places, weather.Place{Name: name, Lat: r.Lat, Lon: r.Lon})
	}
	return places, nil
}
