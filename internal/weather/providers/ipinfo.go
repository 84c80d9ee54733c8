package providers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// IPInfoLocator implements weather.IPLocator against ipinfo.io.
type IPInfoLocator struct {
	upstream
}

func NewIPInfoLocator(client *http.Client, baseURL string) *IPInfoLocator {
	if baseURL == "" {
		baseURL = "https://ipinfo.io"
	}
	return &IPInfoLocator{upstream: newUpstream("ipinfo", baseURL, client)}
}

// Locate queries /<ip>/json, or /json for the caller's own address when ip is empty.
func (l *IPInfoLocator) Locate(ctx context.Context, ip string) (weather.IPLocation, error) {
	path := "/json"
	if ip != "" {
		path = "/" + url.PathEscape(ip) + "/json"
	}

	var payload map[string]any
	if err := l.getJSON(ctx, path, nil, &payload); err != nil {
		return weather.IPLocation{}, err
	}

	fields, err := pickStrings(payload, "city", "loc", "timezone")
	if err != nil {
		return weather.IPLocation{}, err
	}
	return weather.IPLocation{
		City:     fields["city"],
		Loc:      fields["loc"],
		Timezone: fields["timezone"],
	}, nil
}
