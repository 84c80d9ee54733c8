package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// SunriseSunsetProvider implements weather.SunSource for sunrise-sunset.org.
type SunriseSunsetProvider struct {
	upstream
}

func NewSunriseSunsetProvider(client *http.Client, baseURL string) *SunriseSunsetProvider {
	if baseURL == "" {
		baseURL = "https://api.sunrise-sunset.org"
	}
	return &SunriseSunsetProvider{upstream: newUpstream("sunrisesunset", baseURL, client)}
}

func (p *SunriseSunsetProvider) Name() string {
	return p.name
}

var sunKeys = []string{
	"sunrise",
	"sunset",
	"solar_noon",
	"day_length",
	"civil_twilight_begin",
	"civil_twilight_end",
	"nautical_twilight_begin",
	"nautical_twilight_end",
	"astronomical_twilight_begin",
	"astronomical_twilight_end",
}

func (p *SunriseSunsetProvider) SunTimes(ctx context.Context, loc weather.Location) (weather.SunTimes, error) {
	values := url.Values{}
	values.Set("lat", loc.Coordinates.Lat)
	values.Set("lng", loc.Coordinates.Lng)
	values.Set("tzid", loc.Timezone)

	var payload struct {
		Results map[string]any `json:"results"`
		Status  string         `json:"status"`
	}
	if err := p.getJSON(ctx, "/json", values, &payload); err != nil {
		return weather.SunTimes{}, err
	}
	if payload.Status != "OK" {
		return weather.SunTimes{}, fmt.Errorf("%s: %w: status %q", p.name, weather.ErrMalformedResponse, payload.Status)
	}

	r, err := pickStrings(payload.Results, sunKeys...)
	if err != nil {
		return weather.SunTimes{}, fmt.Errorf("%s: %w", p.name, err)
	}
	return weather.SunTimes{
		Sunrise:                   r["sunrise"],
		Sunset:                    r["sunset"],
		SolarNoon:                 r["solar_noon"],
		DayLength:                 r["day_length"],
		CivilTwilightBegin:        r["civil_twilight_begin"],
		CivilTwilightEnd:          r["civil_twilight_end"],
		NauticalTwilightBegin:     r["nautical_twilight_begin"],
		NauticalTwilightEnd:       r["nautical_twilight_end"],
		AstronomicalTwilightBegin: r["astronomical_twilight_begin"],
		AstronomicalTwilightEnd:   r["astronomical_twilight_end"],
	}, nil
}
