package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// WttrProvider implements weather.MoonSource for wttr.in. Only the first
// forecast day (today) is used.
type WttrProvider struct {
	upstream
}

func NewWttrProvider(client *http.Client, baseURL string) *WttrProvider {
	if baseURL == "" {
		baseURL = "https://wttr.in"
	}
	return &WttrProvider{upstream: newUpstream("wttr", baseURL, client)}
}

func (p *WttrProvider) Name() string {
	return p.name
}

func (p *WttrProvider) MoonTimes(ctx context.Context, city string) (weather.MoonTimes, error) {
	values := url.Values{}
	values.Set("format", "j1")

	var payload struct {
		Weather []struct {
			Date      string           `json:"date"`
			Astronomy []map[string]any `json:"astronomy"`
		} `json:"weather"`
	}
	if err := p.getJSON(ctx, "/"+url.PathEscape(city), values, &payload); err != nil {
		return weather.MoonTimes{}, err
	}
	if len(payload.Weather) == 0 || len(payload.Weather[0].Astronomy) == 0 {
		return weather.MoonTimes{}, fmt.Errorf("%s: %w: no astronomy for today", p.name, weather.ErrMalformedResponse)
	}

	today := payload.Weather[0]
	a, err := pickStrings(today.Astronomy[0], "moonrise", "moonset", "moon_phase", "moon_illumination")
	if err != nil {
		return weather.MoonTimes{}, fmt.Errorf("%s: %w", p.name, err)
	}
	return weather.MoonTimes{
		Date:             today.Date,
		Moonrise:         a["moonrise"],
		Moonset:          a["moonset"],
		MoonPhase:        a["moon_phase"],
		MoonIllumination: a["moon_illumination"],
	}, nil
}
