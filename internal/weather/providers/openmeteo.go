package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// OpenMeteoProvider implements weather.ForecastSource for Open-Meteo.
type OpenMeteoProvider struct {
	upstream
}

func NewOpenMeteoProvider(client *http.Client, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com"
	}
	return &OpenMeteoProvider{upstream: newUpstream("openmeteo", baseURL, client)}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// openMeteoPayload keeps each section raw; only requested fields are decoded.
type openMeteoPayload struct {
	Current map[string]json.RawMessage `json:"current"`
	Daily   map[string]json.RawMessage `json:"daily"`
	Hourly  map[string]json.RawMessage `json:"hourly"`
}

func (p *OpenMeteoProvider) Current(ctx context.Context, loc weather.Location, fields []string) (weather.Snapshot, error) {
	values := p.baseQuery(loc)
	values.Set("current", strings.Join(fields, ","))

	var payload openMeteoPayload
	if err := p.getJSON(ctx, "/v1/forecast", values, &payload); err != nil {
		return weather.Snapshot{}, err
	}
	snap, err := decodeSnapshot(payload.Current, fields)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("%s current: %w", p.name, err)
	}
	return snap, nil
}

func (p *OpenMeteoProvider) Daily(ctx context.Context, loc weather.Location, fields []string) (weather.Columns, error) {
	values := p.baseQuery(loc)
	values.Set("daily", strings.Join(fields, ","))

	var payload openMeteoPayload
	if err := p.getJSON(ctx, "/v1/forecast", values, &payload); err != nil {
		return weather.Columns{}, err
	}
	cols, err := decodeColumns(payload.Daily, fields)
	if err != nil {
		return weather.Columns{}, fmt.Errorf("%s daily: %w", p.name, err)
	}
	return cols, nil
}

// Hourly asks for a single day by setting start_date and end_date to date.
func (p *OpenMeteoProvider) Hourly(ctx context.Context, loc weather.Location, date string, fields []string) (weather.Columns, error) {
	values := p.baseQuery(loc)
	values.Set("hourly", strings.Join(fields, ","))
	values.Set("start_date", date)
	values.Set("end_date", date)

	var payload openMeteoPayload
	if err := p.getJSON(ctx, "/v1/forecast", values, &payload); err != nil {
		return weather.Columns{}, err
	}
	cols, err := decodeColumns(payload.Hourly, fields)
	if err != nil {
		return weather.Columns{}, fmt.Errorf("%s hourly: %w", p.name, err)
	}
	return cols, nil
}

func (p *OpenMeteoProvider) baseQuery(loc weather.Location) url.Values {
	values := url.Values{}
	values.Set("latitude", loc.Coordinates.Lat)
	values.Set("longitude", loc.Coordinates.Lng)
	values.Set("timezone", loc.Timezone)
	return values
}

// decodeSnapshot reads the "current" object. Absent fields are left out and
// reported by the normalizer; JSON null decodes to 0.
func decodeSnapshot(section map[string]json.RawMessage, fields []string) (weather.Snapshot, error) {
	if section == nil {
		return weather.Snapshot{}, fmt.Errorf("%w: missing section", weather.ErrMalformedResponse)
	}

	var snap weather.Snapshot
	rawTime, ok := section["time"]
	if !ok {
		return weather.Snapshot{}, fmt.Errorf("%w: missing time", weather.ErrMalformedResponse)
	}
	if err := json.Unmarshal(rawTime, &snap.Time); err != nil {
		return weather.Snapshot{}, fmt.Errorf("%w: time: %v", weather.ErrMalformedResponse, err)
	}

	snap.Values = make(map[string]float64, len(fields))
	for _, f := range fields {
		raw, ok := section[f]
		if !ok {
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return weather.Snapshot{}, fmt.Errorf("%w: %s: %v", weather.ErrMalformedResponse, f, err)
		}
		snap.Values[f] = v
	}
	return snap, nil
}

// decodeColumns reads a "daily" or "hourly" object of parallel arrays.
func decodeColumns(section map[string]json.RawMessage, fields []string) (weather.Columns, error) {
	if section == nil {
		return weather.Columns{}, fmt.Errorf("%w: missing section", weather.ErrMalformedResponse)
	}

	var cols weather.Columns
	rawTime, ok := section["time"]
	if !ok {
		return weather.Columns{}, fmt.Errorf("%w: missing time", weather.ErrMalformedResponse)
	}
	if err := json.Unmarshal(rawTime, &cols.Time); err != nil {
		return weather.Columns{}, fmt.Errorf("%w: time: %v", weather.ErrMalformedResponse, err)
	}

	cols.Values = make(map[string][]float64, len(fields))
	for _, f := range fields {
		raw, ok := section[f]
		if !ok {
			continue
		}
		var col []float64
		if err := json.Unmarshal(raw, &col); err != nil {
			return weather.Columns{}, fmt.Errorf("%w: %s: %v", weather.ErrMalformedResponse, f, err)
		}
		cols.Values[f] = col
	}

	if err := cols.Check(fields); err != nil {
		return weather.Columns{}, err
	}
	return cols, nil
}
