package weather

import (
	"context"
)

// Place is a geocoding candidate. Lat/Lon are kept as the provider sent them.
type Place struct {
	Name string
	Lat  string
	Lon  string
}

// IPLocation is what an IP geolocation provider reports for an address.
// Loc is the combined "lat,lng" pair.
type IPLocation struct {
	City     string
	Loc      string
	Timezone string
}

// Geocoder searches places by free text. Candidates are returned best first.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// IPLocator geolocates a client IP. An empty ip means the caller's own address.
type IPLocator interface {
	Locate(ctx context.Context, ip string) (IPLocation, error)
}

// TimezoneFinder maps a point to an IANA timezone name; "" means unknown.
type TimezoneFinder interface {
	TimezoneName(lng, lat float64) string
}

// ForecastSource is a weather provider answering with only the fields asked for.
type ForecastSource interface {
	Name() string
	Current(ctx context.Context, loc Location, fields []string) (Snapshot, error)
	Daily(ctx context.Context, loc Location, fields []string) (Columns, error)
	Hourly(ctx context.Context, loc Location, date string, fields []string) (Columns, error)
}

// SunSource provides sunrise, sunset and twilight timings.
type SunSource interface {
	Name() string
	SunTimes(ctx context.Context, loc Location) (SunTimes, error)
}

// MoonSource provides today's moon timings for a city.
type MoonSource interface {
	Name() string
	MoonTimes(ctx context.Context, city string) (MoonTimes, error)
}
