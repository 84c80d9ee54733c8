package weather

import (
	"fmt"
	"math"
	"strings"
)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// VisibilityKm converts an upstream visibility in meters to kilometers
// rounded to two decimals. Exact halves round away from zero (125 m is 0.13 km).
func VisibilityKm(meters float64) float64 {
	return math.Round(meters/1000*100) / 100
}

// CompassPoint returns the 16-point compass name for a direction in degrees.
func CompassPoint(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return compassPoints[int(math.Floor(deg/22.5+0.5))%16]
}

// ConditionFromWMO maps WMO weather interpretation codes to a Condition.
func ConditionFromWMO(code int) Condition {
	switch {
	case code == 0:
		return ConditionClear
	case code >= 1 && code <= 3:
		return ConditionCloudy
	case code == 45 || code == 48:
		return ConditionFog
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return ConditionSnow
	case code >= 95 && code <= 99:
		return ConditionStorm
	default:
		return ConditionUnknown
	}
}

// splitDateTime splits "2024-01-01T13:00" into its date and time parts.
func splitDateTime(ts string) (string, string, error) {
	date, clock, ok := strings.Cut(ts, "T")
	if !ok || date == "" || clock == "" {
		return "", "", fmt.Errorf("%w: unexpected timestamp %q", ErrMalformedResponse, ts)
	}
	return date, clock, nil
}

// instant maps the shared current/hourly field set.
func instant(ts string, r *fieldReader) (CurrentConditions, error) {
	date, clock, err := splitDateTime(ts)
	if err != nil {
		return CurrentConditions{}, err
	}

	direction := r.get("wind_direction_10m")
	c := CurrentConditions{
		Date: date,
		Time: clock,
		Temperature: Temperature{
			Current:  r.get("temperature_2m"),
			Apparent: r.get("apparent_temperature"),
		},
		Humidity: Humidity{
			Relative: r.get("relative_humidity_2m"),
			DewPoint: r.get("dew_point_2m"),
		},
		Precipitation: Precipitation{
			Total:    r.get("precipitation"),
			Rain:     r.get("rain"),
			Showers:  r.get("showers"),
			Snowfall: r.get("snowfall"),
		},
		Pressure: Pressure{
			SeaLevel: r.get("pressure_msl"),
			Surface:  r.get("surface_pressure"),
		},
		CloudCover: CloudCover{
			Total: r.get("cloud_cover"),
			Low:   r.get("cloud_cover_low"),
			Mid:   r.get("cloud_cover_mid"),
			High:  r.get("cloud_cover_high"),
		},
		Visibility: VisibilityKm(r.get("visibility")),
		Wind: Wind{
			Speed:     r.get("wind_speed_10m"),
			Direction: direction,
			Gusts:     r.get("wind_gusts_10m"),
			Compass:   CompassPoint(direction),
		},
		UVIndex:   r.get("uv_index"),
		Condition: ConditionFromWMO(int(r.get("weather_code"))),
	}
	return c, r.err()
}

// mapCurrent normalizes a flat current-conditions object.
func mapCurrent(s Snapshot) (CurrentConditions, error) {
	return instant(s.Time, snapshotReader(s))
}

// mapHourly normalizes the i-th step of an hourly columnar response.
func mapHourly(c Columns, i int) (HourlyForecastEntry, error) {
	if i < 0 || i >= c.Len() {
		return HourlyForecastEntry{}, fmt.Errorf("%w: hour index %d out of range", ErrMalformedResponse, i)
	}
	entry, err := instant(c.Time[i], columnReader(c, i))
	return HourlyForecastEntry(entry), err
}

// mapDaily normalizes the i-th day of a daily columnar response.
func mapDaily(c Columns, i int) (DailyForecastEntry, error) {
	if i < 0 || i >= c.Len() {
		return DailyForecastEntry{}, fmt.Errorf("%w: day index %d out of range", ErrMalformedResponse, i)
	}
	r := columnReader(c, i)

	dominant := r.get("wind_direction_10m_dominant")
	d := DailyForecastEntry{
		Date: c.Time[i],
		Temperature: DailyTemperature{
			Min:          r.get("temperature_2m_min"),
			Mean:         r.get("temperature_2m_mean"),
			Max:          r.get("temperature_2m_max"),
			ApparentMin:  r.get("apparent_temperature_min"),
			ApparentMean: r.get("apparent_temperature_mean"),
			ApparentMax:  r.get("apparent_temperature_max"),
		},
		Humidity: DailyHumidity{
			RelativeMin:  r.get("relative_humidity_2m_min"),
			RelativeMean: r.get("relative_humidity_2m_mean"),
			RelativeMax:  r.get("relative_humidity_2m_max"),
			DewPointMin:  r.get("dew_point_2m_min"),
			DewPointMean: r.get("dew_point_2m_mean"),
			DewPointMax:  r.get("dew_point_2m_max"),
		},
		Precipitation: DailyPrecipitation{
			Sum:             r.get("precipitation_sum"),
			Rain:            r.get("rain_sum"),
			Showers:         r.get("showers_sum"),
			Snowfall:        r.get("snowfall_sum"),
			Hours:           r.get("precipitation_hours"),
			ProbabilityMin:  r.get("precipitation_probability_min"),
			ProbabilityMean: r.get("precipitation_probability_mean"),
			ProbabilityMax:  r.get("precipitation_probability_max"),
		},
		Pressure: DailyPressure{
			SeaLevelMin:  r.get("pressure_msl_min"),
			SeaLevelMean: r.get("pressure_msl_mean"),
			SeaLevelMax:  r.get("pressure_msl_max"),
			SurfaceMin:   r.get("surface_pressure_min"),
			SurfaceMean:  r.get("surface_pressure_mean"),
			SurfaceMax:   r.get("surface_pressure_max"),
		},
		CloudCover: DailyRange{
			Min:  r.get("cloud_cover_min"),
			Mean: r.get("cloud_cover_mean"),
			Max:  r.get("cloud_cover_max"),
		},
		Visibility: DailyRange{
			Min:  VisibilityKm(r.get("visibility_min")),
			Mean: VisibilityKm(r.get("visibility_mean")),
			Max:  VisibilityKm(r.get("visibility_max")),
		},
		Wind: DailyWind{
			SpeedMin:          r.get("wind_speed_10m_min"),
			SpeedMean:         r.get("wind_speed_10m_mean"),
			SpeedMax:          r.get("wind_speed_10m_max"),
			GustsMin:          r.get("wind_gusts_10m_min"),
			GustsMean:         r.get("wind_gusts_10m_mean"),
			GustsMax:          r.get("wind_gusts_10m_max"),
			DominantDirection: dominant,
			Compass:           CompassPoint(dominant),
		},
		UVIndex: DailyUVIndex{
			Index:         r.get("uv_index_max"),
			ClearSkyIndex: r.get("uv_index_clear_sky_max"),
		},
		Sun: DailySun{
			SunshineDuration: r.get("sunshine_duration"),
			DaylightDuration: r.get("daylight_duration"),
		},
		Condition: ConditionFromWMO(int(r.get("weather_code"))),
	}
	return d, r.err()
}
