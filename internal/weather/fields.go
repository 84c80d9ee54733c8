package weather

// Field sets requested from the forecast provider. The provider only returns
// what is asked for, so every name below must be mapped in normalize.go.

var CurrentFields = []string{
	"temperature_2m",
	"apparent_temperature",
	"relative_humidity_2m",
	"dew_point_2m",
	"precipitation",
	"rain",
	"showers",
	"snowfall",
	"pressure_msl",
	"surface_pressure",
	"cloud_cover",
	"cloud_cover_low",
	"cloud_cover_mid",
	"cloud_cover_high",
	"visibility",
	"wind_speed_10m",
	"wind_direction_10m",
	"wind_gusts_10m",
	"uv_index",
	"weather_code",
}

// HourlyFields mirrors CurrentFields.
var HourlyFields = CurrentFields

var DailyFields = []string{
	"temperature_2m_min",
	"temperature_2m_mean",
	"temperature_2m_max",
	"apparent_temperature_min",
	"apparent_temperature_mean",
	"apparent_temperature_max",
	"relative_humidity_2m_min",
	"relative_humidity_2m_mean",
	"relative_humidity_2m_max",
	"dew_point_2m_min",
	"dew_point_2m_mean",
	"dew_point_2m_max",
	"precipitation_sum",
	"rain_sum",
	"showers_sum",
	"snowfall_sum",
	"precipitation_hours",
	"precipitation_probability_min",
	"precipitation_probability_mean",
	"precipitation_probability_max",
	"pressure_msl_min",
	"pressure_msl_mean",
	"pressure_msl_max",
	"surface_pressure_min",
	"surface_pressure_mean",
	"surface_pressure_max",
	"cloud_cover_min",
	"cloud_cover_mean",
	"cloud_cover_max",
	"visibility_min",
	"visibility_mean",
	"visibility_max",
	"wind_speed_10m_min",
	"wind_speed_10m_mean",
	"wind_speed_10m_max",
	"wind_gusts_10m_min",
	"wind_gusts_10m_mean",
	"wind_gusts_10m_max",
	"wind_direction_10m_dominant",
	"uv_index_max",
	"uv_index_clear_sky_max",
	"sunshine_duration",
	"daylight_duration",
	"weather_code",
}
