package weather

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionFog     Condition = "fog"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
)

// Coordinates are kept in the provider's textual form so they can be sent
// back upstream untouched.
type Coordinates struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Location is the resolved place all weather queries are made for.
// It is produced by the Resolver and replaced as a whole, never patched.
type Location struct {
	City        string      `json:"city"`
	Coordinates Coordinates `json:"coordinates"`
	Timezone    string      `json:"timezone"`
}

// Key returns a canonical string key for logging and metrics.
func (l Location) Key() string {
	return l.City + "@" + l.Coordinates.Lat + "," + l.Coordinates.Lng
}

type Temperature struct {
	Current  float64 `json:"current"`
	Apparent float64 `json:"apparent"`
}

type Humidity struct {
	Relative float64 `json:"relative"`
	DewPoint float64 `json:"dew_point"`
}

type Precipitation struct {
	Total    float64 `json:"total"`
	Rain     float64 `json:"rain"`
	Showers  float64 `json:"showers"`
	Snowfall float64 `json:"snowfall"`
}

type Pressure struct {
	SeaLevel float64 `json:"sea_level"`
	Surface  float64 `json:"surface"`
}

type CloudCover struct {
	Total float64 `json:"total"`
	Low   float64 `json:"low"`
	Mid   float64 `json:"mid"`
	High  float64 `json:"high"`
}

type Wind struct {
	Speed     float64 `json:"speed"`
	Direction float64 `json:"direction"`
	Gusts     float64 `json:"gusts"`
	Compass   string  `json:"compass"`
}

// CurrentConditions is a single normalized observation.
// Visibility is in kilometers.
type CurrentConditions struct {
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Temperature   Temperature   `json:"temperature"`
	Humidity      Humidity      `json:"humidity"`
	Precipitation Precipitation `json:"precipitation"`
	Pressure      Pressure      `json:"pressure"`
	CloudCover    CloudCover    `json:"cloud_cover"`
	Visibility    float64       `json:"visibility"`
	Wind          Wind          `json:"wind"`
	UVIndex       float64       `json:"uv_index"`
	Condition     Condition     `json:"condition"`
}

// HourlyForecastEntry carries the same groups as CurrentConditions for one hour.
type HourlyForecastEntry CurrentConditions

type DailyTemperature struct {
	Min          float64 `json:"min"`
	Mean         float64 `json:"mean"`
	Max          float64 `json:"max"`
	ApparentMin  float64 `json:"apparent_min"`
	ApparentMean float64 `json:"apparent_mean"`
	ApparentMax  float64 `json:"apparent_max"`
}

type DailyHumidity struct {
	RelativeMin  float64 `json:"relative_min"`
	RelativeMean float64 `json:"relative_mean"`
	RelativeMax  float64 `json:"relative_max"`
	DewPointMin  float64 `json:"dew_point_min"`
	DewPointMean float64 `json:"dew_point_mean"`
	DewPointMax  float64 `json:"dew_point_max"`
}

type DailyPrecipitation struct {
	Sum             float64 `json:"sum"`
	Rain            float64 `json:"rain"`
	Showers         float64 `json:"showers"`
	Snowfall        float64 `json:"snowfall"`
	Hours           float64 `json:"hours"`
	ProbabilityMin  float64 `json:"probability_min"`
	ProbabilityMean float64 `json:"probability_mean"`
	ProbabilityMax  float64 `json:"probability_max"`
}

type DailyPressure struct {
	SeaLevelMin  float64 `json:"sea_level_min"`
	SeaLevelMean float64 `json:"sea_level_mean"`
	SeaLevelMax  float64 `json:"sea_level_max"`
	SurfaceMin   float64 `json:"surface_min"`
	SurfaceMean  float64 `json:"surface_mean"`
	SurfaceMax   float64 `json:"surface_max"`
}

type DailyRange struct {
	Min  float64 `json:"min"`
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
}

type DailyWind struct {
	SpeedMin          float64 `json:"speed_min"`
	SpeedMean         float64 `json:"speed_mean"`
	SpeedMax          float64 `json:"speed_max"`
	GustsMin          float64 `json:"gusts_min"`
	GustsMean         float64 `json:"gusts_mean"`
	GustsMax          float64 `json:"gusts_max"`
	DominantDirection float64 `json:"dominant_direction"`
	Compass           string  `json:"compass"`
}

type DailyUVIndex struct {
	Index         float64 `json:"index"`
	ClearSkyIndex float64 `json:"clear_sky_index"`
}

// DailySun holds the provider's durations in seconds, unconverted.
type DailySun struct {
	SunshineDuration float64 `json:"sunshine_duration"`
	DaylightDuration float64 `json:"daylight_duration"`
}

// DailyForecastEntry aggregates one calendar day. Visibility is in kilometers.
type DailyForecastEntry struct {
	Date          string             `json:"date"`
	Temperature   DailyTemperature   `json:"temperature"`
	Humidity      DailyHumidity      `json:"humidity"`
	Precipitation DailyPrecipitation `json:"precipitation"`
	Pressure      DailyPressure      `json:"pressure"`
	CloudCover    DailyRange         `json:"cloud_cover"`
	Visibility    DailyRange         `json:"visibility"`
	Wind          DailyWind          `json:"wind"`
	UVIndex       DailyUVIndex       `json:"uv_index"`
	Sun           DailySun           `json:"sun"`
	Condition     Condition          `json:"condition"`
}

// SunTimes are sun events as formatted by the sun provider.
type SunTimes struct {
	Sunrise                   string `json:"sunrise"`
	Sunset                    string `json:"sunset"`
	SolarNoon                 string `json:"solar_noon"`
	DayLength                 string `json:"day_length"`
	CivilTwilightBegin        string `json:"civil_twilight_begin"`
	CivilTwilightEnd          string `json:"civil_twilight_end"`
	NauticalTwilightBegin     string `json:"nautical_twilight_begin"`
	NauticalTwilightEnd       string `json:"nautical_twilight_end"`
	AstronomicalTwilightBegin string `json:"astronomical_twilight_begin"`
	AstronomicalTwilightEnd   string `json:"astronomical_twilight_end"`
}

// MoonTimes are moon events for a single day.
type MoonTimes struct {
	Date             string `json:"-"`
	Moonrise         string `json:"moonrise"`
	Moonset          string `json:"moonset"`
	MoonPhase        string `json:"moon_phase"`
	MoonIllumination string `json:"moon_illumination"`
}

// AstronomyRecord merges sun and moon events that come from two different providers.
type AstronomyRecord struct {
	Date string    `json:"date"`
	Sun  SunTimes  `json:"sun"`
	Moon MoonTimes `json:"moon"`
}
