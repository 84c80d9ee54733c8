package weather

import "errors"

var (
	// ErrLocationNotFound is returned when a place or IP cannot be resolved to a location.
	ErrLocationNotFound = errors.New("location not found")

	// ErrUpstreamUnavailable covers transport failures, timeouts, open circuits
	// and non-2xx answers from any provider.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedResponse is returned when a provider answer lacks an expected
	// key or its parallel arrays disagree in length.
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrInvalidDate is returned for hourly requests whose date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
)
