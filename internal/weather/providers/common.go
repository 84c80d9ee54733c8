package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/i474232898/weather-lookup/internal/telemetry"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultUserAgent identifies outbound calls; Nominatim rejects anonymous clients.
const DefaultUserAgent = "weather-lookup/1.0"

const tracerName = "github.com/i474232898/weather-lookup/internal/weather/providers"

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
	errNoClient    = errors.New("http client not configured")
)

// upstream bundles what every provider needs to issue a call.
type upstream struct {
	name      string
	baseURL   string
	userAgent string
	client    *http.Client
	circuit   *gobreaker.CircuitBreaker
}

func newUpstream(name, baseURL string, client *http.Client) upstream {
	return upstream{
		name:      name,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: DefaultUserAgent,
		client:    client,
		circuit:   newCircuit(name),
	}
}

func newCircuit(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         name,
		MaxRequests:  5,
		Interval:     1 * time.Minute,
		Timeout:      2 * time.Minute,
		IsSuccessful: healthyOutcome,
	})
}

// healthyOutcome keeps client errors, such as an unknown city, from tripping
// the circuit. Only transport errors, 429 and 5xx count as failures.
func healthyOutcome(err error) bool {
	return err == nil || errors.Is(err, errUnexpected)
}

// getJSON issues a single GET against path and decodes the body into out.
// There are no retries: a failed call fails the operation.
func (u upstream) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := u.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "GET "+u.name)
	defer span.End()
	span.SetAttributes(
		attribute.String("provider", u.name),
		attribute.String("http.url", target),
	)

	start := time.Now()
	err := u.fetch(ctx, target, out)
	telemetry.UpstreamDuration.WithLabelValues(u.name).Observe(time.Since(start).Seconds())
	telemetry.UpstreamRequests.WithLabelValues(u.name, outcome(err)).Inc()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (u upstream) fetch(ctx context.Context, target string, out any) error {
	resp, err := doRequest(ctx, u.client, u.circuit, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", u.userAgent)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", u.name, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: decode body: %v", u.name, weather.ErrMalformedResponse, err)
	}
	return nil
}

// doRequest executes the request through the circuit breaker. Every failure,
// including an open circuit, is reported as weather.ErrUpstreamUnavailable.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: %w", weather.ErrUpstreamUnavailable, errNoClient)
	}

	req, err := buildRequest()
	if err != nil {
		return nil, err
	}
	// Ensure the request obeys context cancellation.
	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, errRateLimited
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		default:
			return nil, fmt.Errorf("%w: %d %s", errUnexpected, resp.StatusCode, strings.TrimSpace(string(body)))
		}
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w: %v", weather.ErrUpstreamUnavailable, errCircuitOpen, err)
		}
		return nil, fmt.Errorf("%w: %w", weather.ErrUpstreamUnavailable, err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", weather.ErrUpstreamUnavailable)
	}
	return resp, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return telemetry.OutcomeOK
	case errors.Is(err, errCircuitOpen):
		return telemetry.OutcomeCircuitOpen
	case errors.Is(err, weather.ErrMalformedResponse):
		return telemetry.OutcomeMalformed
	default:
		return telemetry.OutcomeUnavailable
	}
}

// pickStrings extracts keys from a decoded JSON object. Numbers are accepted
// and formatted; a missing key or any other type is a malformed response.
func pickStrings(obj map[string]any, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	var missing []string
	for _, k := range keys {
		switch v := obj[k].(type) {
		case string:
			out[k] = v
		case float64:
			out[k] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing keys %s", weather.ErrMalformedResponse, strings.Join(missing, ","))
	}
	return out, nil
}
