package weather

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeGeocoder struct {
	places []Place
	err    error
	query  string
}

func (f *fakeGeocoder) Search(_ context.Context, query string) ([]Place, error) {
	f.query = query
	return f.places, f.err
}

type fakeIPLocator struct {
	info  IPLocation
	err   error
	gotIP string
	calls int
}

func (f *fakeIPLocator) Locate(_ context.Context, ip string) (IPLocation, error) {
	f.gotIP = ip
	f.calls++
	return f.info, f.err
}

type fakeTimezones struct {
	zones    map[[2]float64]string
	lng, lat float64
	calls    int
}

func (f *fakeTimezones) TimezoneName(lng, lat float64) string {
	f.lng, f.lat = lng, lat
	f.calls++
	return f.zones[[2]float64{lng, lat}]
}

func TestResolveByNameTakesFirstCandidate(t *testing.T) {
	geo := &fakeGeocoder{places: []Place{
		{Name: "Sydney", Lat: "-33.8", Lon: "151.2"},
		{Name: "Sydney", Lat: "46.1351", Lon: "-60.1831"},
	}}
	tz := &fakeTimezones{zones: map[[2]float64]string{
		{151.2, -33.8}:      "Australia/Sydney",
		{-60.1831, 46.1351}: "America/Glace_Bay",
	}}
	r := NewResolver(geo, &fakeIPLocator{}, tz)

	got, err := r.ResolveByName(context.Background(), "sydney")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Location{
		City:        "Sydney",
		Coordinates: Coordinates{Lat: "-33.8", Lng: "151.2"},
		Timezone:    "Australia/Sydney",
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if geo.query != "sydney" {
		t.Errorf("geocoder query = %q", geo.query)
	}
	if tz.lng != 151.2 || tz.lat != -33.8 {
		t.Errorf("timezone lookup called with lng=%v lat=%v", tz.lng, tz.lat)
	}
}

func TestResolveByNameNoCandidates(t *testing.T) {
	tz := &fakeTimezones{}
	r := NewResolver(&fakeGeocoder{places: []Place{}}, &fakeIPLocator{}, tz)

	got, err := r.ResolveByName(context.Background(), "nowhere-at-all")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("error = %v, want ErrLocationNotFound", err)
	}
	if got != (Location{}) {
		t.Errorf("got %+v, want zero Location", got)
	}
	if tz.calls != 0 {
		t.Error("timezone lookup should not run without a candidate")
	}
}

func TestResolveByNameErrors(t *testing.T) {
	tests := []struct {
		name  string
		place string
		geo   *fakeGeocoder
		want  error
	}{
		{"blank place", "  ", &fakeGeocoder{}, ErrLocationNotFound},
		{"upstream down", "Paris", &fakeGeocoder{err: fmt.Errorf("nominatim: %w", ErrUpstreamUnavailable)}, ErrUpstreamUnavailable},
		{"bad latitude", "Paris", &fakeGeocoder{places: []Place{{Name: "Paris", Lat: "north", Lon: "2.35"}}}, ErrMalformedResponse},
		{"bad longitude", "Paris", &fakeGeocoder{places: []Place{{Name: "Paris", Lat: "48.85", Lon: ""}}}, ErrMalformedResponse},
		{"no timezone", "Paris", &fakeGeocoder{places: []Place{{Name: "Paris", Lat: "48.85", Lon: "2.35"}}}, ErrLocationNotFound},
		{"unnamed candidate", "Paris", &fakeGeocoder{places: []Place{{Name: " ", Lat: "48.85", Lon: "2.35"}}}, ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.geo, &fakeIPLocator{}, &fakeTimezones{})
			if _, err := r.ResolveByName(context.Background(), tt.place); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResolveByNameUnnamedCandidate(t *testing.T) {
	geo := &fakeGeocoder{places: []Place{{Name: "", Lat: "-33.8", Lon: "151.2"}}}
	tz := &fakeTimezones{zones: map[[2]float64]string{{151.2, -33.8}: "Australia/Sydney"}}
	r := NewResolver(geo, &fakeIPLocator{}, tz)

	loc, err := r.ResolveByName(context.Background(), "Sydney")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
	if loc != (Location{}) {
		t.Errorf("got %+v, want zero Location", loc)
	}
	if tz.calls != 0 {
		t.Error("timezone lookup should not run for an unnamed candidate")
	}
}

func TestResolveByIP(t *testing.T) {
	ipl := &fakeIPLocator{info: IPLocation{City: "Sydney", Loc: "-33.8678,151.2073", Timezone: "Australia/Sydney"}}
	tz := &fakeTimezones{}
	r := NewResolver(&fakeGeocoder{}, ipl, tz)

	got, err := r.ResolveByIP(context.Background(), "1.1.1.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Location{
		City:        "Sydney",
		Coordinates: Coordinates{Lat: "-33.8678", Lng: "151.2073"},
		Timezone:    "Australia/Sydney",
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if ipl.gotIP != "1.1.1.1" {
		t.Errorf("locator got ip %q", ipl.gotIP)
	}
	if tz.calls != 0 {
		t.Error("ip path must use the provider's timezone")
	}
}

func TestResolveByIPSkipsNonPublicAddresses(t *testing.T) {
	for _, ip := range []string{"", "127.0.0.1", "::1", "10.1.2.3", "192.168.0.10", "0.0.0.0", "not-an-ip"} {
		ipl := &fakeIPLocator{info: IPLocation{City: "Oslo", Loc: "59.9127,10.7461", Timezone: "Europe/Oslo"}}
		r := NewResolver(&fakeGeocoder{}, ipl, &fakeTimezones{})

		if _, err := r.ResolveByIP(context.Background(), ip); err != nil {
			t.Fatalf("ResolveByIP(%q) unexpected error: %v", ip, err)
		}
		if ipl.gotIP != "" {
			t.Errorf("ResolveByIP(%q) sent %q upstream", ip, ipl.gotIP)
		}
	}
}

func TestResolveByIPErrors(t *testing.T) {
	tests := []struct {
		name string
		ipl  *fakeIPLocator
		want error
	}{
		{"upstream down", &fakeIPLocator{err: fmt.Errorf("ipinfo: %w", ErrUpstreamUnavailable)}, ErrUpstreamUnavailable},
		{"no city", &fakeIPLocator{info: IPLocation{Loc: "1,2", Timezone: "UTC"}}, ErrLocationNotFound},
		{"loc without comma", &fakeIPLocator{info: IPLocation{City: "X", Loc: "12.5", Timezone: "UTC"}}, ErrMalformedResponse},
		{"loc with three parts", &fakeIPLocator{info: IPLocation{City: "X", Loc: "1,2,3", Timezone: "UTC"}}, ErrMalformedResponse},
		{"no timezone", &fakeIPLocator{info: IPLocation{City: "X", Loc: "1,2"}}, ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&fakeGeocoder{}, tt.ipl, &fakeTimezones{})
			if _, err := r.ResolveByIP(context.Background(), "8.8.8.8"); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
