package weather

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
)

// Resolver turns a place name or a client IP into a Location. The geocoder
// reports no timezone, so names go through the TimezoneFinder; the IP
// provider reports its own.
type Resolver struct {
	geocoder  Geocoder
	ipLocator IPLocator
	timezones TimezoneFinder
}

// NewResolver creates a new Resolver.
func NewResolver(geocoder Geocoder, ipLocator IPLocator, timezones TimezoneFinder) *Resolver {
	return &Resolver{
		geocoder:  geocoder,
		ipLocator: ipLocator,
		timezones: timezones,
	}
}

// ResolveByName geocodes place and keeps the first-ranked candidate.
// Ambiguous names are not disambiguated any further.
func (r *Resolver) ResolveByName(ctx context.Context, place string) (Location, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return Location{}, fmt.Errorf("%w: empty place name", ErrLocationNotFound)
	}

	candidates, err := r.geocoder.Search(ctx, place)
	if err != nil {
		return Location{}, err
	}
	if len(candidates) == 0 {
		return Location{}, fmt.Errorf("%w: no geocoding match for %q", ErrLocationNotFound, place)
	}
	best := candidates[0]
	if strings.TrimSpace(best.Name) == "" {
		return Location{}, fmt.Errorf("%w: geocoding match for %q has no name", ErrMalformedResponse, place)
	}
	log.Printf("DEBUG: resolved %q to %s (%s,%s) out of %d candidates", place, best.Name, best.Lat, best.Lon, len(candidates))

	lat, err := strconv.ParseFloat(strings.TrimSpace(best.Lat), 64)
	if err != nil {
		return Location{}, fmt.Errorf("%w: latitude %q: %v", ErrMalformedResponse, best.Lat, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(best.Lon), 64)
	if err != nil {
		return Location{}, fmt.Errorf("%w: longitude %q: %v", ErrMalformedResponse, best.Lon, err)
	}

	tz := r.timezones.TimezoneName(lon, lat)
	if tz == "" {
		return Location{}, fmt.Errorf("%w: no timezone for %s,%s", ErrLocationNotFound, best.Lat, best.Lon)
	}

	return Location{
		City:        best.Name,
		Coordinates: Coordinates{Lat: best.Lat, Lng: best.Lon},
		Timezone:    tz,
	}, nil
}

// ResolveByIP geolocates clientIP. Loopback, private or missing addresses are
// not sent upstream; the provider then answers for the caller's own address.
func (r *Resolver) ResolveByIP(ctx context.Context, clientIP string) (Location, error) {
	ip := publicIP(clientIP)

	info, err := r.ipLocator.Locate(ctx, ip)
	if err != nil {
		return Location{}, err
	}
	if strings.TrimSpace(info.City) == "" {
		return Location{}, fmt.Errorf("%w: no city for ip %q", ErrLocationNotFound, ip)
	}

	lat, lng, ok := strings.Cut(info.Loc, ",")
	if !ok || lat == "" || lng == "" || strings.Contains(lng, ",") {
		return Location{}, fmt.Errorf("%w: unexpected loc %q", ErrMalformedResponse, info.Loc)
	}
	if info.Timezone == "" {
		return Location{}, fmt.Errorf("%w: missing timezone", ErrMalformedResponse)
	}

	return Location{
		City:        info.City,
		Coordinates: Coordinates{Lat: lat, Lng: lng},
		Timezone:    info.Timezone,
	}, nil
}

func publicIP(raw string) string {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil || ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || ip.IsLinkLocalUnicast() {
		return ""
	}
	return ip.String()
}
