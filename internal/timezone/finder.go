// Package timezone looks up IANA timezone names for coordinates offline,
// using timezone boundary polygons shipped with tzf.
package timezone

import (
	"fmt"

	"github.com/ringsaturn/tzf"
)

// Finder answers point-in-polygon timezone queries.
type Finder struct {
	finder tzf.F
}

// NewFinder loads the embedded boundary data. It is slow enough that one
// Finder should be created at startup and shared.
func NewFinder() (*Finder, error) {
	f, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("load timezone boundaries: %w", err)
	}
	return &Finder{finder: f}, nil
}

// TimezoneName returns the IANA name for the point, or "" if none matches.
func (f *Finder) TimezoneName(lng, lat float64) string {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ""
	}
	return f.finder.GetTimezoneName(lng, lat)
}
