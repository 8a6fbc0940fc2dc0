package domain

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ValidateLocation checks that p is a valid WGS84 coordinate.
// The returned error wraps ErrValidation; field prefixes the message so
// callers can tell which coordinate pair failed.
func ValidateLocation(field string, p orb.Point) error {
	if math.IsNaN(p.Lat()) || math.IsNaN(p.Lon()) {
		return fmt.Errorf("%w: %scoordinates must be numbers", ErrValidation, field)
	}
	if p.Lat() < -90 || p.Lat() > 90 {
		return fmt.Errorf("%w: %slat must be between -90 and 90", ErrValidation, field)
	}
	if p.Lon() < -180 || p.Lon() > 180 {
		return fmt.Errorf("%w: %slon must be between -180 and 180", ErrValidation, field)
	}
	return nil
}

// NewEnvelope builds the axis-aligned rectangle used by bounding-box queries.
// A degenerate envelope (min == max on an axis) is allowed.
func NewEnvelope(minLon, minLat, maxLon, maxLat float64) (orb.Bound, error) {
	b := orb.Bound{
		Min: orb.Point{minLon, minLat},
		Max: orb.Point{maxLon, maxLat},
	}
	if err := ValidateLocation("min", b.Min); err != nil {
		return orb.Bound{}, err
	}
	if err := ValidateLocation("max", b.Max); err != nil {
		return orb.Bound{}, err
	}
	if minLon > maxLon {
		return orb.Bound{}, fmt.Errorf("%w: minLon must not exceed maxLon", ErrValidation)
	}
	if minLat > maxLat {
		return orb.Bound{}, fmt.Errorf("%w: minLat must not exceed maxLat", ErrValidation)
	}
	return b, nil
}
