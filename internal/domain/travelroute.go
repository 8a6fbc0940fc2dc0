package domain

import "github.com/paulmach/orb"

// TravelRoute is a straight segment between two labelled endpoints.
// Start and End are free-text labels; they are not keys into travelpoint.
type TravelRoute struct {
	GID   int64
	Start string
	End   string
	Path  orb.LineString
}

// NewRoutePath builds the two-vertex line stored for a route.
func NewRoutePath(from, to orb.Point) orb.LineString {
	return orb.LineString{from, to}
}
