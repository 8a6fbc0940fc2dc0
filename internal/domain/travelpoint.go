// Package domain contains the core data types for the travel map API.
// It is imported by every other internal package (repo, service, handler).
// Geometry is modelled with paulmach/orb so that every layer shares one
// representation of points, lines and envelopes.
package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// SRID is the spatial reference every stored geometry uses (WGS84).
const SRID = 4326

// TravelPoint is a geotagged place.
// Owner is nil when the point was created without one.
type TravelPoint struct {
	GID       int64
	Province  string
	Name      string
	Info      string
	Owner     *string
	Location  orb.Point // [lon, lat]
	CreatedAt time.Time
}

// Lon returns the longitude of the point.
func (p TravelPoint) Lon() float64 { return p.Location.Lon() }

// Lat returns the latitude of the point.
func (p TravelPoint) Lat() float64 { return p.Location.Lat() }
