package events

import (
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/geotrails/travelmap/internal/domain"
)

// The payload types mirror the JSON the HTTP API returns for the same
// resource, so consumers can share one decoder.

// TravelPointPayload is the Data of travelpoint events.
type TravelPointPayload struct {
	GID       int64     `json:"gid"`
	Province  string    `json:"province"`
	Name      string    `json:"name"`
	Info      string    `json:"info"`
	Owner     *string   `json:"owner"`
	Lon       float64   `json:"lon"`
	Lat       float64   `json:"lat"`
	CreatedAt time.Time `json:"created_at"`
}

// TravelRoutePayload is the Data of travelroute events. Geom is a GeoJSON
// LineString.
type TravelRoutePayload struct {
	GID   int64             `json:"gid"`
	Start string            `json:"start"`
	End   string            `json:"end"`
	Geom  *geojson.Geometry `json:"geom"`
}

// MemberPayload is the Data of member events.
type MemberPayload struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
	PageLink string `json:"page_link"`
}

func NewTravelPointPayload(p domain.TravelPoint) TravelPointPayload {
	return TravelPointPayload{
		GID:       p.GID,
		Province:  p.Province,
		Name:      p.Name,
		Info:      p.Info,
		Owner:     p.Owner,
		Lon:       p.Lon(),
		Lat:       p.Lat(),
		CreatedAt: p.CreatedAt,
	}
}

func NewTravelRoutePayload(r domain.TravelRoute) TravelRoutePayload {
	return TravelRoutePayload{GID: r.GID, Start: r.Start, End: r.End, Geom: geojson.NewGeometry(r.Path)}
}

func NewMemberPayload(m domain.TeamMember) MemberPayload {
	return MemberPayload{ID: m.ID, Name: m.Name, Role: m.Role, Avatar: m.Avatar, PageLink: m.PageLink}
}
