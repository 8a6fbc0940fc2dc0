package handler

import (
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/geotrails/travelmap/internal/domain"
)

// TravelRoute is the JSON shape of a route. Geom is a GeoJSON LineString.
type TravelRoute struct {
	GID   int64             `json:"gid"`
	Start string            `json:"start"`
	End   string            `json:"end"`
	Geom  *geojson.Geometry `json:"geom"`
}

// travelRouteRequest is the body of POST /addtravelroute.
type travelRouteRequest struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
	Lon1  *number `json:"lon1"`
	Lat1  *number `json:"lat1"`
	Lon2  *number `json:"lon2"`
	Lat2  *number `json:"lat2"`
}

// ListTravelRoutes handles GET /gettravelroutes.
func (s *Server) ListTravelRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := s.routes.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]TravelRoute, len(routes))
	for i, route := range routes {
		out[i] = travelRouteToResponse(route)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateTravelRoute handles POST /addtravelroute.
func (s *Server) CreateTravelRoute(w http.ResponseWriter, r *http.Request) {
	var req travelRouteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := requireFields(
		field{"start", req.Start != nil},
		field{"end", req.End != nil},
		field{"lon1", req.Lon1 != nil},
		field{"lat1", req.Lat1 != nil},
		field{"lon2", req.Lon2 != nil},
		field{"lat2", req.Lat2 != nil},
	); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.routes.Create(r.Context(), domain.TravelRoute{
		Start: *req.Start,
		End:   *req.End,
		Path: domain.NewRoutePath(
			orb.Point{float64(*req.Lon1), float64(*req.Lat1)},
			orb.Point{float64(*req.Lon2), float64(*req.Lat2)},
		),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, travelRouteToResponse(created))
}

// DeleteTravelRoute handles DELETE /deletetravelroute.
// Succeeds whether or not the gid existed.
func (s *Server) DeleteTravelRoute(w http.ResponseWriter, r *http.Request) {
	gid, err := decodeGID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.routes.Delete(r.Context(), gid); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func travelRouteToResponse(route domain.TravelRoute) TravelRoute {
	return TravelRoute{
		GID:   route.GID,
		Start: route.Start,
		End:   route.End,
		Geom:  geojson.NewGeometry(route.Path),
	}
}
