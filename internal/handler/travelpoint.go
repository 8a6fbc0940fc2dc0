package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime"
	"github.com/paulmach/orb"

	"github.com/geotrails/travelmap/internal/domain"
)

// TravelPoint is the JSON shape of a point. Longitude and latitude are
// flattened out of the stored geometry.
type TravelPoint struct {
	GID       int64     `json:"gid"`
	Province  string    `json:"province"`
	Name      string    `json:"name"`
	Info      string    `json:"info"`
	Owner     *string   `json:"owner"`
	Lon       float64   `json:"lon"`
	Lat       float64   `json:"lat"`
	CreatedAt time.Time `json:"created_at"`
}

// travelPointRequest is the body of POST /addtravelpoints and
// PUT /updatetravelpoint. Pointers distinguish absent from zero.
type travelPointRequest struct {
	GID      *identifier `json:"gid"`
	Province *string     `json:"province"`
	Name     *string     `json:"name"`
	Info     *string     `json:"info"`
	Owner    *string     `json:"owner"`
	Lat      *number     `json:"lat"`
	Lon      *number     `json:"lon"`
}

// searchParams are the optional filters of GET /searchtravelpoints.
type searchParams struct {
	Name  *string
	Owner *string
}

// SearchTravelPoints handles GET /searchtravelpoints.
// ?name= selects a case-insensitive substring search and wins over ?owner=;
// with neither, every point is listed. All variants are newest first.
func (s *Server) SearchTravelPoints(w http.ResponseWriter, r *http.Request) {
	var params searchParams
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "name", query, &params.Name); err != nil {
		writeError(w, r, badRequest("invalid query parameter name: %v", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "owner", query, &params.Owner); err != nil {
		writeError(w, r, badRequest("invalid query parameter owner: %v", err))
		return
	}

	var (
		points []domain.TravelPoint
		err    error
	)
	switch {
	case params.Name != nil:
		points, err = s.points.Search(r.Context(), *params.Name)
	case params.Owner != nil:
		points, err = s.points.ListByOwner(r.Context(), *params.Owner)
	default:
		points, err = s.points.List(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, travelPointsToResponse(points))
}

// QueryBoundingBox handles GET /query-bbox?minLon=&minLat=&maxLon=&maxLat=.
// All four parameters are required floats.
func (s *Server) QueryBoundingBox(w http.ResponseWriter, r *http.Request) {
	var minLon, minLat, maxLon, maxLat float64
	query := r.URL.Query()
	for _, p := range []struct {
		name string
		dest *float64
	}{
		{"minLon", &minLon},
		{"minLat", &minLat},
		{"maxLon", &maxLon},
		{"maxLat", &maxLat},
	} {
		if err := runtime.BindQueryParameter("form", true, true, p.name, query, p.dest); err != nil {
			writeError(w, r, badRequest("invalid query parameter %s: %v", p.name, err))
			return
		}
	}

	env, err := domain.NewEnvelope(minLon, minLat, maxLon, maxLat)
	if err != nil {
		writeError(w, r, err)
		return
	}
	points, err := s.points.ListWithin(r.Context(), env)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, travelPointsToResponse(points))
}

// CreateTravelPoint handles POST /addtravelpoints.
// Answers 200 with the stored row, including its generated gid.
func (s *Server) CreateTravelPoint(w http.ResponseWriter, r *http.Request) {
	var req travelPointRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := requireFields(
		field{"lat", req.Lat != nil},
		field{"lon", req.Lon != nil},
		field{"province", req.Province != nil},
		field{"name", req.Name != nil},
		field{"info", req.Info != nil},
	); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.points.Create(r.Context(), requestToTravelPoint(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, travelPointToResponse(created))
}

// UpdateTravelPoint handles PUT /updatetravelpoint.
// Omitting owner keeps the stored owner.
func (s *Server) UpdateTravelPoint(w http.ResponseWriter, r *http.Request) {
	var req travelPointRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := requireFields(
		field{"gid", req.GID != nil},
		field{"lat", req.Lat != nil},
		field{"lon", req.Lon != nil},
		field{"province", req.Province != nil},
		field{"name", req.Name != nil},
		field{"info", req.Info != nil},
	); err != nil {
		writeError(w, r, err)
		return
	}

	p := requestToTravelPoint(req)
	p.GID = int64(*req.GID)
	updated, err := s.points.Update(r.Context(), p)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "travel point not found"})
			return
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, travelPointToResponse(updated))
}

// DeleteTravelPoint handles DELETE /deletetravelpoint.
// Succeeds whether or not the gid existed.
func (s *Server) DeleteTravelPoint(w http.ResponseWriter, r *http.Request) {
	gid, err := decodeGID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.points.Delete(r.Context(), gid); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// --- mapping helpers --------------------------------------------------------

// requestToTravelPoint converts a validated request body into a domain.TravelPoint.
// Callers must have checked the required fields.
func requestToTravelPoint(req travelPointRequest) domain.TravelPoint {
	return domain.TravelPoint{
		Province: *req.Province,
		Name:     *req.Name,
		Info:     *req.Info,
		Owner:    req.Owner,
		Location: orb.Point{float64(*req.Lon), float64(*req.Lat)},
	}
}

func travelPointToResponse(p domain.TravelPoint) TravelPoint {
	return TravelPoint{
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

// travelPointsToResponse never returns nil, so empty results encode as [].
func travelPointsToResponse(points []domain.TravelPoint) []TravelPoint {
	out := make([]TravelPoint, len(points))
	for i, p := range points {
		out[i] = travelPointToResponse(p)
	}
	return out
}
