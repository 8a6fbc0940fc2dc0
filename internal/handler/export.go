package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/oapi-codegen/runtime"
	"github.com/paulmach/orb/geojson"

	"github.com/geotrails/travelmap/internal/domain"
)

// Export formats accepted by ?format=.
const (
	formatGeoJSON = "geojson"
	formatCSV     = "csv"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"gid", "province", "name", "info", "owner", "lon", "lat", "created_at",
}

// ExportTravelPoints handles GET /exporttravelpoints.
// Returns every travel point, newest first, as a GeoJSON FeatureCollection
// (default) or as CSV with ?format=csv.
func (s *Server) ExportTravelPoints(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeError(w, r, badRequest("invalid query parameter format: %v", err))
		return
	}
	want := formatGeoJSON
	if format != nil {
		want = *format
	}
	if want != formatGeoJSON && want != formatCSV {
		writeError(w, r, badRequest("format must be %s or %s", formatGeoJSON, formatCSV))
		return
	}

	points, err := s.points.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if want == formatCSV {
		writeCSV(w, points)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	// FeatureCollection.MarshalJSON only fails on unencodable properties,
	// and every property here is a string or number.
	b, _ := buildFeatureCollection(points).MarshalJSON()
	_, _ = w.Write(b)
}

// buildFeatureCollection maps each point to a Feature whose properties carry
// every non-geometry column.
func buildFeatureCollection(points []domain.TravelPoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range points {
		f := geojson.NewFeature(p.Location)
		f.ID = p.GID
		f.Properties["gid"] = p.GID
		f.Properties["province"] = p.Province
		f.Properties["name"] = p.Name
		f.Properties["info"] = p.Info
		f.Properties["created_at"] = p.CreatedAt.UTC().Format(time.RFC3339)
		if p.Owner != nil {
			f.Properties["owner"] = *p.Owner
		}
		fc.Append(f)
	}
	return fc
}

// writeCSV encodes points as CSV. A nil owner is written as an empty cell.
func writeCSV(w http.ResponseWriter, points []domain.TravelPoint) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	_ = cw.Write(csvHeaders)
	for _, p := range points {
		_ = cw.Write(travelPointToCSVRecord(p))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="travelpoints.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func travelPointToCSVRecord(p domain.TravelPoint) []string {
	return []string{
		strconv.FormatInt(p.GID, 10),
		p.Province,
		p.Name,
		p.Info,
		deref(p.Owner),
		strconv.FormatFloat(p.Lon(), 'f', -1, 64),
		strconv.FormatFloat(p.Lat(), 'f', -1, 64),
		p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
