package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/geotrails/travelmap/internal/domain"
)

// TravelRouteRepo defines the persistence operations for TravelRoutes.
// Routes have no update operation.
type TravelRouteRepo interface {
	// Create inserts a route whose geometry is the line between the first two
	// vertices of route.Path and returns the persisted record.
	Create(ctx context.Context, route domain.TravelRoute) (domain.TravelRoute, error)

	// List returns every route ordered by gid.
	List(ctx context.Context) ([]domain.TravelRoute, error)

	// Delete removes a route by gid. Deleting a missing gid is not an error.
	Delete(ctx context.Context, gid int64) error
}

type pgTravelRouteRepo struct {
	db db
}

// NewTravelRouteRepo constructs a TravelRouteRepo backed by the provided db connection.
func NewTravelRouteRepo(db db) TravelRouteRepo {
	return &pgTravelRouteRepo{db: db}
}

// The geometry is read back as GeoJSON and decoded with orb so the route's
// line never has to be reassembled from scalar columns.
const travelRouteColumns = `gid, start, "end", ST_AsGeoJSON(geom)`

func (r *pgTravelRouteRepo) Create(ctx context.Context, route domain.TravelRoute) (domain.TravelRoute, error) {
	if len(route.Path) != 2 {
		return domain.TravelRoute{}, fmt.Errorf("repo.TravelRouteRepo.Create: %w: route path must have exactly two points", domain.ErrValidation)
	}

	const q = `
		INSERT INTO travelroute (start, "end", geom)
		VALUES (@start, @end, ST_SetSRID(ST_MakeLine(
			ST_MakePoint(@lon1, @lat1),
			ST_MakePoint(@lon2, @lat2)
		), 4326))
		RETURNING ` + travelRouteColumns

	from, to := route.Path[0], route.Path[1]
	args := pgx.NamedArgs{
		"start": route.Start,
		"end":   route.End,
		"lon1":  from.Lon(),
		"lat1":  from.Lat(),
		"lon2":  to.Lon(),
		"lat2":  to.Lat(),
	}

	result, err := scanTravelRoute(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TravelRoute{}, fmt.Errorf("repo.TravelRouteRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTravelRouteRepo) List(ctx context.Context) ([]domain.TravelRoute, error) {
	const q = `SELECT ` + travelRouteColumns + ` FROM travelroute ORDER BY gid`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TravelRouteRepo.List: %w", err)
	}
	routes, err := collect(rows, scanTravelRoute)
	if err != nil {
		return nil, fmt.Errorf("repo.TravelRouteRepo.List: %w", err)
	}
	return routes, nil
}

func (r *pgTravelRouteRepo) Delete(ctx context.Context, gid int64) error {
	const q = `DELETE FROM travelroute WHERE gid = @gid`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"gid": gid}); err != nil {
		return fmt.Errorf("repo.TravelRouteRepo.Delete: %w", err)
	}
	return nil
}

func scanTravelRoute(s scanner) (domain.TravelRoute, error) {
	var (
		route domain.TravelRoute
		raw   []byte
	)

	if err := s.Scan(&route.GID, &route.Start, &route.End, &raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TravelRoute{}, domain.ErrNotFound
		}
		return domain.TravelRoute{}, err
	}

	path, err := decodeLineString(raw)
	if err != nil {
		return domain.TravelRoute{}, fmt.Errorf("route %d: %w", route.GID, err)
	}
	route.Path = path
	return route, nil
}

// decodeLineString parses the output of ST_AsGeoJSON for a LineString column.
func decodeLineString(raw []byte) (orb.LineString, error) {
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	ls, ok := g.Geometry().(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("decode geometry: expected LineString, got %s", g.Geometry().GeoJSONType())
	}
	return ls, nil
}
