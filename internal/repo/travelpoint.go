package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/paulmach/orb"

	"github.com/geotrails/travelmap/internal/domain"
)

// TravelPointRepo defines the persistence operations for TravelPoints.
type TravelPointRepo interface {
	// Create inserts a new point and returns the persisted record with the
	// DB-generated gid and created_at populated.
	Create(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error)

	// List returns every point ordered by created_at descending.
	List(ctx context.Context) ([]domain.TravelPoint, error)

	// ListByOwner returns the points of one owner ordered by created_at descending.
	ListByOwner(ctx context.Context, owner string) ([]domain.TravelPoint, error)

	// SearchByName returns points whose name contains term, case-insensitively.
	SearchByName(ctx context.Context, term string) ([]domain.TravelPoint, error)

	// ListWithin returns points whose geometry lies within the envelope,
	// following PostGIS ST_Within semantics.
	ListWithin(ctx context.Context, env orb.Bound) ([]domain.TravelPoint, error)

	// Update replaces province, name, info and location (and owner when
	// non-nil) of an existing point. Returns domain.ErrNotFound if no point
	// has that gid.
	Update(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error)

	// Delete removes a point by gid. Deleting a missing gid is not an error.
	Delete(ctx context.Context, gid int64) error
}

// pgTravelPointRepo is the Postgres implementation of TravelPointRepo.
type pgTravelPointRepo struct {
	db db
}

// NewTravelPointRepo constructs a TravelPointRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTravelPointRepo(db db) TravelPointRepo {
	return &pgTravelPointRepo{db: db}
}

// travelPointColumns is the projection shared by every query; scanTravelPoint
// depends on its order.
const travelPointColumns = `gid, province, name, info, owner, ST_X(geom), ST_Y(geom), created_at`

func (r *pgTravelPointRepo) Create(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error) {
	const q = `
		INSERT INTO travelpoint (province, name, info, owner, geom)
		VALUES (@province, @name, @info, @owner, ST_SetSRID(ST_MakePoint(@lon, @lat), 4326))
		RETURNING ` + travelPointColumns

	args := pgx.NamedArgs{
		"province": p.Province,
		"name":     p.Name,
		"info":     p.Info,
		"owner":    p.Owner, // nil becomes NULL
		"lon":      p.Lon(),
		"lat":      p.Lat(),
	}

	result, err := scanTravelPoint(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TravelPoint{}, fmt.Errorf("repo.TravelPointRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTravelPointRepo) List(ctx context.Context) ([]domain.TravelPoint, error) {
	const q = `SELECT ` + travelPointColumns + `
		FROM travelpoint
		ORDER BY created_at DESC, gid DESC`

	points, err := r.query(ctx, q, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.TravelPointRepo.List: %w", err)
	}
	return points, nil
}

func (r *pgTravelPointRepo) ListByOwner(ctx context.Context, owner string) ([]domain.TravelPoint, error) {
	const q = `SELECT ` + travelPointColumns + `
		FROM travelpoint
		WHERE owner = @owner
		ORDER BY created_at DESC, gid DESC`

	points, err := r.query(ctx, q, pgx.NamedArgs{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("repo.TravelPointRepo.ListByOwner: %w", err)
	}
	return points, nil
}

func (r *pgTravelPointRepo) SearchByName(ctx context.Context, term string) ([]domain.TravelPoint, error) {
	const q = `SELECT ` + travelPointColumns + `
		FROM travelpoint
		WHERE name ILIKE @pattern ESCAPE '\'
		ORDER BY created_at DESC, gid DESC`

	points, err := r.query(ctx, q, pgx.NamedArgs{"pattern": containsPattern(term)})
	if err != nil {
		return nil, fmt.Errorf("repo.TravelPointRepo.SearchByName: %w", err)
	}
	return points, nil
}

// likeEscaper makes LIKE metacharacters in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns a LIKE pattern matching any value containing term.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func (r *pgTravelPointRepo) ListWithin(ctx context.Context, env orb.Bound) ([]domain.TravelPoint, error) {
	const q = `SELECT ` + travelPointColumns + `
		FROM travelpoint
		WHERE ST_Within(geom, ST_MakeEnvelope(@min_lon, @min_lat, @max_lon, @max_lat, 4326))
		ORDER BY created_at DESC, gid DESC`

	args := pgx.NamedArgs{
		"min_lon": env.Min.Lon(),
		"min_lat": env.Min.Lat(),
		"max_lon": env.Max.Lon(),
		"max_lat": env.Max.Lat(),
	}

	points, err := r.query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TravelPointRepo.ListWithin: %w", err)
	}
	return points, nil
}

func (r *pgTravelPointRepo) Update(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error) {
	const q = `
		UPDATE travelpoint
		SET province = @province,
		    name     = @name,
		    info     = @info,
		    owner    = COALESCE(@owner, owner),
		    geom     = ST_SetSRID(ST_MakePoint(@lon, @lat), 4326)
		WHERE gid = @gid
		RETURNING ` + travelPointColumns

	args := pgx.NamedArgs{
		"gid":      p.GID,
		"province": p.Province,
		"name":     p.Name,
		"info":     p.Info,
		"owner":    p.Owner,
		"lon":      p.Lon(),
		"lat":      p.Lat(),
	}

	result, err := scanTravelPoint(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TravelPoint{}, fmt.Errorf("repo.TravelPointRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTravelPointRepo) Delete(ctx context.Context, gid int64) error {
	const q = `DELETE FROM travelpoint WHERE gid = @gid`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"gid": gid}); err != nil {
		return fmt.Errorf("repo.TravelPointRepo.Delete: %w", err)
	}
	return nil
}

func (r *pgTravelPointRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.TravelPoint, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTravelPoint)
}

// scanTravelPoint maps one row of travelPointColumns into a domain.TravelPoint.
func scanTravelPoint(s scanner) (domain.TravelPoint, error) {
	var (
		p        domain.TravelPoint
		lon, lat float64
	)

	err := s.Scan(&p.GID, &p.Province, &p.Name, &p.Info, &p.Owner, &lon, &lat, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TravelPoint{}, domain.ErrNotFound
		}
		return domain.TravelPoint{}, err
	}

	p.Location = orb.Point{lon, lat}
	return p, nil
}
