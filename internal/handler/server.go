// Package handler implements the HTTP handlers for the travel map API.
// All handlers are methods on Server. Methods are split into resource files
// (travelpoint.go, travelroute.go, member.go) but share the same Server
// struct so they can reach its dependencies. router.go owns the dispatch table.
package handler

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/geotrails/travelmap/internal/domain"
)

// TravelPointServicer defines the business operations the travel point
// handlers depend on. Defining the interface here (in the consumer package)
// lets handler tests inject a mock without touching the database.
type TravelPointServicer interface {
	Create(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error)
	List(ctx context.Context) ([]domain.TravelPoint, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.TravelPoint, error)
	Search(ctx context.Context, term string) ([]domain.TravelPoint, error)
	ListWithin(ctx context.Context, env orb.Bound) ([]domain.TravelPoint, error)
	Update(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error)
	Delete(ctx context.Context, gid int64) error
}

// TravelRouteServicer defines the business operations the route handlers depend on.
type TravelRouteServicer interface {
	Create(ctx context.Context, route domain.TravelRoute) (domain.TravelRoute, error)
	List(ctx context.Context) ([]domain.TravelRoute, error)
	Delete(ctx context.Context, gid int64) error
}

// MemberServicer defines the business operations the roster handlers depend on.
type MemberServicer interface {
	Create(ctx context.Context, m domain.TeamMember) (domain.TeamMember, error)
	List(ctx context.Context) ([]domain.TeamMember, error)
	Delete(ctx context.Context, id int64) error
}

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies of every endpoint.
// Wire it in main.go via NewRouter(server, middlewares...).
type Server struct {
	points  TravelPointServicer
	routes  TravelRouteServicer
	members MemberServicer
	db      Pinger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(points TravelPointServicer, routes TravelRouteServicer, members MemberServicer, db Pinger) *Server {
	return &Server{points: points, routes: routes, members: members, db: db}
}
