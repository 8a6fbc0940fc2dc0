package service_test

import (
	"context"
	"sync"

	"github.com/paulmach/orb"

	"github.com/geotrails/travelmap/internal/domain"
	"github.com/geotrails/travelmap/internal/events"
	"github.com/geotrails/travelmap/internal/repo"
)

// mockTravelPointRepo is a hand-written test double for repo.TravelPointRepo.
// Set only the method fields your test needs.
type mockTravelPointRepo struct {
	create       func(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error)
	list         func(ctx context.Context) ([]domain.TravelPoint, error)
	listByOwner  func(ctx context.Context, owner string) ([]domain.TravelPoint, error)
	searchByName func(ctx context.Context, term string) ([]domain.TravelPoint, error)
	listWithin   func(ctx context.Context, env orb.Bound) ([]domain.TravelPoint, error)
	update       func(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error)
	delete       func(ctx context.Context, gid int64) error
}

func (m *mockTravelPointRepo) Create(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error) {
	return m.create(ctx, p)
}
func (m *mockTravelPointRepo) List(ctx context.Context) ([]domain.TravelPoint, error) {
	return m.list(ctx)
}
func (m *mockTravelPointRepo) ListByOwner(ctx context.Context, owner string) ([]domain.TravelPoint, error) {
	return m.listByOwner(ctx, owner)
}
func (m *mockTravelPointRepo) SearchByName(ctx context.Context, term string) ([]domain.TravelPoint, error) {
	return m.searchByName(ctx, term)
}
func (m *mockTravelPointRepo) ListWithin(ctx context.Context, env orb.Bound) ([]domain.TravelPoint, error) {
	return m.listWithin(ctx, env)
}
func (m *mockTravelPointRepo) Update(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error) {
	return m.update(ctx, p)
}
func (m *mockTravelPointRepo) Delete(ctx context.Context, gid int64) error {
	return m.delete(ctx, gid)
}

// compile-time check: mockTravelPointRepo must satisfy repo.TravelPointRepo.
var _ repo.TravelPointRepo = (*mockTravelPointRepo)(nil)

type mockTravelRouteRepo struct {
	create func(ctx context.Context, r domain.TravelRoute) (domain.TravelRoute, error)
	list   func(ctx context.Context) ([]domain.TravelRoute, error)
	delete func(ctx context.Context, gid int64) error
}

func (m *mockTravelRouteRepo) Create(ctx context.Context, r domain.TravelRoute) (domain.TravelRoute, error) {
	return m.create(ctx, r)
}
func (m *mockTravelRouteRepo) List(ctx context.Context) ([]domain.TravelRoute, error) {
	return m.list(ctx)
}
func (m *mockTravelRouteRepo) Delete(ctx context.Context, gid int64) error {
	return m.delete(ctx, gid)
}

var _ repo.TravelRouteRepo = (*mockTravelRouteRepo)(nil)

type mockMemberRepo struct {
	create func(ctx context.Context, m domain.TeamMember) (domain.TeamMember, error)
	list   func(ctx context.Context) ([]domain.TeamMember, error)
	delete func(ctx context.Context, id int64) error
}

func (m *mockMemberRepo) Create(ctx context.Context, tm domain.TeamMember) (domain.TeamMember, error) {
	return m.create(ctx, tm)
}
func (m *mockMemberRepo) List(ctx context.Context) ([]domain.TeamMember, error) {
	return m.list(ctx)
}
func (m *mockMemberRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

var _ repo.MemberRepo = (*mockMemberRepo)(nil)

// recordingPublisher keeps every published event for later assertions.
type recordingPublisher struct {
	mu  sync.Mutex
	got []events.Event
}

func (r *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, e)
	return nil
}

func (r *recordingPublisher) subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.got))
	for _, e := range r.got {
		out = append(out, e.Subject())
	}
	return out
}
