package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/geotrails/travelmap/internal/domain"
	"github.com/geotrails/travelmap/internal/handler"
)

// mockTravelPointServicer is a test double for handler.TravelPointServicer.
// Set only the method fields your test needs.
type mockTravelPointServicer struct {
	create      func(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error)
	list        func(ctx context.Context) ([]domain.TravelPoint, error)
	listByOwner func(ctx context.Context, owner string) ([]domain.TravelPoint, error)
	search      func(ctx context.Context, term string) ([]domain.TravelPoint, error)
	listWithin  func(ctx context.Context, env orb.Bound) ([]domain.TravelPoint, error)
	update      func(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error)
	delete      func(ctx context.Context, gid int64) error
}

func (m *mockTravelPointServicer) Create(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error) {
	return m.create(ctx, p)
}
func (m *mockTravelPointServicer) List(ctx context.Context) ([]domain.TravelPoint, error) {
	return m.list(ctx)
}
func (m *mockTravelPointServicer) ListByOwner(ctx context.Context, owner string) ([]domain.TravelPoint, error) {
	return m.listByOwner(ctx, owner)
}
func (m *mockTravelPointServicer) Search(ctx context.Context, term string) ([]domain.TravelPoint, error) {
	return m.search(ctx, term)
}
func (m *mockTravelPointServicer) ListWithin(ctx context.Context, env orb.Bound) ([]domain.TravelPoint, error) {
	return m.listWithin(ctx, env)
}
func (m *mockTravelPointServicer) Update(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error) {
	return m.update(ctx, p)
}
func (m *mockTravelPointServicer) Delete(ctx context.Context, gid int64) error {
	return m.delete(ctx, gid)
}

// mockTravelRouteServicer is a test double for handler.TravelRouteServicer.
type mockTravelRouteServicer struct {
	create func(ctx context.Context, route domain.TravelRoute) (domain.TravelRoute, error)
	list   func(ctx context.Context) ([]domain.TravelRoute, error)
	delete func(ctx context.Context, gid int64) error
}

func (m *mockTravelRouteServicer) Create(ctx context.Context, route domain.TravelRoute) (domain.TravelRoute, error) {
	return m.create(ctx, route)
}
func (m *mockTravelRouteServicer) List(ctx context.Context) ([]domain.TravelRoute, error) {
	return m.list(ctx)
}
func (m *mockTravelRouteServicer) Delete(ctx context.Context, gid int64) error {
	return m.delete(ctx, gid)
}

// mockMemberServicer is a test double for handler.MemberServicer.
type mockMemberServicer struct {
	create func(ctx context.Context, m domain.TeamMember) (domain.TeamMember, error)
	list   func(ctx context.Context) ([]domain.TeamMember, error)
	delete func(ctx context.Context, id int64) error
}

func (m *mockMemberServicer) Create(ctx context.Context, member domain.TeamMember) (domain.TeamMember, error) {
	return m.create(ctx, member)
}
func (m *mockMemberServicer) List(ctx context.Context) ([]domain.TeamMember, error) {
	return m.list(ctx)
}
func (m *mockMemberServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.TravelPointServicer = (*mockTravelPointServicer)(nil)
	_ handler.TravelRouteServicer = (*mockTravelRouteServicer)(nil)
	_ handler.MemberServicer      = (*mockMemberServicer)(nil)
	_ handler.Pinger              = pingerFunc(nil)
)

// ---- helpers ---------------------------------------------------------------

// deps bundles the mocks behind one Server. Zero-valued mocks panic when
// called, which makes an unexpected service call fail the test loudly.
type deps struct {
	points  *mockTravelPointServicer
	routes  *mockTravelRouteServicer
	members *mockMemberServicer
	db      handler.Pinger
}

// newHTTPHandler wires a Server with the given mocks into the production router.
func newHTTPHandler(d deps, middlewares ...func(http.Handler) http.Handler) http.Handler {
	if d.points == nil {
		d.points = &mockTravelPointServicer{}
	}
	if d.routes == nil {
		d.routes = &mockTravelRouteServicer{}
	}
	if d.members == nil {
		d.members = &mockMemberServicer{}
	}
	srv := handler.NewServer(d.points, d.routes, d.members, d.db)
	return handler.NewRouter(srv, middlewares...)
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func ptr[T any](v T) *T { return &v }

func pointFixture() domain.TravelPoint {
	return domain.TravelPoint{
		GID:       7,
		Province:  "Beijing",
		Name:      "Tiananmen",
		Info:      "landmark",
		Owner:     ptr("alice"),
		Location:  orb.Point{116.4, 39.9},
		CreatedAt: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
	}
}
