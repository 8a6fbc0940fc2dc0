package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// route is one row of the dispatch table.
type route struct {
	method  string
	pattern string
	handler http.HandlerFunc
}

// table lists every endpoint in match order. Paths are exact; the query
// string never takes part in matching, it only selects a variant inside a
// handler (see SearchTravelPoints).
func (s *Server) table() []route {
	return []route{
		{http.MethodGet, "/searchtravelpoints", s.SearchTravelPoints},
		{http.MethodGet, "/query-bbox", s.QueryBoundingBox},
		{http.MethodPost, "/addtravelpoints", s.CreateTravelPoint},
		{http.MethodPut, "/updatetravelpoint", s.UpdateTravelPoint},
		{http.MethodDelete, "/deletetravelpoint", s.DeleteTravelPoint},

		{http.MethodGet, "/gettravelroutes", s.ListTravelRoutes},
		{http.MethodPost, "/addtravelroute", s.CreateTravelRoute},
		{http.MethodDelete, "/deletetravelroute", s.DeleteTravelRoute},

		{http.MethodGet, "/members", s.ListMembers},
		{http.MethodPost, "/addmember", s.CreateMember},
		{http.MethodDelete, "/deletemember", s.DeleteMember},

		{http.MethodGet, "/exporttravelpoints", s.ExportTravelPoints},
		{http.MethodGet, "/healthz", s.GetHealth},
		{http.MethodGet, "/openapi.yaml", s.GetOpenAPI},
	}
}

// NewRouter registers the dispatch table on a chi router behind the given
// middlewares. Unknown paths and known paths with the wrong method both get
// 404 {"error":"not found"}; preflight OPTIONS is expected to be answered by
// the CORS middleware before routing.
//
// Callers may register further routes (such as /metrics) on the returned mux.
func NewRouter(s *Server, middlewares ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	for _, rt := range s.table() {
		r.Method(rt.method, rt.pattern, rt.handler)
	}
	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
}
