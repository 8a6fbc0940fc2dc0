package handler

import (
	"net/http"

	"github.com/geotrails/travelmap/internal/domain"
)

// TeamMember is the JSON shape of a roster entry.
type TeamMember struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
	PageLink string `json:"page_link"`
}

type memberRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Avatar   *string `json:"avatar"`
	PageLink *string `json:"page_link"`
}

type memberDeleteRequest struct {
	ID *identifier `json:"id"`
}

// ListMembers handles GET /members. Members are ordered by id.
func (s *Server) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.members.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]TeamMember, len(members))
	for i, m := range members {
		out[i] = memberToResponse(m)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateMember handles POST /addmember. Only name is required; the other
// fields default to empty strings.
func (s *Server) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := requireFields(field{"name", req.Name != nil}); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.members.Create(r.Context(), domain.TeamMember{
		Name:     *req.Name,
		Role:     deref(req.Role),
		Avatar:   deref(req.Avatar),
		PageLink: deref(req.PageLink),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberToResponse(created))
}

// DeleteMember handles DELETE /deletemember. The body carries "id", not "gid".
func (s *Server) DeleteMember(w http.ResponseWriter, r *http.Request) {
	var req memberDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := requireFields(field{"id", req.ID != nil}); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.members.Delete(r.Context(), int64(*req.ID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func memberToResponse(m domain.TeamMember) TeamMember {
	return TeamMember{ID: m.ID, Name: m.Name, Role: m.Role, Avatar: m.Avatar, PageLink: m.PageLink}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
