package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/geotrails/travelmap/internal/domain"
	"github.com/geotrails/travelmap/internal/events"
	"github.com/geotrails/travelmap/internal/repo"
)

// MemberService implements business logic for the team roster.
type MemberService struct {
	repo   repo.MemberRepo
	events events.Publisher
}

// NewMemberService constructs a MemberService. A nil publisher disables
// change events.
func NewMemberService(r repo.MemberRepo, pub events.Publisher) *MemberService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &MemberService{repo: r, events: pub}
}

// Create validates and persists a member.
func (s *MemberService) Create(ctx context.Context, m domain.TeamMember) (domain.TeamMember, error) {
	if strings.TrimSpace(m.Name) == "" {
		return domain.TeamMember{}, fmt.Errorf("service.MemberService.Create: %w: name is required", domain.ErrValidation)
	}
	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return domain.TeamMember{}, fmt.Errorf("service.MemberService.Create: %w", err)
	}
	events.Emit(ctx, s.events, events.Event{
		Resource: events.ResourceMember,
		Action:   events.ActionCreated,
		ID:       created.ID,
		Data:     events.NewMemberPayload(created),
	})
	return created, nil
}

// List returns the roster ordered by id.
func (s *MemberService) List(ctx context.Context) ([]domain.TeamMember, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.MemberService.List: %w", err)
	}
	return nonNil(members), nil
}

// Delete removes a member. Deleting an id that does not exist succeeds.
func (s *MemberService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.MemberService.Delete: %w", err)
	}
	events.Emit(ctx, s.events, events.Event{
		Resource: events.ResourceMember,
		Action:   events.ActionDeleted,
		ID:       id,
	})
	return nil
}
