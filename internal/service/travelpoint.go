// Package service contains the business logic for the travel map API.
// Services validate inputs, call exactly one repo method per operation and
// announce successful changes on the event publisher.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	"github.com/geotrails/travelmap/internal/domain"
	"github.com/geotrails/travelmap/internal/events"
	"github.com/geotrails/travelmap/internal/repo"
)

// TravelPointService implements business logic for TravelPoint operations.
type TravelPointService struct {
	repo   repo.TravelPointRepo
	events events.Publisher
}

// NewTravelPointService constructs a TravelPointService. A nil publisher
// disables change events.
func NewTravelPointService(r repo.TravelPointRepo, pub events.Publisher) *TravelPointService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &TravelPointService{repo: r, events: pub}
}

// Create validates and persists a new point.
func (s *TravelPointService) Create(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error) {
	if err := validateTravelPoint(p); err != nil {
		return domain.TravelPoint{}, fmt.Errorf("service.TravelPointService.Create: %w", err)
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.TravelPoint{}, fmt.Errorf("service.TravelPointService.Create: %w", err)
	}
	events.Emit(ctx, s.events, events.Event{
		Resource: events.ResourceTravelPoint,
		Action:   events.ActionCreated,
		ID:       created.GID,
		Data:     events.NewTravelPointPayload(created),
	})
	return created, nil
}

// List returns every point, newest first.
func (s *TravelPointService) List(ctx context.Context) ([]domain.TravelPoint, error) {
	points, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TravelPointService.List: %w", err)
	}
	return nonNil(points), nil
}

// ListByOwner returns the points created by owner, newest first.
func (s *TravelPointService) ListByOwner(ctx context.Context, owner string) ([]domain.TravelPoint, error) {
	points, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("service.TravelPointService.ListByOwner: %w", err)
	}
	return nonNil(points), nil
}

// Search returns points whose name contains term, ignoring case.
func (s *TravelPointService) Search(ctx context.Context, term string) ([]domain.TravelPoint, error) {
	points, err := s.repo.SearchByName(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("service.TravelPointService.Search: %w", err)
	}
	return nonNil(points), nil
}

// ListWithin returns points inside env. The envelope is expected to come from
// domain.NewEnvelope; it is re-checked here so callers cannot bypass ordering.
func (s *TravelPointService) ListWithin(ctx context.Context, env orb.Bound) ([]domain.TravelPoint, error) {
	if _, err := domain.NewEnvelope(env.Min.Lon(), env.Min.Lat(), env.Max.Lon(), env.Max.Lat()); err != nil {
		return nil, fmt.Errorf("service.TravelPointService.ListWithin: %w", err)
	}
	points, err := s.repo.ListWithin(ctx, env)
	if err != nil {
		return nil, fmt.Errorf("service.TravelPointService.ListWithin: %w", err)
	}
	return nonNil(points), nil
}

// Update validates and replaces the mutable fields of an existing point.
// Returns domain.ErrNotFound when the gid does not exist.
func (s *TravelPointService) Update(ctx context.Context, p domain.TravelPoint) (domain.TravelPoint, error) {
	if err := validateTravelPoint(p); err != nil {
		return domain.TravelPoint{}, fmt.Errorf("service.TravelPointService.Update: %w", err)
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return domain.TravelPoint{}, fmt.Errorf("service.TravelPointService.Update: %w", err)
	}
	events.Emit(ctx, s.events, events.Event{
		Resource: events.ResourceTravelPoint,
		Action:   events.ActionUpdated,
		ID:       updated.GID,
		Data:     events.NewTravelPointPayload(updated),
	})
	return updated, nil
}

// Delete removes a point. Deleting a gid that does not exist succeeds.
func (s *TravelPointService) Delete(ctx context.Context, gid int64) error {
	if err := s.repo.Delete(ctx, gid); err != nil {
		return fmt.Errorf("service.TravelPointService.Delete: %w", err)
	}
	events.Emit(ctx, s.events, events.Event{
		Resource: events.ResourceTravelPoint,
		Action:   events.ActionDeleted,
		ID:       gid,
	})
	return nil
}

// validateTravelPoint enforces the rules shared by Create and Update.
//   - Name must be non-blank.
//   - Location must be a valid WGS84 coordinate.
func validateTravelPoint(p domain.TravelPoint) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return domain.ValidateLocation("", p.Location)
}

// nonNil lets callers range over and JSON-encode results without a nil check.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
