package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/geotrails/travelmap/internal/domain"
	"github.com/geotrails/travelmap/internal/events"
	"github.com/geotrails/travelmap/internal/repo"
)

// TravelRouteService implements business logic for TravelRoute operations.
type TravelRouteService struct {
	repo   repo.TravelRouteRepo
	events events.Publisher
}

// NewTravelRouteService constructs a TravelRouteService. A nil publisher
// disables change events.
func NewTravelRouteService(r repo.TravelRouteRepo, pub events.Publisher) *TravelRouteService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &TravelRouteService{repo: r, events: pub}
}

// Create validates both endpoints and persists the route.
func (s *TravelRouteService) Create(ctx context.Context, route domain.TravelRoute) (domain.TravelRoute, error) {
	if err := validateTravelRoute(route); err != nil {
		return domain.TravelRoute{}, fmt.Errorf("service.TravelRouteService.Create: %w", err)
	}
	created, err := s.repo.Create(ctx, route)
	if err != nil {
		return domain.TravelRoute{}, fmt.Errorf("service.TravelRouteService.Create: %w", err)
	}
	events.Emit(ctx, s.events, events.Event{
		Resource: events.ResourceTravelRoute,
		Action:   events.ActionCreated,
		ID:       created.GID,
		Data:     events.NewTravelRoutePayload(created),
	})
	return created, nil
}

// List returns every route.
func (s *TravelRouteService) List(ctx context.Context) ([]domain.TravelRoute, error) {
	routes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TravelRouteService.List: %w", err)
	}
	return nonNil(routes), nil
}

// Delete removes a route. Deleting a gid that does not exist succeeds.
func (s *TravelRouteService) Delete(ctx context.Context, gid int64) error {
	if err := s.repo.Delete(ctx, gid); err != nil {
		return fmt.Errorf("service.TravelRouteService.Delete: %w", err)
	}
	events.Emit(ctx, s.events, events.Event{
		Resource: events.ResourceTravelRoute,
		Action:   events.ActionDeleted,
		ID:       gid,
	})
	return nil
}

func validateTravelRoute(route domain.TravelRoute) error {
	if strings.TrimSpace(route.Start) == "" {
		return fmt.Errorf("%w: start is required", domain.ErrValidation)
	}
	if strings.TrimSpace(route.End) == "" {
		return fmt.Errorf("%w: end is required", domain.ErrValidation)
	}
	if len(route.Path) != 2 {
		return fmt.Errorf("%w: a route needs exactly two points", domain.ErrValidation)
	}
	for i, p := range route.Path {
		if err := domain.ValidateLocation(fmt.Sprintf("point %d: ", i+1), p); err != nil {
			return err
		}
	}
	return nil
}
