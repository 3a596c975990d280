package service

import (
	"context"
	"fmt"

	"placelog-api/internal/models"

	"github.com/rs/zerolog"
)

// PlaceService contains the core business logic for the place visit journal
type PlaceService struct {
	repo       PlaceRepository
	reconciler RegionReconciler
	logger     zerolog.Logger
}

// Repository interface for dependency injection
type PlaceRepository interface {
	ListPlaces(ctx context.Context) ([]models.PlaceVisit, error)
	GetPlace(ctx context.Context, placeID string) (*models.PlaceVisit, error)
	InsertPlace(ctx context.Context, place models.PlaceVisit) error
	UpdatePlace(ctx context.Context, place models.PlaceVisit) error
	DeletePlace(ctx context.Context, placeID string) error
}

// RegionReconciler re-derives the monitored-region set after store mutations.
type RegionReconciler interface {
	Reconcile(ctx context.Context) error
}

// NewPlaceService creates a new place service
func NewPlaceService(repo PlaceRepository, reconciler RegionReconciler, logger zerolog.Logger) *PlaceService {
	return &PlaceService{repo: repo, reconciler: reconciler, logger: logger}
}

// SavePlace journals a newly discovered place. The place id is derived from the
// name and rounded coordinates. Reconciliation runs after the write whether or
// not it succeeded: the safe default is to realign monitoring with whatever the
// store currently holds.
func (s *PlaceService) SavePlace(ctx context.Context, name string, lat, lon float64, notes string) (*models.PlaceVisit, error) {
	if name == "" {
		return nil, fmt.Errorf("service: place name cannot be empty")
	}
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("service: invalid latitude: %f", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("service: invalid longitude: %f", lon)
	}

	place := models.PlaceVisit{
		PlaceID:   models.MakePlaceID(name, lat, lon),
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
		Notes:     notes,
	}

	err := s.repo.InsertPlace(ctx, place)
	s.reconcile(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to save place: %w", err)
	}

	return &place, nil
}

// UpdateNotes replaces the notes of an existing place visit.
func (s *PlaceService) UpdateNotes(ctx context.Context, placeID, notes string) (*models.PlaceVisit, error) {
	place, err := s.repo.GetPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load place: %w", err)
	}

	place.Notes = notes
	err = s.repo.UpdatePlace(ctx, *place)
	s.reconcile(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to update place: %w", err)
	}

	return place, nil
}

// DeletePlace removes a place visit from the journal.
func (s *PlaceService) DeletePlace(ctx context.Context, placeID string) error {
	err := s.repo.DeletePlace(ctx, placeID)
	s.reconcile(ctx)
	if err != nil {
		return fmt.Errorf("service: failed to delete place: %w", err)
	}

	return nil
}

// ListPlaces returns all saved places in name-ascending order.
func (s *PlaceService) ListPlaces(ctx context.Context) ([]models.PlaceVisit, error) {
	places, err := s.repo.ListPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list places: %w", err)
	}
	return places, nil
}

// GetPlace returns a single place visit by id.
func (s *PlaceService) GetPlace(ctx context.Context, placeID string) (*models.PlaceVisit, error) {
	place, err := s.repo.GetPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get place: %w", err)
	}
	return place, nil
}

func (s *PlaceService) reconcile(ctx context.Context) {
	if err := s.reconciler.Reconcile(ctx); err != nil {
		s.logger.Error().Err(err).Msg("reconciliation after store mutation failed")
	}
}
