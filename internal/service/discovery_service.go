package service

import (
	"context"
	"fmt"
	"sync"

	"placelog-api/internal/search"

	"github.com/rs/zerolog"
)

// DiscoveryService wraps the nearby-place provider. Overlapping searches may
// race; results are last-write-wins, keyed by the order searches started, so
// only the most recent search's results are kept as authoritative.
type DiscoveryService struct {
	provider search.Provider
	logger   zerolog.Logger

	mu        sync.Mutex
	nextGen   uint64
	latestGen uint64
	latest    []search.Candidate
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(provider search.Provider, logger zerolog.Logger) *DiscoveryService {
	return &DiscoveryService{provider: provider, logger: logger}
}

// SearchNearby returns candidate places around the coordinate. The caller
// always gets its own results; the shared latest-results snapshot only advances
// for the newest search started.
func (s *DiscoveryService) SearchNearby(ctx context.Context, lat, lon float64) ([]search.Candidate, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("service: invalid latitude: %f", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("service: invalid longitude: %f", lon)
	}

	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	s.mu.Unlock()

	candidates, err := s.provider.Nearby(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("service: nearby search failed: %w", err)
	}

	s.mu.Lock()
	if gen > s.latestGen {
		s.latestGen = gen
		s.latest = candidates
	} else {
		s.logger.Debug().Uint64("generation", gen).Msg("discarding stale search results")
	}
	s.mu.Unlock()

	return candidates, nil
}

// LatestResults returns the authoritative results of the most recent search.
func (s *DiscoveryService) LatestResults() []search.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]search.Candidate{}, s.latest...)
}
