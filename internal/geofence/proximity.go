package geofence

import (
	"context"
	"fmt"
	"sync"

	"placelog-api/internal/spatial"
)

// Banner describes the in-app banner for a saved place the user is currently
// near.
type Banner struct {
	PlaceID        string  `json:"place_id"`
	Name           string  `json:"name"`
	DistanceMeters float64 `json:"distance_meters"`
}

// ProximityChecker runs the foreground nearby check, independently of region
// monitoring: on each explicit location refresh it finds the nearest saved
// place within the threshold and surfaces it as a banner. Dismissing the banner
// suppresses it until the next refresh, not on a timer.
type ProximityChecker struct {
	store     PlaceSource
	threshold float64

	mu        sync.Mutex
	banner    *Banner
	dismissed bool
}

// NewProximityChecker creates a proximity checker. A threshold of zero falls
// back to the default region radius.
func NewProximityChecker(store PlaceSource, threshold float64) *ProximityChecker {
	if threshold <= 0 {
		threshold = DefaultRegionRadiusMeters
	}
	return &ProximityChecker{store: store, threshold: threshold}
}

// Refresh recomputes the banner from an explicit, user-initiated location fix.
// It clears any previous dismissal first. Returns the new banner, or nil when
// no saved place is within the threshold.
func (p *ProximityChecker) Refresh(ctx context.Context, lat, lon float64) (*Banner, error) {
	places, err := p.store.ListPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("geofence: failed to load places for proximity check: %w", err)
	}

	var nearest *Banner
	for _, place := range places {
		d := spatial.DistanceMeters(lat, lon, place.Latitude, place.Longitude)
		if d > p.threshold {
			continue
		}
		if nearest == nil || d < nearest.DistanceMeters {
			nearest = &Banner{
				PlaceID:        place.PlaceID,
				Name:           place.Name,
				DistanceMeters: d,
			}
		}
	}

	p.mu.Lock()
	p.banner = nearest
	p.dismissed = false
	p.mu.Unlock()

	return nearest, nil
}

// Current returns the banner to display, or nil when there is none or it has
// been dismissed.
func (p *ProximityChecker) Current() *Banner {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.dismissed {
		return nil
	}
	return p.banner
}

// Dismiss suppresses the current banner until the next Refresh, even if the
// user stays within the threshold.
func (p *ProximityChecker) Dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dismissed = true
}
