package geofence

import (
	"context"
	"fmt"
	"sync"

	"placelog-api/internal/metrics"
	"placelog-api/internal/models"

	"github.com/rs/zerolog"
)

// Platform defaults. The iOS region-monitoring ceiling is 20 regions per app.
const (
	DefaultRegionCap          = 20
	DefaultRegionRadiusMeters = 150.0
)

// PlaceSource is the slice of the place store the reconciler reads.
type PlaceSource interface {
	ListPlaces(ctx context.Context) ([]models.PlaceVisit, error)
}

// Reconciler recomputes the full desired monitored-region set from the place
// store and applies it to the region monitor. Reconciliation is a full rebuild:
// everything armed is torn down, then the desired set is re-armed, so stale
// regions for deleted places can never survive a run.
type Reconciler struct {
	store   PlaceSource
	monitor RegionMonitor
	metrics *metrics.Metrics
	logger  zerolog.Logger

	cap    int
	radius float64

	// mu serializes runs; triggers are discrete (store mutation, authorization
	// change, launch) and each must complete before the next is processed.
	mu      sync.Mutex
	auth    Authorization
	desired []Region
}

// NewReconciler creates a reconciler over the given store and monitor. A cap or
// radius of zero falls back to the platform defaults.
func NewReconciler(store PlaceSource, monitor RegionMonitor, m *metrics.Metrics, logger zerolog.Logger, cap int, radius float64) *Reconciler {
	if cap <= 0 {
		cap = DefaultRegionCap
	}
	if radius <= 0 {
		radius = DefaultRegionRadiusMeters
	}
	return &Reconciler{
		store:   store,
		monitor: monitor,
		metrics: m,
		logger:  logger,
		cap:     cap,
		radius:  radius,
	}
}

// Reconcile rebuilds the monitored-region set from the current store contents.
// The desired set is always recorded; regions are only armed when the current
// authorization level permits monitoring. The operation is idempotent.
func (r *Reconciler) Reconcile(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.metrics.IncReconciles()

	places, err := r.store.ListPlaces(ctx)
	if err != nil {
		return fmt.Errorf("geofence: failed to load places for reconciliation: %w", err)
	}

	// First N under the store's name-ascending ordering. Places beyond the cap
	// are silently never monitored.
	n := len(places)
	if n > r.cap {
		n = r.cap
	}

	desired := make([]Region, 0, n)
	for _, p := range places[:n] {
		desired = append(desired, Region{
			ID:            p.PlaceID,
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
			RadiusMeters:  r.radius,
			NotifyOnEntry: true,
			NotifyOnExit:  false,
		})
	}
	r.desired = desired

	// Full teardown before re-arming.
	for _, id := range r.monitor.ListWatched() {
		r.monitor.Unwatch(id)
	}

	armed := 0
	if r.auth.Armed() {
		for _, region := range desired {
			if err := r.monitor.Watch(region); err != nil {
				// Failure for one region does not block the others.
				r.logger.Warn().Err(err).Str("region_id", region.ID).Msg("failed to arm region")
				continue
			}
			armed++
		}
	}

	r.metrics.SetRegionsArmed(armed)
	r.logger.Debug().
		Int("places", len(places)).
		Int("desired", len(desired)).
		Int("armed", armed).
		Stringer("authorization", r.auth).
		Msg("reconciled monitored regions")

	return nil
}

// SetAuthorization records a new authorization level and re-reconciles, so the
// intended set arms or disarms as permissions change.
func (r *Reconciler) SetAuthorization(ctx context.Context, level Authorization) error {
	r.mu.Lock()
	r.auth = level
	r.mu.Unlock()

	return r.Reconcile(ctx)
}

// HandleAuthorizationChanged is the event-subscription form of SetAuthorization.
func (r *Reconciler) HandleAuthorizationChanged(ctx context.Context, ev AuthorizationChanged) {
	if err := r.SetAuthorization(ctx, ev.Level); err != nil {
		r.logger.Error().Err(err).Msg("reconciliation after authorization change failed")
	}
}

// HandleMonitoringFailed logs and counts a platform monitoring failure. There
// is no automatic retry; the region stays in the desired set and the next
// reconciliation re-arms it.
func (r *Reconciler) HandleMonitoringFailed(ev MonitoringFailed) {
	r.metrics.IncMonitoringFailures()
	r.logger.Warn().Err(ev.Err).Str("region_id", ev.RegionID).Msg("region monitoring failed")
}

// Authorization returns the current authorization level.
func (r *Reconciler) Authorization() Authorization {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.auth
}

// Desired returns the intended monitored-region set from the last
// reconciliation, even when authorization keeps it unarmed.
func (r *Reconciler) Desired() []Region {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Region{}, r.desired...)
}
