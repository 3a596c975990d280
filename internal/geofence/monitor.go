// Package geofence implements the monitored-region reconciler and arrival
// notification flow for saved places.
package geofence

import (
	"fmt"
	"sync"
)

// Authorization is the location-permission level granted by the user.
type Authorization int

const (
	AuthorizationNotDetermined Authorization = iota
	AuthorizationDenied
	AuthorizationWhileInUse
	AuthorizationAlways
)

// Armed reports whether regions may actually be armed at this level. Below
// while-in-use the reconciler still records the intended set so monitoring
// activates as soon as the level is upgraded.
func (a Authorization) Armed() bool {
	return a == AuthorizationWhileInUse || a == AuthorizationAlways
}

func (a Authorization) String() string {
	switch a {
	case AuthorizationDenied:
		return "denied"
	case AuthorizationWhileInUse:
		return "while_in_use"
	case AuthorizationAlways:
		return "always"
	default:
		return "not_determined"
	}
}

// ParseAuthorization converts an authorization level from its wire form.
func ParseAuthorization(s string) (Authorization, error) {
	switch s {
	case "not_determined":
		return AuthorizationNotDetermined, nil
	case "denied":
		return AuthorizationDenied, nil
	case "while_in_use":
		return AuthorizationWhileInUse, nil
	case "always":
		return AuthorizationAlways, nil
	default:
		return AuthorizationNotDetermined, fmt.Errorf("geofence: unknown authorization level %q", s)
	}
}

// Region is a circular geofence around a saved place. Regions trigger on entry
// only; exit events are never requested.
type Region struct {
	ID            string  `json:"id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	RadiusMeters  float64 `json:"radius_meters"`
	NotifyOnEntry bool    `json:"notify_on_entry"`
	NotifyOnExit  bool    `json:"notify_on_exit"`
}

// RegionEntered is emitted when the device crosses into a monitored region.
type RegionEntered struct {
	RegionID string
}

// MonitoringFailed is emitted when the platform could not arm or keep a region.
type MonitoringFailed struct {
	RegionID string
	Err      error
}

// AuthorizationChanged is emitted when the user changes the location permission.
type AuthorizationChanged struct {
	Level Authorization
}

// RegionMonitor is the location-monitoring capability the reconciler drives.
type RegionMonitor interface {
	Watch(region Region) error
	Unwatch(regionID string)
	ListWatched() []string
}

// DeviceMonitor is the server-side mirror of the mobile client's region
// monitor. The reconciler issues watch/unwatch commands against it, the client
// syncs the armed set, and reported platform events fan out to registered
// handlers.
type DeviceMonitor struct {
	mu      sync.Mutex
	watched map[string]Region

	enteredHandlers []func(RegionEntered)
	failedHandlers  []func(MonitoringFailed)
}

// NewDeviceMonitor creates a device monitor with no armed regions.
func NewDeviceMonitor() *DeviceMonitor {
	return &DeviceMonitor{watched: make(map[string]Region)}
}

// Watch arms a region. Re-watching an armed region replaces it.
func (m *DeviceMonitor) Watch(region Region) error {
	if region.ID == "" {
		return fmt.Errorf("geofence: region id cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.watched[region.ID] = region
	return nil
}

// Unwatch disarms a region. Unknown ids are ignored.
func (m *DeviceMonitor) Unwatch(regionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.watched, regionID)
}

// ListWatched returns the ids of all armed regions.
func (m *DeviceMonitor) ListWatched() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.watched))
	for id := range m.watched {
		ids = append(ids, id)
	}
	return ids
}

// WatchedRegions returns the full armed region set for the client to sync.
func (m *DeviceMonitor) WatchedRegions() []Region {
	m.mu.Lock()
	defer m.mu.Unlock()

	regions := make([]Region, 0, len(m.watched))
	for _, r := range m.watched {
		regions = append(regions, r)
	}
	return regions
}

// OnRegionEntered registers a handler for region-entered events.
func (m *DeviceMonitor) OnRegionEntered(fn func(RegionEntered)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enteredHandlers = append(m.enteredHandlers, fn)
}

// OnMonitoringFailed registers a handler for monitoring-failure events.
func (m *DeviceMonitor) OnMonitoringFailed(fn func(MonitoringFailed)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failedHandlers = append(m.failedHandlers, fn)
}

// ReportEntered delivers a region-entered event from the client. The event is
// forwarded as-is; staleness against the store is the notifier's concern.
func (m *DeviceMonitor) ReportEntered(regionID string) {
	m.mu.Lock()
	handlers := append([]func(RegionEntered){}, m.enteredHandlers...)
	m.mu.Unlock()

	ev := RegionEntered{RegionID: regionID}
	for _, fn := range handlers {
		fn(ev)
	}
}

// ReportFailed delivers a monitoring-failure event from the client.
func (m *DeviceMonitor) ReportFailed(regionID string, err error) {
	m.mu.Lock()
	handlers := append([]func(MonitoringFailed){}, m.failedHandlers...)
	m.mu.Unlock()

	ev := MonitoringFailed{RegionID: regionID, Err: err}
	for _, fn := range handlers {
		fn(ev)
	}
}
