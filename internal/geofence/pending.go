package geofence

import "sync"

// PendingPlace is a single-slot marker for the place the app should navigate to
// after the user taps an arrival notification. The slot is consumed exactly
// once: Take returns the value and clears it atomically.
type PendingPlace struct {
	mu      sync.Mutex
	placeID string
}

// Set records the place to display, overwriting any unconsumed value.
func (p *PendingPlace) Set(placeID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.placeID = placeID
}

// Take returns the pending place id and clears the slot. The second return
// value is false when the slot is empty.
func (p *PendingPlace) Take() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.placeID == "" {
		return "", false
	}
	id := p.placeID
	p.placeID = ""
	return id, true
}
