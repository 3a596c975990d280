// Package notify implements the notification-delivery capability as an outbox
// the mobile client drains.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Notification is one user-facing alert queued for delivery.
type Notification struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	Payload string    `json:"payload,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}

// Dispatcher queues notifications for the client and reports taps back to
// registered handlers. Payloads are remembered past delivery so a tap on an
// already-drained notification still resolves.
type Dispatcher struct {
	mu          sync.Mutex
	outbox      []Notification
	payloads    map[string]string
	tapHandlers []func(notificationID, payload string)

	logger zerolog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		payloads: make(map[string]string),
		logger:   logger,
	}
}

// Send queues a notification for delivery.
func (d *Dispatcher) Send(id, title, body, payload string) error {
	if id == "" {
		return fmt.Errorf("notify: notification id cannot be empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.outbox = append(d.outbox, Notification{
		ID:      id,
		Title:   title,
		Body:    body,
		Payload: payload,
		SentAt:  time.Now().UTC(),
	})
	d.payloads[id] = payload

	d.logger.Debug().Str("notification_id", id).Msg("notification queued")
	return nil
}

// Drain returns all queued notifications and empties the outbox.
func (d *Dispatcher) Drain() []Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := d.outbox
	d.outbox = nil
	return out
}

// OnTap registers a handler invoked when the user taps a notification.
func (d *Dispatcher) OnTap(fn func(notificationID, payload string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tapHandlers = append(d.tapHandlers, fn)
}

// Tap reports that the user acted on a notification. Unknown ids are an error.
func (d *Dispatcher) Tap(notificationID string) error {
	d.mu.Lock()
	payload, ok := d.payloads[notificationID]
	handlers := append([]func(string, string){}, d.tapHandlers...)
	d.mu.Unlock()

	if !ok {
		return fmt.Errorf("notify: unknown notification %q", notificationID)
	}

	for _, fn := range handlers {
		fn(notificationID, payload)
	}
	return nil
}
