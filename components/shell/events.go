package shell

import (
	"context"
	"time"
)

// Event types published by the shell.
const (
	EventSectionChanged      = "section.changed"
	EventNotificationAdded   = "notification.added"
	EventNotificationRemoved = "notification.removed"
	EventModalOpened         = "modal.opened"
	EventModalClosed         = "modal.closed"
	EventThemeToggled        = "theme.toggled"
	EventPanelUpdated        = "panel.updated"
	EventExportReady         = "export.ready"
)

// Event describes a shell state change that transports might care about.
type Event struct {
	Type      string    `json:"type"`
	Section   SectionID `json:"section,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Telemetry records named shell events with a free-form payload.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// Publisher receives shell events.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// PublisherFunc adapts a function into a Publisher.
type PublisherFunc func(ctx context.Context, event Event)

// Publish calls f.
func (f PublisherFunc) Publish(ctx context.Context, event Event) {
	f(ctx, event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) {}

func normalizePublisher(p Publisher) Publisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func newEvent(kind string, payload any) Event {
	return Event{Type: kind, Payload: payload, Timestamp: time.Now()}
}
