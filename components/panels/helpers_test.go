package panels

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/shell"
)

type recordingDelivery struct {
	mu    sync.Mutex
	files []export.File
	err   error
}

func (d *recordingDelivery) Deliver(_ context.Context, file export.File) (export.Receipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return export.Receipt{}, d.err
	}
	d.files = append(d.files, file)
	return export.Receipt{Filename: file.Name, Size: len(file.Data)}, nil
}

func (d *recordingDelivery) names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.files))
	for i, f := range d.files {
		out[i] = f.Name
	}
	return out
}

type eventSink struct {
	mu     sync.Mutex
	events []shell.Event
}

func (s *eventSink) Publish(_ context.Context, event shell.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *eventSink) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, e := range s.events {
		out[i] = e.Type
	}
	return out
}

type stubTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

type fixture struct {
	deps      Deps
	delivery  *recordingDelivery
	events    *eventSink
	telemetry *stubTelemetry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	events := &eventSink{}
	telemetry := &stubTelemetry{}
	delivery := &recordingDelivery{}
	channels := shell.NewChannels(ctx, shell.ChannelOptions{
		Notifications: shell.NotificationOptions{Timeout: -1, Capacity: -1},
		Publisher:     events,
	})
	t.Cleanup(channels.Notifications.Close)

	deps, err := Deps{
		Store: NewStore(StoreOptions{
			Now:  func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) },
			Rand: rand.New(rand.NewSource(7)),
		}),
		Channels:         channels,
		Exporter:         export.NewPipeline(export.Options{Delivery: delivery}),
		Publisher:        events,
		Telemetry:        telemetry,
		RealtimeInterval: 5 * time.Millisecond,
	}.normalize()
	if err != nil {
		t.Fatalf("normalize deps: %v", err)
	}
	return &fixture{deps: deps, delivery: delivery, events: events, telemetry: telemetry}
}

func (f *fixture) titles() []string {
	notes := f.deps.Channels.Notifications.List()
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func (f *fixture) lastNotification(t *testing.T) shell.Notification {
	t.Helper()
	notes := f.deps.Channels.Notifications.List()
	if len(notes) == 0 {
		t.Fatalf("expected a notification")
	}
	return notes[len(notes)-1]
}

func action(name string, params map[string]any) shell.Action {
	return shell.Action{Name: name, Params: params}
}

func defaultView() shell.View {
	return shell.View{Theme: shell.DefaultLightTheme()}
}
