package shell

import (
	"context"
	"fmt"
	"sync"
)

type lifecycleLog struct {
	mu     sync.Mutex
	events []string
}

func (l *lifecycleLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *lifecycleLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

type testPanel struct {
	id      SectionID
	log     *lifecycleLog
	actions []Action
}

func (p *testPanel) Render(_ context.Context, view View) (PanelData, error) {
	return PanelData{"title": string(p.id), "dark": view.DarkMode}, nil
}

func (p *testPanel) Mount(context.Context) error {
	p.log.add("mount:" + string(p.id))
	return nil
}

func (p *testPanel) Unmount(context.Context) error {
	p.log.add("unmount:" + string(p.id))
	return nil
}

func (p *testPanel) HandleAction(_ context.Context, action Action) error {
	if action.Name == "fail" {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action.Name)
	}
	p.actions = append(p.actions, action)
	return nil
}

func newTestPanels(log *lifecycleLog) map[SectionID]Panel {
	panels := make(map[SectionID]Panel, len(knownSections))
	for _, id := range knownSections {
		panels[id] = &testPanel{id: id, log: log}
	}
	return panels
}

type recordedEvent struct {
	name    string
	payload map[string]any
}

type stubTelemetry struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (s *stubTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, recordedEvent{name: event, payload: payload})
}

func (s *stubTelemetry) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.name)
	}
	return out
}

type eventSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *eventSink) Publish(_ context.Context, event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *eventSink) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Type)
	}
	return out
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
