package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var errMissingPanels = errors.New("shell: sections without panel")

// Switchboard maps section identifiers onto panels and keeps exactly one of
// them active. The table is fixed at construction.
type Switchboard struct {
	mu        sync.Mutex
	panels    map[SectionID]Panel
	active    SectionID
	mounted   bool
	telemetry Telemetry
	publisher Publisher
}

// SwitchboardOption customizes a Switchboard.
type SwitchboardOption func(*Switchboard)

// WithSwitchboardTelemetry records section changes.
func WithSwitchboardTelemetry(t Telemetry) SwitchboardOption {
	return func(s *Switchboard) {
		s.telemetry = normalizeTelemetry(t)
	}
}

// WithSwitchboardPublisher publishes section change events.
func WithSwitchboardPublisher(p Publisher) SwitchboardOption {
	return func(s *Switchboard) {
		s.publisher = normalizePublisher(p)
	}
}

// NewSwitchboard validates that every known section has a panel and that no
// unknown section is mapped.
func NewSwitchboard(panels map[SectionID]Panel, opts ...SwitchboardOption) (*Switchboard, error) {
	var missing []string
	table := make(map[SectionID]Panel, len(knownSections))
	for _, id := range knownSections {
		panel := panels[id]
		if panel == nil {
			missing = append(missing, string(id))
			continue
		}
		table[id] = panel
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", errMissingPanels, strings.Join(missing, ", "))
	}
	for id := range panels {
		if _, ok := knownSectionSet[id]; !ok {
			return nil, fmt.Errorf("shell: panel registered for unknown section %q", id)
		}
	}
	sb := &Switchboard{
		panels:    table,
		active:    DefaultSection,
		telemetry: noopTelemetry{},
		publisher: noopPublisher{},
	}
	for _, opt := range opts {
		opt(sb)
	}
	return sb, nil
}

// Active returns the current section.
func (s *Switchboard) Active() SectionID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Panel returns the panel mapped to id, or the default panel for unknown ids.
func (s *Switchboard) Panel(id SectionID) Panel {
	if panel, ok := s.panels[id]; ok {
		return panel
	}
	return s.panels[DefaultSection]
}

// Start mounts the active panel if nothing is mounted yet.
func (s *Switchboard) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted {
		return nil
	}
	s.mounted = true
	return s.mount(ctx, s.active)
}

// Close unmounts the active panel.
func (s *Switchboard) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return nil
	}
	s.mounted = false
	return s.unmount(ctx, s.active)
}

// SetActiveSection selects the panel for id. Unrecognized identifiers select
// the default section. The previous panel is unmounted before the next one
// is mounted; panel lifecycle failures are recorded, never returned.
func (s *Switchboard) SetActiveSection(ctx context.Context, id string) SectionID {
	target := ResolveSection(id)

	s.mu.Lock()
	previous := s.active
	if previous == target && s.mounted {
		s.mu.Unlock()
		return target
	}
	if s.mounted {
		if err := s.unmount(ctx, previous); err != nil {
			s.telemetry.Record(ctx, "shell.panel.unmount_failed", map[string]any{
				"level":   "error",
				"section": string(previous),
				"error":   err.Error(),
			})
		}
	}
	s.active = target
	s.mounted = true
	if err := s.mount(ctx, target); err != nil {
		s.telemetry.Record(ctx, "shell.panel.mount_failed", map[string]any{
			"level":   "error",
			"section": string(target),
			"error":   err.Error(),
		})
	}
	s.mu.Unlock()

	s.telemetry.Record(ctx, "shell.section.changed", map[string]any{
		"requested": id,
		"from":      string(previous),
		"to":        string(target),
		"fallback":  string(target) != strings.TrimSpace(id),
	})
	event := newEvent(EventSectionChanged, map[string]any{"from": previous})
	event.Section = target
	s.publisher.Publish(ctx, event)
	return target
}

// Render renders the active panel.
func (s *Switchboard) Render(ctx context.Context, view View) (SectionID, PanelData, error) {
	s.mu.Lock()
	active := s.active
	panel := s.panels[active]
	s.mu.Unlock()

	data, err := panel.Render(ctx, view)
	if err != nil {
		return active, nil, fmt.Errorf("shell: render %s: %w", active, err)
	}
	return active, data, nil
}

// Dispatch routes an action to the panel of section, falling back to the
// default panel for unknown identifiers.
func (s *Switchboard) Dispatch(ctx context.Context, section string, action Action) error {
	target := ResolveSection(section)
	handler, ok := s.panels[target].(ActionHandler)
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrUnknownAction, action.Name, target)
	}
	if err := handler.HandleAction(ctx, action); err != nil {
		return err
	}
	s.telemetry.Record(ctx, "shell.panel.action", map[string]any{
		"section": string(target),
		"action":  action.Name,
	})
	return nil
}

func (s *Switchboard) mount(ctx context.Context, id SectionID) error {
	if m, ok := s.panels[id].(Mounter); ok {
		return m.Mount(ctx)
	}
	return nil
}

func (s *Switchboard) unmount(ctx context.Context, id SectionID) error {
	if m, ok := s.panels[id].(Mounter); ok {
		return m.Unmount(ctx)
	}
	return nil
}
