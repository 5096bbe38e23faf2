package shell

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Channels groups the shared UI state handed to every panel. Panels reach
// notifications, the modal slot and the theme through it, never through
// each other.
type Channels struct {
	Notifications *NotificationChannel
	Modal         *ModalChannel
	Theme         *ThemeChannel
}

// ChannelOptions configures NewChannels. Publisher and Telemetry are copied
// into the per-channel options that leave them unset.
type ChannelOptions struct {
	Notifications NotificationOptions
	Modal         ModalOptions
	Theme         ThemeOptions
	Publisher     Publisher
	Telemetry     Telemetry
}

// NewChannels builds the three shared channels.
func NewChannels(ctx context.Context, opts ChannelOptions) Channels {
	if opts.Notifications.Publisher == nil {
		opts.Notifications.Publisher = opts.Publisher
	}
	if opts.Notifications.Telemetry == nil {
		opts.Notifications.Telemetry = opts.Telemetry
	}
	if opts.Modal.Publisher == nil {
		opts.Modal.Publisher = opts.Publisher
	}
	if opts.Modal.Telemetry == nil {
		opts.Modal.Telemetry = opts.Telemetry
	}
	if opts.Theme.Publisher == nil {
		opts.Theme.Publisher = opts.Publisher
	}
	if opts.Theme.Telemetry == nil {
		opts.Theme.Telemetry = opts.Telemetry
	}
	return Channels{
		Notifications: NewNotificationChannel(opts.Notifications),
		Modal:         NewModalChannel(opts.Modal),
		Theme:         NewThemeChannel(ctx, opts.Theme),
	}
}

func (c Channels) validate() error {
	if c.Notifications == nil || c.Modal == nil || c.Theme == nil {
		return errors.New("shell: notification, modal and theme channels are required")
	}
	return nil
}

// Options configures a Shell.
type Options struct {
	Channels  Channels
	Panels    map[SectionID]Panel
	Catalog   *Catalog
	Publisher Publisher
	Telemetry Telemetry
}

// Shell composes the sidebar, the header, the switchboard and the overlays.
type Shell struct {
	channels    Channels
	switchboard *Switchboard
	catalog     Catalog
	telemetry   Telemetry

	mu         sync.RWMutex
	lastSearch string
}

// New builds a Shell. Every known section must have a panel.
func New(opts Options) (*Shell, error) {
	if err := opts.Channels.validate(); err != nil {
		return nil, err
	}
	telemetry := normalizeTelemetry(opts.Telemetry)
	switchboard, err := NewSwitchboard(opts.Panels,
		WithSwitchboardTelemetry(telemetry),
		WithSwitchboardPublisher(opts.Publisher),
	)
	if err != nil {
		return nil, err
	}
	var catalog Catalog
	if opts.Catalog != nil {
		catalog = *opts.Catalog
	} else {
		catalog, err = DefaultCatalog()
		if err != nil {
			return nil, err
		}
	}
	return &Shell{
		channels:    opts.Channels,
		switchboard: switchboard,
		catalog:     catalog,
		telemetry:   telemetry,
	}, nil
}

// Channels returns the shared channels.
func (s *Shell) Channels() Channels {
	return s.channels
}

// Catalog returns the section metadata.
func (s *Shell) Catalog() Catalog {
	return s.catalog
}

// Start mounts the default panel.
func (s *Shell) Start(ctx context.Context) error {
	return s.switchboard.Start(ctx)
}

// Close unmounts the active panel and stops notification timers.
func (s *Shell) Close(ctx context.Context) error {
	err := s.switchboard.Close(ctx)
	s.channels.Notifications.Close()
	return err
}

// Active returns the current section.
func (s *Shell) Active() SectionID {
	return s.switchboard.Active()
}

// SetActiveSection switches panels; unknown ids select the default section.
func (s *Shell) SetActiveSection(ctx context.Context, id string) SectionID {
	return s.switchboard.SetActiveSection(ctx, id)
}

// Dispatch routes a panel action.
func (s *Shell) Dispatch(ctx context.Context, section string, action Action) error {
	return s.switchboard.Dispatch(ctx, section, action)
}

// Search records the header search and announces it. Blank queries are ignored.
func (s *Shell) Search(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	s.mu.Lock()
	s.lastSearch = query
	s.mu.Unlock()
	s.channels.Notifications.Show(ctx, KindInfo, "Search", "Searching for: "+query)
}

// Layout renders the active panel and composes the full shell state.
func (s *Shell) Layout(ctx context.Context, viewer ViewerContext) (Layout, error) {
	active := s.switchboard.Active()
	section := s.catalog.Section(active)
	theme := s.channels.Theme.Selection()
	dark := s.channels.Theme.IsDarkMode()

	rendered, data, err := s.switchboard.Render(ctx, View{
		Section:  section,
		Viewer:   viewer,
		DarkMode: dark,
		Theme:    theme,
	})
	if err != nil {
		return Layout{}, err
	}
	if rendered != active {
		section = s.catalog.Section(rendered)
	}

	sidebar := make([]NavItem, 0, len(knownSections))
	for _, entry := range s.catalog.All() {
		sidebar = append(sidebar, NavItem{
			ID:     entry.ID,
			Label:  entry.LabelForLocale(viewer.Locale),
			Icon:   entry.Icon,
			Active: entry.ID == rendered,
		})
	}

	notifications := s.channels.Notifications.List()
	s.mu.RLock()
	search := s.lastSearch
	s.mu.RUnlock()

	return Layout{
		Active:  rendered,
		Section: section,
		Sidebar: sidebar,
		Header: HeaderState{
			Title:             section.LabelForLocale(viewer.Locale),
			DarkMode:          dark,
			NotificationCount: len(notifications),
			Search:            search,
		},
		Panel:         data,
		Notifications: notifications,
		Modal:         s.channels.Modal.Current(),
		Theme:         newThemeView(theme),
	}, nil
}
