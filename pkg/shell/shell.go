// Package shell assembles the dashboard shell from configuration: channels,
// panels, export pipeline, commands, queries and transports.
package shell

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/panels"
	core "github.com/goliatone/go-dashboard-shell/components/shell"
	"github.com/goliatone/go-dashboard-shell/components/shell/commands"
	"github.com/goliatone/go-dashboard-shell/components/shell/httpapi"
	"github.com/goliatone/go-dashboard-shell/components/shell/queries"
	"github.com/goliatone/go-dashboard-shell/pkg/config"
	"github.com/goliatone/go-dashboard-shell/pkg/logger"
)

// Options configures New.
type Options struct {
	Config *config.Config
	// Logger receives telemetry. Nil discards it.
	Logger *logger.Logger
	// Store overrides the seeded business data.
	Store *panels.Store
}

// App is a fully wired shell.
type App struct {
	Config     *config.Config
	Logger     *logger.Logger
	Broadcast  *core.Broadcast
	Channels   core.Channels
	Store      *panels.Store
	Exporter   *export.Pipeline
	Downloads  *export.DownloadStore
	Shell      *core.Shell
	Controller *core.Controller
	API        httpapi.Executor
	Layout     *queries.LayoutQuery
	Download   *queries.DownloadQuery

	drift *core.Task
}

// New wires every component. Call Start before serving.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("shell: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	catalog, err := loadCatalog(cfg.Sections.ManifestPath)
	if err != nil {
		return nil, err
	}

	broadcast := core.NewBroadcast()
	var themeStore core.ThemeStore
	if cfg.Theme.StorePath != "" {
		themeStore = core.NewFileThemeStore(cfg.Theme.StorePath)
	}
	channels := core.NewChannels(ctx, core.ChannelOptions{
		Notifications: core.NotificationOptions{
			Timeout:  cfg.Notifications.Timeout,
			Capacity: cfg.Notifications.Capacity,
		},
		Theme:     core.ThemeOptions{DarkMode: cfg.Theme.DarkMode, Store: themeStore},
		Publisher: broadcast,
		Telemetry: log,
	})

	base := strings.TrimRight(cfg.Server.BasePath, "/")
	downloads := export.NewDownloadStore(cfg.Export.DownloadTTL,
		export.WithDownloadBasePath(base+"/shell/downloads"))
	printRenderer, err := export.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("shell: print templates: %w", err)
	}
	exporter := export.NewPipeline(export.Options{
		Delivery:  downloads,
		Printer:   export.NewHTMLPrinter(printRenderer, downloads),
		Telemetry: log,
	})

	var chartOpts []panels.ChartsOption
	if cfg.Charts.AssetsHost != "" {
		chartOpts = append(chartOpts, panels.WithChartAssetsHost(cfg.Charts.AssetsHost))
	}
	store := opts.Store
	if store == nil {
		store = panels.NewStore(panels.StoreOptions{})
	}
	sections, err := panels.Build(panels.Deps{
		Store:            store,
		Channels:         channels,
		Exporter:         exporter,
		Charts:           panels.NewCharts(chartOpts...),
		Publisher:        broadcast,
		Telemetry:        log,
		RealtimeInterval: cfg.Realtime.Interval,
	})
	if err != nil {
		return nil, err
	}

	sh, err := core.New(core.Options{
		Channels:  channels,
		Panels:    sections,
		Catalog:   &catalog,
		Publisher: broadcast,
		Telemetry: log,
	})
	if err != nil {
		return nil, err
	}

	pageRenderer, err := core.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("shell: page templates: %w", err)
	}

	cmdOpts := commands.Options{Telemetry: log, Validator: core.NewJSONSchemaValidator(nil)}
	api := httpapi.NewExecutor(httpapi.Commands{
		Section: commands.NewSetSectionCommand(sh, cmdOpts),
		Search:  commands.NewSearchCommand(sh, cmdOpts),
		Notify:  commands.NewShowNotificationCommand(channels.Notifications, cmdOpts),
		Remove:  commands.NewRemoveNotificationCommand(channels.Notifications, cmdOpts),
		Press:   commands.NewPressModalCommand(channels.Modal, cmdOpts),
		Dismiss: commands.NewDismissModalCommand(channels.Modal, cmdOpts),
		Theme:   commands.NewToggleThemeCommand(channels.Theme, cmdOpts),
		Action:  commands.NewPanelActionCommand(sh, cmdOpts),
	})

	return &App{
		Config:     cfg,
		Logger:     log,
		Broadcast:  broadcast,
		Channels:   channels,
		Store:      store,
		Exporter:   exporter,
		Downloads:  downloads,
		Shell:      sh,
		Controller: core.NewController(core.ControllerOptions{Shell: sh, Renderer: pageRenderer}),
		API:        api,
		Layout:     queries.NewLayoutQuery(sh),
		Download:   queries.NewDownloadQuery(downloads),
	}, nil
}

func loadCatalog(path string) (core.Catalog, error) {
	base, err := core.DefaultManifest()
	if err != nil {
		return core.Catalog{}, err
	}
	if path == "" {
		return core.NewCatalog(base), nil
	}
	overlay, err := core.ReadManifest(path)
	if err != nil {
		return core.Catalog{}, err
	}
	return core.NewCatalog(base, overlay), nil
}

// Start mounts the default panel and starts the realtime counter drift.
func (a *App) Start(ctx context.Context) error {
	if err := a.Shell.Start(ctx); err != nil {
		return err
	}
	a.drift = a.Store.StartDrift(ctx, a.Config.Realtime.DriftInterval)
	a.Logger.Info("shell", "shell started", map[string]any{
		"section":   string(a.Shell.Active()),
		"base_path": a.Config.Server.BasePath,
	})
	return nil
}

// Close stops background work and unmounts the active panel.
func (a *App) Close(ctx context.Context) error {
	a.drift.Stop()
	return a.Shell.Close(ctx)
}

// Handlers exposes the shell over net/http.
func (a *App) Handlers() *httpapi.Handlers {
	return &httpapi.Handlers{
		API:       a.API,
		Page:      a.Controller,
		Layout:    a.Layout,
		Downloads: a.Download,
		Broadcast: a.Broadcast,
	}
}

// Handler mounts every route under the configured base path.
func (a *App) Handler() http.Handler {
	return a.Handlers().Routes(a.Config.Server.BasePath)
}
