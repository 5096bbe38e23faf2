package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/panels"
	"github.com/goliatone/go-dashboard-shell/components/shell/gorouter"
	"github.com/goliatone/go-dashboard-shell/pkg/config"
	"github.com/goliatone/go-dashboard-shell/pkg/logger"
	"github.com/goliatone/go-dashboard-shell/pkg/shell"
)

const shutdownTimeout = 5 * time.Second

var (
	ok   = color.New(color.FgGreen).SprintFunc()
	warn = color.New(color.FgYellow).SprintFunc()
	info = color.New(color.FgCyan).SprintFunc()
)

type globals struct {
	Config string `short:"c" type:"path" help:"Optional YAML configuration file."`
	Env    string `default:".env" help:"Optional .env file loaded before DASHBOARD_* overrides."`
}

func (g *globals) load() (*config.Config, error) {
	return config.Load(config.Options{EnvFile: g.Env, Path: g.Config})
}

type cli struct {
	Globals globals `embed:""`

	Serve    serveCmd    `cmd:"" help:"Serve the dashboard shell over HTTP."`
	Export   exportCmd   `cmd:"" help:"Export a dataset to a directory."`
	Datasets datasetsCmd `cmd:"" help:"List exportable datasets."`
}

func main() {
	base, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app cli
	ctx := kong.Parse(&app,
		kong.Name("shellctl"),
		kong.Description("Admin dashboard shell server and export utility."),
		kong.UsageOnError(),
		kong.BindTo(base, (*context.Context)(nil)),
	)
	err := ctx.Run(&app.Globals)
	ctx.FatalIfErrorf(err)
}

type serveCmd struct {
	Addr string `help:"Listen address; overrides the configured one."`
}

func (cmd *serveCmd) Run(ctx context.Context, g *globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.Server.Address = cmd.Addr
	}
	log, err := logger.New(logger.Options{
		Level: cfg.Logging.Level,
		File:  cfg.Logging.File,
		JSON:  cfg.Logging.JSON,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	app, err := shell.New(ctx, shell.Options{Config: cfg, Logger: log})
	if err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := app.Close(context.WithoutCancel(ctx)); err != nil {
			log.Warn("shellctl", "shell close failed", map[string]any{"error": err.Error()})
		}
	}()

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: app.Controller,
		API:        app.API,
		Downloads:  app.Download,
		Broadcast:  app.Broadcast,
		BasePath:   cfg.Server.BasePath,
	}); err != nil {
		return fmt.Errorf("shellctl: register routes: %w", err)
	}

	base := strings.TrimRight(cfg.Server.BasePath, "/")
	fmt.Fprintf(os.Stdout, "%s shell ready on %s%s/shell\n", ok("✓"), info(cfg.Server.Address), base)
	fmt.Fprintf(os.Stdout, "  state %s/shell/_state, events %s/shell/ws\n", base, base)

	errc := make(chan error, 1)
	go func() { errc <- server.Serve(cfg.Server.Address) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	fmt.Fprintf(os.Stdout, "%s shutting down\n", warn("!"))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

type exportCmd struct {
	Tag    string `arg:"" help:"Dataset tag (see 'shellctl datasets')."`
	Format string `short:"f" default:"csv" enum:"csv,json,pdf" help:"Output format."`
	Out    string `short:"o" type:"path" help:"Output directory; defaults to the configured export dir."`
}

func (cmd *exportCmd) Run(ctx context.Context, g *globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	dir := cmd.Out
	if dir == "" {
		dir = cfg.Export.Dir
	}
	format, err := export.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}
	dataset, err := panels.LookupDataset(nil, cmd.Tag)
	if err != nil {
		return err
	}

	delivery := export.DirDelivery{Dir: dir}
	renderer, err := export.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("shellctl: print templates: %w", err)
	}
	pipeline := export.NewPipeline(export.Options{
		Delivery: delivery,
		Printer:  export.NewHTMLPrinter(renderer, delivery),
	})
	receipt, err := pipeline.Export(ctx, export.Request{
		Tag:      dataset.Tag,
		Format:   format,
		Filename: dataset.Filename,
		Title:    dataset.Title,
		Records:  dataset.Records,
	})
	if export.IsNoData(err) {
		fmt.Fprintf(os.Stdout, "%s %s has no rows to export\n", warn("!"), cmd.Tag)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s exported %s (%d bytes) to %s\n", ok("✓"), cmd.Tag, receipt.Size, info(receipt.Location))
	return nil
}

type datasetsCmd struct{}

func (datasetsCmd) Run() error {
	tags := panels.DatasetTags()
	if len(tags) == 0 {
		return errors.New("shellctl: no datasets registered")
	}
	for _, tag := range tags {
		dataset, err := panels.LookupDataset(nil, tag)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%-24s %s (%d rows)\n", info(tag), dataset.Title, len(dataset.Records))
	}
	return nil
}
