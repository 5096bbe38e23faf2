package goadmin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	core "github.com/goliatone/go-dashboard-shell/components/shell"
)

// MenuBuilder ensures shell entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures shell link metadata.
type MenuItem struct {
	Code     string
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the section catalog and feature flags into a go-admin style host.
type Config struct {
	EnableShell bool
	MenuCode    string
	MenuBuilder MenuBuilder
	Catalog     *core.Catalog
	// BasePath is where the shell routes are mounted.
	BasePath string
	// Locale selects menu labels.
	Locale string
	// Sections limits the seeded entries; empty seeds every section.
	Sections []core.SectionID
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed shell menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableShell && cfg.Catalog == nil {
		return nil, errors.New("goadmin: section catalog is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "/admin"
	}
	return &Admin{cfg: cfg}, nil
}

// MenuItems returns the entries Bootstrap seeds, in sidebar order.
func (a *Admin) MenuItems() []MenuItem {
	if !a.cfg.EnableShell || a.cfg.Catalog == nil {
		return nil
	}
	wanted := make(map[core.SectionID]bool, len(a.cfg.Sections))
	for _, id := range a.cfg.Sections {
		wanted[id] = true
	}
	base := strings.TrimRight(a.cfg.BasePath, "/")
	var items []MenuItem
	for _, section := range a.cfg.Catalog.All() {
		if len(wanted) > 0 && !wanted[section.ID] {
			continue
		}
		items = append(items, MenuItem{
			Code:     "shell." + string(section.ID),
			Label:    section.LabelForLocale(a.cfg.Locale),
			Route:    base + "/shell?section=" + string(section.ID),
			Icon:     section.Icon,
			Position: len(items),
		})
	}
	return items
}

// Bootstrap seeds menu entries when shell support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableShell || a.cfg.MenuBuilder == nil {
		return nil
	}
	var errs []error
	for _, item := range a.MenuItems() {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			errs = append(errs, fmt.Errorf("goadmin: ensure %s: %w", item.Code, err))
		}
	}
	return errors.Join(errs...)
}
