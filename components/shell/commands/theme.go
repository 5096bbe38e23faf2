package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ToggleThemeInput flips dark mode. It carries no fields.
type ToggleThemeInput struct{}

type themeService interface {
	Toggle(ctx context.Context) bool
}

// ToggleThemeCommand flips the shared theme flag.
type ToggleThemeCommand struct {
	service themeService
	opts    Options
}

// NewToggleThemeCommand creates the command.
func NewToggleThemeCommand(service themeService, opts Options) *ToggleThemeCommand {
	return &ToggleThemeCommand{service: service, opts: opts.normalize()}
}

var _ gocommand.Commander[ToggleThemeInput] = (*ToggleThemeCommand)(nil)

// Execute toggles the theme.
func (c *ToggleThemeCommand) Execute(ctx context.Context, _ ToggleThemeInput) error {
	if c.service == nil {
		return errors.New("theme command requires channel")
	}
	dark := c.service.Toggle(ctx)
	c.opts.Telemetry.Record(ctx, "shell.command.theme", map[string]any{"dark_mode": dark})
	return nil
}
