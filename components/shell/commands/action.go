package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dashboard-shell/components/shell"
)

// PanelActionInput addresses an action to the panel of a section.
type PanelActionInput struct {
	Section string         `json:"section"`
	Name    string         `json:"name"`
	Params  map[string]any `json:"params,omitempty"`
}

type actionService interface {
	Dispatch(ctx context.Context, section string, action shell.Action) error
}

// PanelActionCommand routes user intents to panels, exports included.
type PanelActionCommand struct {
	service actionService
	opts    Options
}

// NewPanelActionCommand creates the command.
func NewPanelActionCommand(service actionService, opts Options) *PanelActionCommand {
	return &PanelActionCommand{service: service, opts: opts.normalize()}
}

var _ gocommand.Commander[PanelActionInput] = (*PanelActionCommand)(nil)

// Execute validates the action and dispatches it.
func (c *PanelActionCommand) Execute(ctx context.Context, msg PanelActionInput) error {
	if c.service == nil {
		return errors.New("panel action command requires shell")
	}
	if err := c.opts.Validator.Validate(shell.SchemaPanelAction, msg); err != nil {
		return invalid(err)
	}
	err := c.service.Dispatch(ctx, msg.Section, shell.Action{Name: msg.Name, Params: msg.Params})
	payload := map[string]any{
		"section": msg.Section,
		"action":  msg.Name,
	}
	if err != nil {
		payload["level"] = "error"
		payload["error"] = err.Error()
		c.opts.Telemetry.Record(ctx, "shell.command.action_failed", payload)
		return err
	}
	c.opts.Telemetry.Record(ctx, "shell.command.action", payload)
	return nil
}
