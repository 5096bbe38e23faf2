package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dashboard-shell/components/shell"
)

// PressModalInput is a button press on the open modal. Values carries the
// form fields of the modal, if any.
type PressModalInput struct {
	ModalID string         `json:"modal_id"`
	Button  string         `json:"button"`
	Values  map[string]any `json:"values,omitempty"`
}

// DismissModalInput closes a modal without confirming.
type DismissModalInput struct {
	ModalID string `json:"modal_id"`
}

type modalService interface {
	Press(ctx context.Context, modalID, button string, values map[string]any) error
	Dismiss(ctx context.Context, modalID string)
}

// PressModalCommand forwards a button press to the modal slot.
type PressModalCommand struct {
	service modalService
	opts    Options
}

// NewPressModalCommand creates the command.
func NewPressModalCommand(service modalService, opts Options) *PressModalCommand {
	return &PressModalCommand{service: service, opts: opts.normalize()}
}

var _ gocommand.Commander[PressModalInput] = (*PressModalCommand)(nil)

// Execute validates the press and runs the confirm callback when it applies.
func (c *PressModalCommand) Execute(ctx context.Context, msg PressModalInput) error {
	if c.service == nil {
		return errors.New("modal command requires channel")
	}
	if err := c.opts.Validator.Validate(shell.SchemaModalPress, msg); err != nil {
		return invalid(err)
	}
	if err := c.service.Press(ctx, msg.ModalID, msg.Button, msg.Values); err != nil {
		return err
	}
	c.opts.Telemetry.Record(ctx, "shell.command.modal_press", map[string]any{
		"modal_id": msg.ModalID,
		"button":   msg.Button,
	})
	return nil
}

// DismissModalCommand closes the modal from the backdrop.
type DismissModalCommand struct {
	service modalService
	opts    Options
}

// NewDismissModalCommand creates the command.
func NewDismissModalCommand(service modalService, opts Options) *DismissModalCommand {
	return &DismissModalCommand{service: service, opts: opts.normalize()}
}

var _ gocommand.Commander[DismissModalInput] = (*DismissModalCommand)(nil)

// Execute dismisses the modal. An empty id closes whatever is open.
func (c *DismissModalCommand) Execute(ctx context.Context, msg DismissModalInput) error {
	if c.service == nil {
		return errors.New("modal command requires channel")
	}
	c.service.Dismiss(ctx, msg.ModalID)
	c.opts.Telemetry.Record(ctx, "shell.command.modal_dismiss", map[string]any{"modal_id": msg.ModalID})
	return nil
}
