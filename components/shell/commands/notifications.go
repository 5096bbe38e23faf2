package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dashboard-shell/components/shell"
)

// ShowNotificationInput pushes a toast from outside a panel.
type ShowNotificationInput struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
}

// ShowNotificationResult carries the id of the queued notification.
type ShowNotificationResult struct {
	ID string `json:"id"`
}

type notificationService interface {
	Show(ctx context.Context, kind shell.NotificationKind, title, message string) string
	Remove(ctx context.Context, id string) bool
}

// ShowNotificationCommand validates and queues a notification.
type ShowNotificationCommand struct {
	service notificationService
	opts    Options
}

// NewShowNotificationCommand creates the command.
func NewShowNotificationCommand(service notificationService, opts Options) *ShowNotificationCommand {
	return &ShowNotificationCommand{service: service, opts: opts.normalize()}
}

var _ gocommand.Commander[ShowNotificationInput] = (*ShowNotificationCommand)(nil)

// Execute queues the notification.
func (c *ShowNotificationCommand) Execute(ctx context.Context, msg ShowNotificationInput) error {
	_, err := c.Show(ctx, msg)
	return err
}

// Show queues the notification and returns its id.
func (c *ShowNotificationCommand) Show(ctx context.Context, msg ShowNotificationInput) (ShowNotificationResult, error) {
	if c.service == nil {
		return ShowNotificationResult{}, errors.New("notification command requires channel")
	}
	if err := c.opts.Validator.Validate(shell.SchemaNotification, msg); err != nil {
		return ShowNotificationResult{}, invalid(err)
	}
	id := c.service.Show(ctx, shell.ParseNotificationKind(msg.Kind), msg.Title, msg.Message)
	c.opts.Telemetry.Record(ctx, "shell.command.notify", map[string]any{
		"id":   id,
		"kind": msg.Kind,
	})
	return ShowNotificationResult{ID: id}, nil
}

// RemoveNotificationInput dismisses a toast.
type RemoveNotificationInput struct {
	ID string `json:"id"`
}

// RemoveNotificationCommand drops a queued notification.
type RemoveNotificationCommand struct {
	service notificationService
	opts    Options
}

// NewRemoveNotificationCommand creates the command.
func NewRemoveNotificationCommand(service notificationService, opts Options) *RemoveNotificationCommand {
	return &RemoveNotificationCommand{service: service, opts: opts.normalize()}
}

var _ gocommand.Commander[RemoveNotificationInput] = (*RemoveNotificationCommand)(nil)

// Execute removes the notification. Unknown or already expired ids are
// ignored.
func (c *RemoveNotificationCommand) Execute(ctx context.Context, msg RemoveNotificationInput) error {
	if c.service == nil {
		return errors.New("notification command requires channel")
	}
	if msg.ID == "" {
		return invalid(errors.New("notification id is required"))
	}
	removed := c.service.Remove(ctx, msg.ID)
	c.opts.Telemetry.Record(ctx, "shell.command.notification_removed", map[string]any{
		"id":      msg.ID,
		"removed": removed,
	})
	return nil
}
