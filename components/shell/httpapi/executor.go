package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dashboard-shell/components/shell/commands"
)

var errMissingCommand = errors.New("httpapi: command not configured")

// Executor is the write side of the shell as seen by transports.
type Executor interface {
	SetSection(ctx context.Context, input commands.SetSectionInput) error
	Search(ctx context.Context, input commands.SearchInput) error
	ShowNotification(ctx context.Context, input commands.ShowNotificationInput) (commands.ShowNotificationResult, error)
	RemoveNotification(ctx context.Context, input commands.RemoveNotificationInput) error
	PressModal(ctx context.Context, input commands.PressModalInput) error
	DismissModal(ctx context.Context, input commands.DismissModalInput) error
	ToggleTheme(ctx context.Context) error
	PanelAction(ctx context.Context, input commands.PanelActionInput) error
}

// NotificationShower queues a notification and reports its id.
type NotificationShower interface {
	Show(ctx context.Context, msg commands.ShowNotificationInput) (commands.ShowNotificationResult, error)
}

// Commands groups the commanders an Executor delegates to. Nil entries
// make the matching call fail.
type Commands struct {
	Section gocommand.Commander[commands.SetSectionInput]
	Search  gocommand.Commander[commands.SearchInput]
	Notify  NotificationShower
	Remove  gocommand.Commander[commands.RemoveNotificationInput]
	Press   gocommand.Commander[commands.PressModalInput]
	Dismiss gocommand.Commander[commands.DismissModalInput]
	Theme   gocommand.Commander[commands.ToggleThemeInput]
	Action  gocommand.Commander[commands.PanelActionInput]
}

// NewExecutor wraps cmds as an Executor.
func NewExecutor(cmds Commands) Executor {
	return commandExecutor{cmds: cmds}
}

type commandExecutor struct {
	cmds Commands
}

func run[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return errMissingCommand
	}
	return cmd.Execute(ctx, msg)
}

func (e commandExecutor) SetSection(ctx context.Context, input commands.SetSectionInput) error {
	return run(ctx, e.cmds.Section, input)
}

func (e commandExecutor) Search(ctx context.Context, input commands.SearchInput) error {
	return run(ctx, e.cmds.Search, input)
}

func (e commandExecutor) ShowNotification(ctx context.Context, input commands.ShowNotificationInput) (commands.ShowNotificationResult, error) {
	if e.cmds.Notify == nil {
		return commands.ShowNotificationResult{}, errMissingCommand
	}
	return e.cmds.Notify.Show(ctx, input)
}

func (e commandExecutor) RemoveNotification(ctx context.Context, input commands.RemoveNotificationInput) error {
	return run(ctx, e.cmds.Remove, input)
}

func (e commandExecutor) PressModal(ctx context.Context, input commands.PressModalInput) error {
	return run(ctx, e.cmds.Press, input)
}

func (e commandExecutor) DismissModal(ctx context.Context, input commands.DismissModalInput) error {
	return run(ctx, e.cmds.Dismiss, input)
}

func (e commandExecutor) ToggleTheme(ctx context.Context) error {
	return run(ctx, e.cmds.Theme, commands.ToggleThemeInput{})
}

func (e commandExecutor) PanelAction(ctx context.Context, input commands.PanelActionInput) error {
	return run(ctx, e.cmds.Action, input)
}
