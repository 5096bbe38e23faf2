package httpapi

import (
	"context"
	"testing"

	"github.com/goliatone/go-dashboard-shell/components/shell/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(_ context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

type stubShower struct {
	calls int
}

func (s *stubShower) Show(context.Context, commands.ShowNotificationInput) (commands.ShowNotificationResult, error) {
	s.calls++
	return commands.ShowNotificationResult{ID: "x"}, nil
}

func TestExecutorDelegates(t *testing.T) {
	section := &stubCommander[commands.SetSectionInput]{}
	action := &stubCommander[commands.PanelActionInput]{}
	theme := &stubCommander[commands.ToggleThemeInput]{}
	shower := &stubShower{}
	exec := NewExecutor(Commands{Section: section, Action: action, Theme: theme, Notify: shower})
	ctx := context.Background()

	require.NoError(t, exec.SetSection(ctx, commands.SetSectionInput{Section: "crm"}))
	require.NoError(t, exec.PanelAction(ctx, commands.PanelActionInput{Section: "crm", Name: "tab"}))
	require.NoError(t, exec.ToggleTheme(ctx))
	result, err := exec.ShowNotification(ctx, commands.ShowNotificationInput{Kind: "info", Title: "t"})
	require.NoError(t, err)

	assert.Equal(t, "crm", section.last.Section)
	assert.Equal(t, "tab", action.last.Name)
	assert.Equal(t, 1, theme.calls)
	assert.Equal(t, "x", result.ID)
}

func TestExecutorMissingCommand(t *testing.T) {
	exec := NewExecutor(Commands{})
	ctx := context.Background()
	assert.ErrorIs(t, exec.Search(ctx, commands.SearchInput{Query: "q"}), errMissingCommand)
	_, err := exec.ShowNotification(ctx, commands.ShowNotificationInput{})
	assert.ErrorIs(t, err, errMissingCommand)
}
