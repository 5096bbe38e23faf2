package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-dashboard-shell/components/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTelemetry struct {
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.events = append(s.events, event)
}

type stubShell struct {
	section  string
	searches []string
	actions  []shell.Action
	err      error
}

func (s *stubShell) SetActiveSection(_ context.Context, id string) shell.SectionID {
	s.section = id
	return shell.ResolveSection(id)
}

func (s *stubShell) Search(_ context.Context, query string) {
	s.searches = append(s.searches, query)
}

func (s *stubShell) Dispatch(_ context.Context, section string, action shell.Action) error {
	s.section = section
	s.actions = append(s.actions, action)
	return s.err
}

type stubModal struct {
	pressed   []string
	dismissed []string
	err       error
}

func (s *stubModal) Press(_ context.Context, modalID, button string, _ map[string]any) error {
	s.pressed = append(s.pressed, modalID+":"+button)
	return s.err
}

func (s *stubModal) Dismiss(_ context.Context, modalID string) {
	s.dismissed = append(s.dismissed, modalID)
}

func validatingOptions(telemetry Telemetry) Options {
	return Options{Telemetry: telemetry, Validator: shell.NewJSONSchemaValidator(nil)}
}

func TestSetSectionCommand(t *testing.T) {
	service := &stubShell{}
	telemetry := &stubTelemetry{}
	cmd := NewSetSectionCommand(service, validatingOptions(telemetry))

	require.NoError(t, cmd.Execute(context.Background(), SetSectionInput{Section: "orders"}))
	assert.Equal(t, "orders", service.section)
	assert.Equal(t, []string{"shell.command.section"}, telemetry.events)
}

func TestSetSectionCommandRequiresService(t *testing.T) {
	cmd := NewSetSectionCommand(nil, Options{})
	if err := cmd.Execute(context.Background(), SetSectionInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestSearchCommandIgnoresBlankQueries(t *testing.T) {
	service := &stubShell{}
	cmd := NewSearchCommand(service, Options{})

	require.NoError(t, cmd.Execute(context.Background(), SearchInput{Query: "   "}))
	require.NoError(t, cmd.Execute(context.Background(), SearchInput{Query: " invoices "}))
	assert.Equal(t, []string{"invoices"}, service.searches)
}

func TestShowNotificationCommand(t *testing.T) {
	channel := shell.NewNotificationChannel(shell.NotificationOptions{Timeout: -1})
	t.Cleanup(channel.Close)
	cmd := NewShowNotificationCommand(channel, validatingOptions(nil))

	result, err := cmd.Show(context.Background(), ShowNotificationInput{Kind: "success", Title: "Saved"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)

	notes := channel.List()
	require.Len(t, notes, 1)
	assert.Equal(t, shell.KindSuccess, notes[0].Kind)
}

func TestShowNotificationCommandRejectsInvalidPayload(t *testing.T) {
	channel := shell.NewNotificationChannel(shell.NotificationOptions{Timeout: -1})
	t.Cleanup(channel.Close)
	cmd := NewShowNotificationCommand(channel, validatingOptions(nil))

	err := cmd.Execute(context.Background(), ShowNotificationInput{Kind: "fatal", Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidPayload)
	err = cmd.Execute(context.Background(), ShowNotificationInput{Kind: "info"})
	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.Equal(t, 0, channel.Len())
}

func TestRemoveNotificationCommand(t *testing.T) {
	channel := shell.NewNotificationChannel(shell.NotificationOptions{Timeout: -1})
	t.Cleanup(channel.Close)
	id := channel.Show(context.Background(), shell.KindInfo, "Hi", "")
	telemetry := &stubTelemetry{}
	cmd := NewRemoveNotificationCommand(channel, Options{Telemetry: telemetry})

	require.NoError(t, cmd.Execute(context.Background(), RemoveNotificationInput{ID: id}))
	assert.Equal(t, 0, channel.Len())

	// a second removal of the same id is ignored
	require.NoError(t, cmd.Execute(context.Background(), RemoveNotificationInput{ID: id}))
	require.NoError(t, cmd.Execute(context.Background(), RemoveNotificationInput{ID: "missing"}))
	assert.Len(t, telemetry.events, 3)

	assert.ErrorIs(t, cmd.Execute(context.Background(), RemoveNotificationInput{}), ErrInvalidPayload)
}

func TestPressModalCommand(t *testing.T) {
	modal := &stubModal{}
	cmd := NewPressModalCommand(modal, validatingOptions(nil))

	require.NoError(t, cmd.Execute(context.Background(), PressModalInput{ModalID: "m1", Button: "OK"}))
	assert.Equal(t, []string{"m1:OK"}, modal.pressed)

	err := cmd.Execute(context.Background(), PressModalInput{ModalID: "m1"})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestPressModalCommandPropagatesErrors(t *testing.T) {
	modal := &stubModal{err: errors.New("boom")}
	telemetry := &stubTelemetry{}
	cmd := NewPressModalCommand(modal, validatingOptions(telemetry))

	require.Error(t, cmd.Execute(context.Background(), PressModalInput{ModalID: "m1", Button: "OK"}))
	assert.Empty(t, telemetry.events)
}

func TestDismissModalCommand(t *testing.T) {
	modal := &stubModal{}
	cmd := NewDismissModalCommand(modal, Options{})
	require.NoError(t, cmd.Execute(context.Background(), DismissModalInput{ModalID: "m2"}))
	assert.Equal(t, []string{"m2"}, modal.dismissed)
}

func TestToggleThemeCommand(t *testing.T) {
	theme := shell.NewThemeChannel(context.Background(), shell.ThemeOptions{})
	telemetry := &stubTelemetry{}
	cmd := NewToggleThemeCommand(theme, Options{Telemetry: telemetry})

	require.NoError(t, cmd.Execute(context.Background(), ToggleThemeInput{}))
	assert.True(t, theme.IsDarkMode())
	assert.Equal(t, []string{"shell.command.theme"}, telemetry.events)
}

func TestPanelActionCommand(t *testing.T) {
	service := &stubShell{}
	cmd := NewPanelActionCommand(service, validatingOptions(nil))

	err := cmd.Execute(context.Background(), PanelActionInput{
		Section: "orders",
		Name:    "export",
		Params:  map[string]any{"format": "csv"},
	})
	require.NoError(t, err)
	require.Len(t, service.actions, 1)
	assert.Equal(t, "csv", service.actions[0].Param("format"))

	err = cmd.Execute(context.Background(), PanelActionInput{Section: "orders"})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestPanelActionCommandRecordsFailures(t *testing.T) {
	service := &stubShell{err: shell.ErrUnknownAction}
	telemetry := &stubTelemetry{}
	cmd := NewPanelActionCommand(service, Options{Telemetry: telemetry})

	err := cmd.Execute(context.Background(), PanelActionInput{Section: "orders", Name: "archive"})
	assert.ErrorIs(t, err, shell.ErrUnknownAction)
	assert.Equal(t, []string{"shell.command.action_failed"}, telemetry.events)
}
