package shell

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSwitchboardRequiresEveryPanel(t *testing.T) {
	panels := newTestPanels(&lifecycleLog{})
	delete(panels, SectionHR)

	_, err := NewSwitchboard(panels)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingPanels))
	assert.Contains(t, err.Error(), string(SectionHR))
}

func TestNewSwitchboardRejectsUnknownSection(t *testing.T) {
	panels := newTestPanels(&lifecycleLog{})
	panels["bogus"] = &testPanel{id: "bogus", log: &lifecycleLog{}}

	_, err := NewSwitchboard(panels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestSwitchboardSetActiveSection(t *testing.T) {
	log := &lifecycleLog{}
	telemetry := &stubTelemetry{}
	sink := &eventSink{}
	sb, err := NewSwitchboard(newTestPanels(log),
		WithSwitchboardTelemetry(telemetry),
		WithSwitchboardPublisher(sink),
	)
	require.NoError(t, err)
	require.NoError(t, sb.Start(context.Background()))
	assert.Equal(t, DefaultSection, sb.Active())

	got := sb.SetActiveSection(context.Background(), string(SectionOrders))
	assert.Equal(t, SectionOrders, got)
	assert.Equal(t, SectionOrders, sb.Active())

	assert.Equal(t, []string{
		"mount:" + string(SectionDashboard),
		"unmount:" + string(SectionDashboard),
		"mount:" + string(SectionOrders),
	}, log.snapshot())
	assert.Contains(t, telemetry.names(), "shell.section.changed")
	assert.Equal(t, []string{EventSectionChanged}, sink.types())
}

func TestSwitchboardUnknownSectionFallsBackToDefault(t *testing.T) {
	sb, err := NewSwitchboard(newTestPanels(&lifecycleLog{}))
	require.NoError(t, err)
	ctx := context.Background()

	sb.SetActiveSection(ctx, string(SectionFinance))
	for _, id := range []string{"", "nope", "DASHBOARD"} {
		got := sb.SetActiveSection(ctx, id)
		if got != DefaultSection {
			t.Fatalf("expected %q to resolve to default, got %s", id, got)
		}
		sb.SetActiveSection(ctx, string(SectionFinance))
	}
}

func TestSwitchboardKeepsOneActivePanel(t *testing.T) {
	log := &lifecycleLog{}
	sb, err := NewSwitchboard(newTestPanels(log))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, sb.Start(ctx))

	for _, id := range []SectionID{SectionRealtime, SectionRealtime, SectionCRM, SectionSettings} {
		sb.SetActiveSection(ctx, string(id))
	}
	require.NoError(t, sb.Close(ctx))

	mounted := map[string]int{}
	for _, event := range log.snapshot() {
		switch {
		case len(event) > 6 && event[:6] == "mount:":
			mounted[event[6:]]++
		case len(event) > 8 && event[:8] == "unmount:":
			mounted[event[8:]]--
		}
		live := 0
		for _, count := range mounted {
			live += count
		}
		if live > 1 {
			t.Fatalf("more than one panel mounted after %q: %v", event, mounted)
		}
	}
	for id, count := range mounted {
		assert.Zero(t, count, "panel %s left mounted", id)
	}
}

func TestSwitchboardRenderUsesActivePanel(t *testing.T) {
	sb, err := NewSwitchboard(newTestPanels(&lifecycleLog{}))
	require.NoError(t, err)
	sb.SetActiveSection(context.Background(), string(SectionSecurity))

	active, data, err := sb.Render(context.Background(), View{DarkMode: true})
	require.NoError(t, err)
	assert.Equal(t, SectionSecurity, active)
	assert.Equal(t, string(SectionSecurity), data["title"])
	assert.Equal(t, true, data["dark"])
}

func TestSwitchboardDispatch(t *testing.T) {
	panels := newTestPanels(&lifecycleLog{})
	sb, err := NewSwitchboard(panels)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, sb.Dispatch(ctx, string(SectionOrders), Action{Name: "refresh"}))
	orders := panels[SectionOrders].(*testPanel)
	require.Len(t, orders.actions, 1)
	assert.Equal(t, "refresh", orders.actions[0].Name)

	err = sb.Dispatch(ctx, string(SectionOrders), Action{Name: "fail"})
	assert.True(t, errors.Is(err, ErrUnknownAction))

	panels[SectionDashboard] = PanelFunc(func(context.Context, View) (PanelData, error) { return nil, nil })
	plain, err := NewSwitchboard(panels)
	require.NoError(t, err)
	err = plain.Dispatch(ctx, "unknown", Action{Name: "refresh"})
	assert.True(t, errors.Is(err, ErrUnknownAction))
}
