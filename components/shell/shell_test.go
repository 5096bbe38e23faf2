package shell

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T) (*Shell, *lifecycleLog) {
	t.Helper()
	log := &lifecycleLog{}
	channels := NewChannels(context.Background(), ChannelOptions{
		Notifications: NotificationOptions{Timeout: -1},
	})
	sh, err := New(Options{Channels: channels, Panels: newTestPanels(log)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sh.Close(context.Background()) })
	return sh, log
}

func TestNewRequiresChannels(t *testing.T) {
	_, err := New(Options{Panels: newTestPanels(&lifecycleLog{})})
	require.Error(t, err)
}

func TestShellLayout(t *testing.T) {
	sh, _ := newTestShell(t)
	ctx := context.Background()
	require.NoError(t, sh.Start(ctx))

	sh.SetActiveSection(ctx, string(SectionOrders))
	sh.Channels().Theme.Toggle(ctx)
	sh.Channels().Notifications.Show(ctx, KindSuccess, "Order Created", "#ORD-0006")

	layout, err := sh.Layout(ctx, ViewerContext{Locale: "es"})
	require.NoError(t, err)

	assert.Equal(t, SectionOrders, layout.Active)
	assert.Equal(t, "Comercio electrónico", layout.Header.Title)
	assert.True(t, layout.Header.DarkMode)
	assert.Equal(t, 1, layout.Header.NotificationCount)
	assert.Equal(t, "dark", layout.Theme.Variant)
	assert.NotEmpty(t, layout.Theme.CSS)
	assert.Equal(t, string(SectionOrders), layout.Panel["title"])
	assert.Equal(t, true, layout.Panel["dark"])
	assert.False(t, layout.Modal.Open)

	require.Len(t, layout.Sidebar, len(knownSections))
	active := 0
	for _, item := range layout.Sidebar {
		if item.Active {
			active++
			assert.Equal(t, SectionOrders, item.ID)
		}
	}
	assert.Equal(t, 1, active)
}

func TestShellSearch(t *testing.T) {
	sh, _ := newTestShell(t)
	ctx := context.Background()

	sh.Search(ctx, "   ")
	assert.Equal(t, 0, sh.Channels().Notifications.Len())

	sh.Search(ctx, " invoices ")
	notes := sh.Channels().Notifications.List()
	require.Len(t, notes, 1)
	assert.Equal(t, KindInfo, notes[0].Kind)
	assert.Equal(t, "Search", notes[0].Title)
	assert.Equal(t, "Searching for: invoices", notes[0].Message)

	layout, err := sh.Layout(ctx, ViewerContext{})
	require.NoError(t, err)
	assert.Equal(t, "invoices", layout.Header.Search)
}

func TestShellDispatchFallsBackToDefault(t *testing.T) {
	sh, _ := newTestShell(t)
	require.NoError(t, sh.Dispatch(context.Background(), "unknown", Action{Name: "refresh"}))
}

func TestShellCloseUnmounts(t *testing.T) {
	sh, log := newTestShell(t)
	ctx := context.Background()
	require.NoError(t, sh.Start(ctx))
	require.NoError(t, sh.Close(ctx))
	assert.Equal(t, []string{"mount:" + string(SectionDashboard), "unmount:" + string(SectionDashboard)}, log.snapshot())
}

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", r.err
}

func TestControllerRenderTemplate(t *testing.T) {
	sh, _ := newTestShell(t)
	renderer := &stubRenderer{}
	controller := NewController(ControllerOptions{Shell: sh, Renderer: renderer})

	var buf bytes.Buffer
	if err := controller.RenderTemplate(context.Background(), ViewerContext{UserID: "user"}, &buf); err != nil {
		t.Fatalf("RenderTemplate returned error: %v", err)
	}
	if renderer.lastTemplate != "shell.html" {
		t.Fatalf("expected shell template to render, got %s", renderer.lastTemplate)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected rendered output")
	}
	assert.Equal(t, string(DefaultSection), renderer.lastPayload["active"])
	assert.Contains(t, renderer.lastPayload, "sidebar")
}

func TestControllerWithoutShell(t *testing.T) {
	controller := NewController(ControllerOptions{Renderer: &stubRenderer{}})
	_, err := controller.Render(context.Background(), ViewerContext{})
	require.Error(t, err)
}

func TestEmbeddedShellTemplateRenders(t *testing.T) {
	sh, _ := newTestShell(t)
	ctx := context.Background()
	sh.Channels().Modal.Show(ctx, "Confirm", "Proceed?", []string{"Cancel", "OK"}, nil)

	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	controller := NewController(ControllerOptions{Shell: sh, Renderer: renderer})

	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(ctx, ViewerContext{}, &buf))
	page := buf.String()
	assert.Contains(t, page, "Real-time Monitor")
	assert.Contains(t, page, `href="?section=realtime-content"`)
	assert.Contains(t, page, `<h1>Dashboard</h1>`)
	assert.Contains(t, page, "Proceed?")
	assert.Contains(t, page, `data-modal-button="OK"`)
	assert.NotContains(t, page, `href="?section="`)
}

func TestEmbeddedShellTemplateRendersToasts(t *testing.T) {
	sh, _ := newTestShell(t)
	ctx := context.Background()
	sh.Channels().Notifications.Show(ctx, KindSuccess, "Order Created", "#ORD-0006")

	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	controller := NewController(ControllerOptions{Shell: sh, Renderer: renderer})

	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(ctx, ViewerContext{}, &buf))
	page := buf.String()
	assert.Contains(t, page, `class="toast success"`)
	assert.Contains(t, page, "<strong>Order Created</strong> #ORD-0006")
	assert.NotContains(t, page, `class="backdrop"`)
}

func TestLayoutPayloadModalBody(t *testing.T) {
	cases := []struct {
		body any
		want string
	}{
		{nil, ""},
		{"You won't be able to revert this!", "You won't be able to revert this!"},
		{map[string]any{"form": "order"}, "{\n  \"form\": \"order\"\n}"},
	}
	for _, tc := range cases {
		payload := LayoutPayload(Layout{Modal: ModalDescriptor{Open: true, Body: tc.body}})
		if got := payload["modal_body"]; got != tc.want {
			t.Fatalf("modal_body for %#v = %q, want %q", tc.body, got, tc.want)
		}
	}
}
